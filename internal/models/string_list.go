package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList is the items field of an order.
type StringList []string

// UnmarshalBSONValue reads the items of an order. Orders placed for a single
// drink may carry that drink as a bare string instead of an array; it becomes
// a one-item list, and a blank string an empty one. A null items field stays
// nil.
func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Null:
		*s = nil
	case bsontype.String:
		item := strings.TrimSpace(raw.StringValue())
		if item == "" {
			*s = StringList{}
		} else {
			*s = StringList{item}
		}
	case bsontype.Array:
		var items []string
		if err := raw.Unmarshal(&items); err != nil {
			return fmt.Errorf("decode order items: %w", err)
		}
		*s = items
	default:
		return fmt.Errorf("order items: unexpected BSON type %s", t)
	}
	return nil
}

// MarshalBSONValue writes the items as an array, empty when the list is nil.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	items := []string(s)
	if items == nil {
		items = []string{}
	}
	return bson.MarshalValue(items)
}
