package store

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// checkStruct runs the validate tags of v and converts failures into a
// ValidationError naming the offending fields.
func (s *Store) checkStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		fields := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			fields = append(fields, FieldName(fe.Field()))
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Reason: err.Error()}
}

// checkFields validates individual values against a tag, collecting every
// failing field name.
func (s *Store) checkFields(checks ...fieldCheck) error {
	var failed []string
	for _, c := range checks {
		if !c.present {
			continue
		}
		if err := s.validate.Var(c.value, c.tag); err != nil {
			failed = append(failed, c.name)
		}
	}
	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	return nil
}

type fieldCheck struct {
	name    string
	value   any
	tag     string
	present bool
}

func required(name string, value any) fieldCheck {
	return fieldCheck{name: name, value: value, tag: "required", present: true}
}

// FieldName converts a Go struct field name into its JSON/BSON key.
func FieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
