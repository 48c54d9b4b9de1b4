package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order defines the persisted order document.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items         StringList         `bson:"items" json:"items" validate:"required,min=1"`
	CustomerName  string             `bson:"customerName" json:"customerName" validate:"required"`
	Price         float64            `bson:"price" json:"price" validate:"required"`
	OrderStatus   string             `bson:"orderStatus" json:"orderStatus" validate:"required"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus" validate:"required"`
	OrderedDate   time.Time          `bson:"orderedDate" json:"orderedDate"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderFields is a partial order used by replacement updates. Nil fields are
// left untouched.
type OrderFields struct {
	Items         *[]string `json:"items"`
	CustomerName  *string   `json:"customerName"`
	Price         *float64  `json:"price"`
	OrderStatus   *string   `json:"orderStatus"`
	PaymentStatus *string   `json:"paymentStatus"`
}

// Empty reports whether no field is set.
func (f OrderFields) Empty() bool {
	return f.Items == nil && f.CustomerName == nil && f.Price == nil &&
		f.OrderStatus == nil && f.PaymentStatus == nil
}

// StatusOnly reports whether orderStatus is the only field set.
func (f OrderFields) StatusOnly() bool {
	return f.OrderStatus != nil && f.Items == nil && f.CustomerName == nil &&
		f.Price == nil && f.PaymentStatus == nil
}
