package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username" validate:"required"`
	PasswordHash string             `bson:"passwordHash" json:"-" validate:"required"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
