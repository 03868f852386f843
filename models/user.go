package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a value object embedded in its User document. It has no
// lifecycle of its own; the id only gives clients a stable handle.
type Address struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Street string             `json:"street" bson:"street"`
	City   string             `json:"city" bson:"city"`
}

type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Age       int                `json:"age" bson:"age"`
	Addresses []Address          `json:"addresses" bson:"addresses"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
	DeletedAt *time.Time         `json:"deletedAt,omitempty" bson:"deleted_at"`
}
