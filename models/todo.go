package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Todo struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description *string            `json:"description" bson:"description"`
	Completed   bool               `json:"completed" bson:"completed"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
	DeletedAt   *time.Time         `json:"deletedAt,omitempty" bson:"deleted_at"`
}

// IsDeleted reports whether the todo carries a soft-delete marker.
func (t *Todo) IsDeleted() bool {
	return t != nil && t.DeletedAt != nil
}
