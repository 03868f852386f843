// Package store wraps a document collection behind a small query surface the
// services program against, so read policies can be layered on centrally and
// tests can run without a database.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoDocuments means that the filter did not match any documents in the
// collection.
var ErrNoDocuments = mongo.ErrNoDocuments

// FindOptions shapes a FindMany call. A zero Limit means no limit.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Store is one collection's query surface. UpdateOne must be a single
// conditional update at the storage boundary, never a read-modify-write.
type Store interface {
	FindOne(ctx context.Context, filter bson.M, out any) error
	FindMany(ctx context.Context, filter bson.M, opts FindOptions, out any) error
	Count(ctx context.Context, filter bson.M) (int64, error)
	InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error)
}
