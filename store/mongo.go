package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the Store implementation backed by a real collection.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

func (m *Mongo) FindOne(ctx context.Context, filter bson.M, out any) error {
	return m.coll.FindOne(ctx, filter).Decode(out)
}

func (m *Mongo) FindMany(ctx context.Context, filter bson.M, opts FindOptions, out any) error {
	findOpts := options.Find()
	if opts.Sort != nil {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := m.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (m *Mongo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return m.coll.CountDocuments(ctx, filter)
}

func (m *Mongo) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, nil
	}
	return id, nil
}

func (m *Mongo) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	res, err := m.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
