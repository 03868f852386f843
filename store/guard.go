package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// deletedField is the soft-delete marker on every guarded collection.
const deletedField = "deleted_at"

// guarded intersects every filter with "deleted_at == null" so soft-deleted
// documents are invisible by default. One decorator, applied to every read
// path and to conditional updates, instead of a policy repeated per query.
type guarded struct {
	s Store
}

// Guard wraps s so soft-deleted documents never match. Callers that need the
// administrative view keep a reference to the raw Store instead.
func Guard(s Store) Store {
	return &guarded{s: s}
}

func (g *guarded) FindOne(ctx context.Context, filter bson.M, out any) error {
	return g.s.FindOne(ctx, alive(filter), out)
}

func (g *guarded) FindMany(ctx context.Context, filter bson.M, opts FindOptions, out any) error {
	return g.s.FindMany(ctx, alive(filter), opts, out)
}

func (g *guarded) Count(ctx context.Context, filter bson.M) (int64, error) {
	return g.s.Count(ctx, alive(filter))
}

func (g *guarded) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	return g.s.InsertOne(ctx, doc)
}

func (g *guarded) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	return g.s.UpdateOne(ctx, alive(filter), update)
}

// alive copies filter with the soft-delete predicate added. In Mongo a nil
// match covers both explicit null and a missing field.
func alive(filter bson.M) bson.M {
	out := make(bson.M, len(filter)+1)
	for k, v := range filter {
		out[k] = v
	}
	out[deletedField] = nil
	return out
}
