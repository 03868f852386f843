package services

import (
	"context"
	"reflect"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nodeverse/nodeverse-api/store"
)

// memStore is an in-memory Store. It interprets exactly the filter shapes
// the services emit: equality, case-insensitive regex, created-at ranges and
// the null soft-delete predicate.
type memStore struct {
	docs []bson.M
}

func (m *memStore) FindOne(_ context.Context, filter bson.M, out any) error {
	for _, doc := range m.docs {
		if matches(doc, filter) {
			return decodeInto(doc, out)
		}
	}
	return store.ErrNoDocuments
}

func (m *memStore) FindMany(_ context.Context, filter bson.M, opts store.FindOptions, out any) error {
	var hits []bson.M
	for _, doc := range m.docs {
		if matches(doc, filter) {
			hits = append(hits, doc)
		}
	}

	if len(opts.Sort) > 0 {
		key := opts.Sort[0].Key
		desc := sortDirection(opts.Sort[0].Value) < 0
		sort.SliceStable(hits, func(i, j int) bool {
			ti, tj := asTime(hits[i][key]), asTime(hits[j][key])
			if desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(hits)) {
			hits = nil
		} else {
			hits = hits[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(hits)) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	outv := reflect.ValueOf(out).Elem()
	for _, doc := range hits {
		elem := reflect.New(outv.Type().Elem())
		if err := decodeInto(doc, elem.Interface()); err != nil {
			return err
		}
		outv.Set(reflect.Append(outv, elem.Elem()))
	}
	return nil
}

func (m *memStore) Count(_ context.Context, filter bson.M) (int64, error) {
	var n int64
	for _, doc := range m.docs {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) InsertOne(_ context.Context, doc any) (primitive.ObjectID, error) {
	var d bson.M
	if err := decodeInto(doc, &d); err != nil {
		return primitive.NilObjectID, err
	}
	m.docs = append(m.docs, d)
	id, _ := d["_id"].(primitive.ObjectID)
	return id, nil
}

func (m *memStore) UpdateOne(_ context.Context, filter bson.M, update bson.M) (int64, error) {
	for _, doc := range m.docs {
		if !matches(doc, filter) {
			continue
		}
		if set, ok := update["$set"].(bson.M); ok {
			for k, v := range set {
				doc[k] = v
			}
		}
		return 1, nil
	}
	return 0, nil
}

func matches(doc, filter bson.M) bool {
	for key, want := range filter {
		got := doc[key]
		switch w := want.(type) {
		case nil:
			if got != nil {
				return false
			}
		case primitive.Regex:
			s, _ := got.(string)
			if !regexp.MustCompile("(?i)" + w.Pattern).MatchString(s) {
				return false
			}
		case bson.M:
			t := asTime(got)
			if gte, ok := w["$gte"]; ok && t.Before(asTime(gte)) {
				return false
			}
			if lte, ok := w["$lte"]; ok && t.After(asTime(lte)) {
				return false
			}
		default:
			if !reflect.DeepEqual(got, want) {
				return false
			}
		}
	}
	return true
}

// decodeInto round-trips through bson so typed models, raw maps and driver
// scalar types all land the way a real collection read would deliver them.
func decodeInto(doc any, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	default:
		return time.Time{}
	}
}

func sortDirection(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	default:
		return 1
	}
}
