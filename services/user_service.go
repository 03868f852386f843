package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/nodeverse/nodeverse-api/cache"
	"github.com/nodeverse/nodeverse-api/keycase"
	"github.com/nodeverse/nodeverse-api/models"
	"github.com/nodeverse/nodeverse-api/pagination"
	"github.com/nodeverse/nodeverse-api/store"
)

// UserService orchestrates user CRUD. Addresses are value objects embedded
// in the user document and live and die with it.
type UserService struct {
	store store.Store
	cache *cache.UserCache
	sf    singleflight.Group
}

// NewUserService creates a UserService. If c is nil, caching is disabled.
func NewUserService(s store.Store, c *cache.UserCache) *UserService {
	return &UserService{store: s, cache: c}
}

func (s *UserService) reader(includeDeleted bool) store.Store {
	if includeDeleted {
		return s.store
	}
	return store.Guard(s.store)
}

type AddressInput struct {
	Street string `json:"street" validate:"required"`
	City   string `json:"city" validate:"required"`
}

type UserInput struct {
	Name      string         `json:"name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Age       int            `json:"age" validate:"gte=0"`
	Addresses []AddressInput `json:"addresses" validate:"dive"`
}

// UserList is the payload of a windowed list read.
type UserList struct {
	Items []models.User   `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

func (in *UserInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	for i := range in.Addresses {
		in.Addresses[i].Street = strings.TrimSpace(in.Addresses[i].Street)
		in.Addresses[i].City = strings.TrimSpace(in.Addresses[i].City)
	}
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Resource: "user", Field: firstFailedField(err), Message: "missing or malformed"}
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (primitive.ObjectID, error) {
	if err := in.normalize(); err != nil {
		return primitive.NilObjectID, err
	}
	if err := s.checkEmailFree(ctx, in.Email, primitive.NilObjectID); err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Addresses: buildAddresses(in.Addresses),
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, &DependencyError{Op: "users.insert", Err: err}
	}
	return id, nil
}

// GetByID reads the raw document and shapes it at the boundary: store ids
// flatten into stable "id" fields for the user and each address, timestamps
// become proper times and every key is normalized to camel case. Older
// documents were written by several hands, so the stored shape is not
// trusted. Default reads are cached and concurrent fills are deduplicated.
func (s *UserService) GetByID(ctx context.Context, id string, includeDeleted bool) (map[string]any, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}

	if includeDeleted {
		return s.fetchShaped(ctx, oid, true)
	}

	v, err, _ := s.sf.Do(id, func() (any, error) {
		if doc, ok := s.cache.Get(ctx, id); ok {
			return doc, nil
		}
		doc, err := s.fetchShaped(ctx, oid, false)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, id, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func (s *UserService) fetchShaped(ctx context.Context, oid primitive.ObjectID, includeDeleted bool) (map[string]any, error) {
	var doc bson.M
	err := s.reader(includeDeleted).FindOne(ctx, bson.M{"_id": oid}, &doc)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, &NotFoundError{Resource: "user", ID: oid.Hex()}
	}
	if err != nil {
		return nil, &DependencyError{Op: "users.findOne", Err: err}
	}
	return shapeDocument(doc), nil
}

func (s *UserService) List(ctx context.Context, q UserListQuery) (*UserList, error) {
	filter, err := buildUserFilter(q)
	if err != nil {
		return nil, err
	}
	params, err := pagination.Parse(q.Page, q.Limit, 0)
	if err != nil {
		return nil, &ValidationError{Resource: "user", Field: "page", Message: err.Error()}
	}

	opts := store.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}}
	if params.Enabled {
		opts.Skip = params.Offset
		opts.Limit = int64(params.Limit)
	}

	reader := s.reader(q.IncludeDeleted)
	items := make([]models.User, 0)
	if err := reader.FindMany(ctx, filter, opts, &items); err != nil {
		return nil, &DependencyError{Op: "users.find", Err: err}
	}
	total, err := reader.Count(ctx, filter)
	if err != nil {
		return nil, &DependencyError{Op: "users.count", Err: err}
	}

	return &UserList{
		Items: items,
		Meta:  pagination.NewMeta(total, params.Page, params.Limit),
	}, nil
}

// Update overwrites name, email, age and the whole address list. Embedded
// addresses are replaced, not merged, so each gets a fresh id.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) (map[string]any, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	if err := s.checkEmailFree(ctx, in.Email, oid); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":       in.Name,
		"email":      in.Email,
		"age":        in.Age,
		"addresses":  buildAddresses(in.Addresses),
		"updated_at": time.Now().UTC(),
	}}
	matched, err := s.reader(false).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, &DependencyError{Op: "users.update", Err: err}
	}
	if matched == 0 {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}

	s.cache.Invalidate(ctx, id)
	return s.fetchShaped(ctx, oid, false)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &NotFoundError{Resource: "user", ID: id}
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	matched, err := s.reader(false).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return &DependencyError{Op: "users.delete", Err: err}
	}
	if matched == 0 {
		return &NotFoundError{Resource: "user", ID: id}
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// checkEmailFree enforces email uniqueness among live users. A match owned
// by exclude (the user being updated) is fine.
func (s *UserService) checkEmailFree(ctx context.Context, email string, exclude primitive.ObjectID) error {
	var existing models.User
	err := s.reader(false).FindOne(ctx, bson.M{"email": email}, &existing)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return &DependencyError{Op: "users.findOne", Err: err}
	}
	if existing.ID == exclude {
		return nil
	}
	return &ConflictError{Resource: "user", Field: "email", Value: email}
}

func buildAddresses(in []AddressInput) []models.Address {
	out := make([]models.Address, 0, len(in))
	for _, a := range in {
		out = append(out, models.Address{
			ID:     primitive.NewObjectID(),
			Street: a.Street,
			City:   a.City,
		})
	}
	return out
}

// shapeDocument turns a raw stored document into a response payload:
// driver-specific values become plain JSON-friendly ones, "_id" flattens to
// "id" and keys are camel-cased. Null soft-delete markers are dropped.
func shapeDocument(doc bson.M) map[string]any {
	shaped := keycase.CamelizeKeys(normalizeDoc(doc)).(map[string]any)
	if v, ok := shaped["deletedAt"]; ok && v == nil {
		delete(shaped, "deletedAt")
	}
	return shaped
}

func normalizeDoc(v any) any {
	switch val := v.(type) {
	case bson.M:
		return normalizeMap(val)
	case map[string]any:
		return normalizeMap(val)
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeDoc(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeDoc(item)
		}
		return out
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == "_id" {
			k = "id"
		}
		out[k] = normalizeDoc(v)
	}
	return out
}

func firstFailedField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return strings.ToLower(verrs[0].Field())
	}
	return ""
}
