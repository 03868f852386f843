package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nodeverse/nodeverse-api/models"
	"github.com/nodeverse/nodeverse-api/pagination"
	"github.com/nodeverse/nodeverse-api/store"
)

var validate = validator.New()

// TodoService orchestrates todo CRUD over the guarded store.
type TodoService struct {
	store store.Store
}

func NewTodoService(s store.Store) *TodoService {
	return &TodoService{store: s}
}

// reader picks the default read path or, for administrative use, the raw
// store that can see soft-deleted documents.
func (s *TodoService) reader(includeDeleted bool) store.Store {
	if includeDeleted {
		return s.store
	}
	return store.Guard(s.store)
}

type TodoInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TodoList is the payload of a windowed list read.
type TodoList struct {
	Items []models.Todo   `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

func (in *TodoInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		if trimmed == "" {
			in.Description = nil
		} else {
			in.Description = &trimmed
		}
	}
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Resource: "todo", Field: "title", Message: "must not be blank"}
	}
	return nil
}

func (s *TodoService) Create(ctx context.Context, in TodoInput) (primitive.ObjectID, error) {
	if err := in.normalize(); err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now().UTC()
	todo := models.Todo{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.store.InsertOne(ctx, todo)
	if err != nil {
		return primitive.NilObjectID, &DependencyError{Op: "todos.insert", Err: err}
	}
	return id, nil
}

func (s *TodoService) GetByID(ctx context.Context, id string, includeDeleted bool) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &NotFoundError{Resource: "todo", ID: id}
	}

	var todo models.Todo
	err = s.reader(includeDeleted).FindOne(ctx, bson.M{"_id": oid}, &todo)
	if errors.Is(err, store.ErrNoDocuments) {
		return nil, &NotFoundError{Resource: "todo", ID: id}
	}
	if err != nil {
		return nil, &DependencyError{Op: "todos.findOne", Err: err}
	}
	return &todo, nil
}

// Update overwrites title, description and completed wholesale. The write is
// a single conditional update so concurrent edits cannot be lost, and a
// soft-deleted todo reports not found rather than silently matching.
func (s *TodoService) Update(ctx context.Context, id string, in TodoInput) (*models.Todo, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &NotFoundError{Resource: "todo", ID: id}
	}

	update := bson.M{"$set": bson.M{
		"title":       in.Title,
		"description": in.Description,
		"completed":   in.Completed,
		"updated_at":  time.Now().UTC(),
	}}
	matched, err := s.reader(false).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, &DependencyError{Op: "todos.update", Err: err}
	}
	if matched == 0 {
		return nil, &NotFoundError{Resource: "todo", ID: id}
	}
	return s.GetByID(ctx, id, false)
}

func (s *TodoService) List(ctx context.Context, q TodoListQuery) (*TodoList, error) {
	filter, err := buildTodoFilter(q)
	if err != nil {
		return nil, err
	}
	params, err := pagination.Parse(q.Page, q.Limit, 0)
	if err != nil {
		return nil, &ValidationError{Resource: "todo", Field: "page", Message: err.Error()}
	}

	opts := store.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}}
	if params.Enabled {
		opts.Skip = params.Offset
		opts.Limit = int64(params.Limit)
	}

	reader := s.reader(q.IncludeDeleted)
	items := make([]models.Todo, 0)
	if err := reader.FindMany(ctx, filter, opts, &items); err != nil {
		return nil, &DependencyError{Op: "todos.find", Err: err}
	}
	total, err := reader.Count(ctx, filter)
	if err != nil {
		return nil, &DependencyError{Op: "todos.count", Err: err}
	}

	return &TodoList{
		Items: items,
		Meta:  pagination.NewMeta(total, params.Page, params.Limit),
	}, nil
}

// Delete soft-deletes: the document stays recoverable, default reads stop
// seeing it. Deleting an absent or already-deleted todo is not found.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &NotFoundError{Resource: "todo", ID: id}
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}}
	matched, err := s.reader(false).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return &DependencyError{Op: "todos.delete", Err: err}
	}
	if matched == 0 {
		return &NotFoundError{Resource: "todo", ID: id}
	}
	return nil
}
