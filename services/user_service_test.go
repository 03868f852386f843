package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nodeverse/nodeverse-api/models"
)

func newUserFixture() (*UserService, *memStore) {
	ms := &memStore{}
	return NewUserService(ms, nil), ms
}

func validUserInput() UserInput {
	return UserInput{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Age:   36,
		Addresses: []AddressInput{
			{Street: "12 St James's Square", City: "London"},
		},
	}
}

func TestUserCreateGetRoundTrip(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	id, err := svc.Create(ctx, validUserInput())
	require.NoError(t, err)

	user, err := svc.GetByID(ctx, id.Hex(), false)
	require.NoError(t, err)

	assert.Equal(t, id.Hex(), user["id"], "store id flattens to a stable id field")
	assert.Equal(t, "Ada Lovelace", user["name"])
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "_id")
	assert.Contains(t, user, "createdAt", "store keys are camel-cased in the payload")
	assert.NotContains(t, user, "created_at")
	assert.NotContains(t, user, "deletedAt")

	addresses, ok := user["addresses"].([]any)
	require.True(t, ok)
	require.Len(t, addresses, 1)
	addr, ok := addresses[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12 St James's Square", addr["street"])
	assert.Equal(t, "London", addr["city"])
	assert.NotEmpty(t, addr["id"], "each embedded address exposes its own id")
	assert.NotContains(t, addr, "_id")
}

func TestUserCreateValidation(t *testing.T) {
	svc, ms := newUserFixture()
	ctx := context.Background()
	var validation *ValidationError

	in := validUserInput()
	in.Name = "   "
	_, err := svc.Create(ctx, in)
	require.ErrorAs(t, err, &validation)

	in = validUserInput()
	in.Email = "not-an-email"
	_, err = svc.Create(ctx, in)
	require.ErrorAs(t, err, &validation)

	in = validUserInput()
	in.Age = -1
	_, err = svc.Create(ctx, in)
	require.ErrorAs(t, err, &validation)

	in = validUserInput()
	in.Addresses = []AddressInput{{Street: "  ", City: "London"}}
	_, err = svc.Create(ctx, in)
	require.ErrorAs(t, err, &validation)

	in = validUserInput()
	in.Addresses = []AddressInput{{Street: "Main st", City: ""}}
	_, err = svc.Create(ctx, in)
	require.ErrorAs(t, err, &validation)

	assert.Empty(t, ms.docs, "nothing may be persisted on validation failure")
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, validUserInput())
	require.NoError(t, err)

	var conflict *ConflictError
	_, err = svc.Create(ctx, validUserInput())
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestUserGetByIDNotFound(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()
	var notFound *NotFoundError

	_, err := svc.GetByID(ctx, "nonexistent-id", false)
	require.ErrorAs(t, err, &notFound)

	_, err = svc.GetByID(ctx, primitive.NewObjectID().Hex(), false)
	require.ErrorAs(t, err, &notFound)
}

func TestUserUpdateOverwrites(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	id, err := svc.Create(ctx, validUserInput())
	require.NoError(t, err)

	in := UserInput{
		Name:  "Ada King",
		Email: "ada@example.com", // keeping one's own email is not a conflict
		Age:   37,
		Addresses: []AddressInput{
			{Street: "Ockham Park", City: "Surrey"},
			{Street: "12 St James's Square", City: "London"},
		},
	}
	user, err := svc.Update(ctx, id.Hex(), in)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", user["name"])

	addresses, ok := user["addresses"].([]any)
	require.True(t, ok)
	assert.Len(t, addresses, 2, "address list is replaced wholesale")
}

func TestUserUpdateEmailConflict(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, validUserInput())
	require.NoError(t, err)

	other := validUserInput()
	other.Email = "grace@example.com"
	otherID, err := svc.Create(ctx, other)
	require.NoError(t, err)

	taken := validUserInput()
	var conflict *ConflictError
	_, err = svc.Update(ctx, otherID.Hex(), taken)
	require.ErrorAs(t, err, &conflict)
}

func TestUserUpdateNotFound(t *testing.T) {
	svc, _ := newUserFixture()
	var notFound *NotFoundError
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), validUserInput())
	require.ErrorAs(t, err, &notFound)
}

func TestUserSoftDelete(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	id, err := svc.Create(ctx, validUserInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id.Hex()))

	var notFound *NotFoundError
	_, err = svc.GetByID(ctx, id.Hex(), false)
	require.ErrorAs(t, err, &notFound)

	require.ErrorAs(t, svc.Delete(ctx, id.Hex()), &notFound)

	// administrative mode still sees it, marker included
	user, err := svc.GetByID(ctx, id.Hex(), true)
	require.NoError(t, err)
	assert.Contains(t, user, "deletedAt")

	list, err := svc.List(ctx, UserListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, int64(0), list.Meta.Total)
}

func TestUserListFilters(t *testing.T) {
	svc, ms := newUserFixture()
	ctx := context.Background()
	base := time.Now().UTC()

	seed := func(name, email string, offset time.Duration) {
		_, err := ms.InsertOne(ctx, models.User{
			ID:        primitive.NewObjectID(),
			Name:      name,
			Email:     email,
			Age:       30,
			Addresses: []models.Address{},
			CreatedAt: base.Add(offset),
			UpdatedAt: base.Add(offset),
		})
		require.NoError(t, err)
	}
	seed("Ada Lovelace", "ada@example.com", 0)
	seed("Grace Hopper", "grace@example.com", time.Minute)
	seed("Adam Smith", "adam@example.com", 2*time.Minute)

	list, err := svc.List(ctx, UserListQuery{Name: "ada"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2, "substring match is case-insensitive")

	list, err = svc.List(ctx, UserListQuery{Email: "grace@example.com"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Grace Hopper", list.Items[0].Name)

	list, err = svc.List(ctx, UserListQuery{Page: "1", Limit: "2"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, int64(3), list.Meta.Total)
	assert.Equal(t, int64(2), list.Meta.TotalPages)
	assert.Equal(t, "Adam Smith", list.Items[0].Name, "newest first")
}

func TestUserListInvalidPaging(t *testing.T) {
	svc, _ := newUserFixture()
	var validation *ValidationError
	_, err := svc.List(context.Background(), UserListQuery{Page: "x"})
	require.ErrorAs(t, err, &validation)
}
