package dal_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydal-project/mydal/internal/dal"
	"github.com/mydal-project/mydal/pkg/mydal"
)

func TestCreateUser_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := dal.CreateUser(ctx, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err, "generated id must be a valid UUID")
	assert.False(t, created.CreatedAt.IsZero())

	got, err := dal.GetUser(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := dal.CreateUser(ctx, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	_, err = dal.CreateUser(ctx, db, "Other Ada", "ada@example.com")
	assert.ErrorIs(t, err, mydal.ErrQueryFailed)
}

func TestGetUser_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := dal.GetUser(context.Background(), db, uuid.NewString())
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := dal.CreateUser(ctx, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	got, err := dal.GetUserByEmail(ctx, db, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = dal.GetUserByEmail(ctx, db, "nobody@example.com")
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}

func TestListUsers_OldestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, err := dal.CreateUser(ctx, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	second, err := dal.CreateUser(ctx, db, "Grace Hopper", "grace@example.com")
	require.NoError(t, err)

	users, err := dal.ListUsers(ctx, db)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Same-second timestamps fall back to id ordering, so only
	// check that both rows come back.
	ids := []string{users[0].ID, users[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestUpdateUserEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := dal.CreateUser(ctx, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, dal.UpdateUserEmail(ctx, db, created.ID, "countess@example.com"))

	got, err := dal.GetUser(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "countess@example.com", got.Email)

	err = dal.UpdateUserEmail(ctx, db, uuid.NewString(), "x@example.com")
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := dal.CreateUser(ctx, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, dal.DeleteUser(ctx, db, created.ID))

	_, err = dal.GetUser(ctx, db, created.ID)
	assert.ErrorIs(t, err, mydal.ErrNotFound)

	err = dal.DeleteUser(ctx, db, created.ID)
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}
