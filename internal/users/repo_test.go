package users

import (
	"context"
	"testing"

	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/reviewhub-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	return NewRepository(repo.NewBase(dbtest.Open(t), db.RetryPolicy{Attempts: 1}))
}

func TestRepository_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	name := "Ada"
	first, err := r.Upsert(ctx, &models.User{Email: "ada@example.com", Name: &name})
	require.NoError(t, err)

	other := "Someone Else"
	second, err := r.Upsert(ctx, &models.User{Email: "ada@example.com", Name: &other})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Name)
	assert.Equal(t, "Ada", *second.Name, "existing user must not be overwritten")

	rows, err := r.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRepository_CreateFindDelete(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	user := &models.User{Email: "bob@example.com"}
	require.NoError(t, r.Create(ctx, user))

	found, err := r.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", found.Email)

	_, err = r.FindByEmail(ctx, "missing@example.com")
	assert.True(t, IsNotFound(err))

	err = r.Create(ctx, &models.User{Email: "bob@example.com"})
	assert.True(t, db.IsUniqueViolation(err, ""))

	deleted, err := r.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
