package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "admins_email_key"}

	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgErr), ""))
	assert.True(t, IsUniqueViolation(pgErr, "admins_email_key"))
	assert.False(t, IsUniqueViolation(pgErr, "users_email_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.True(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, IsUndefinedTable(fmt.Errorf("select: %w", &pgconn.PgError{Code: "42P01"})))
	assert.True(t, IsUndefinedTable(errors.New("no such table: submission_comments")))
	assert.False(t, IsUndefinedTable(&pgconn.PgError{Code: "42703"}))
	assert.False(t, IsUndefinedTable(nil))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(driver.ErrBadConn))
	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "08006"})))
	assert.True(t, IsTransient(&pgconn.PgError{Code: "57P03"}))
	assert.False(t, IsTransient(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsTransient(errors.New("validation failed")))
	assert.False(t, IsTransient(nil))
}

func TestRetryPolicy_RetriesTransientOnly(t *testing.T) {
	policy := RetryPolicy{Attempts: 3, Backoff: time.Millisecond}
	ctx := context.Background()

	calls := 0
	err := policy.Do(ctx, func(context.Context) error {
		calls++
		if calls < 3 {
			return driver.ErrBadConn
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = policy.Do(ctx, func(context.Context) error {
		calls++
		return driver.ErrBadConn
	})
	require.ErrorIs(t, err, driver.ErrBadConn)
	assert.Equal(t, 3, calls)

	calls = 0
	business := errors.New("not found")
	err = policy.Do(ctx, func(context.Context) error {
		calls++
		return business
	})
	require.ErrorIs(t, err, business)
	assert.Equal(t, 1, calls)
}

func TestPolicyFromConfigDefaults(t *testing.T) {
	policy := PolicyFromConfig(config.DBConfig{})
	assert.Equal(t, DefaultRetryPolicy(), policy)

	policy = PolicyFromConfig(config.DBConfig{RetryAttempts: 5, RetryBackoff: 2 * time.Second})
	assert.Equal(t, RetryPolicy{Attempts: 5, Backoff: 2 * time.Second}, policy)
}
