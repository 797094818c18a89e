package repo

import (
	"context"

	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories: a connection
// and the retry policy applied to every statement run through Do.
type Base struct {
	db    *gorm.DB
	retry db.RetryPolicy
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(conn *gorm.DB, policy db.RetryPolicy) Base {
	return Base{db: conn, retry: policy}
}

// FromClient builds a Base sharing the client's pool and retry policy.
func FromClient(client *db.Client) Base {
	return NewBase(client.DB(), client.Retry())
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithTx binds the base to tx. Statements inside a transaction are not
// retried since a broken connection aborts the whole transaction.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx, retry: db.RetryPolicy{Attempts: 1}}
}

// Do runs fn against the context-bound connection, retrying transient
// connectivity failures under the base's policy.
func (b Base) Do(ctx context.Context, fn func(conn *gorm.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return b.retry.Do(ctx, func(ctx context.Context) error {
		return fn(b.db.WithContext(ctx))
	})
}
