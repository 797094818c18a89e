package db

import (
	"context"
	"time"

	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/sethvargo/go-retry"
)

const (
	DefaultRetryAttempts = 3
	DefaultRetryBackoff  = time.Second
)

// RetryPolicy retries transient connectivity failures with a constant backoff.
// Non-transient errors are returned on the first attempt.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy is three attempts one second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: DefaultRetryAttempts, Backoff: DefaultRetryBackoff}
}

// PolicyFromConfig builds the policy from the DB configuration, falling back to defaults.
func PolicyFromConfig(cfg config.DBConfig) RetryPolicy {
	policy := DefaultRetryPolicy()
	if cfg.RetryAttempts > 0 {
		policy.Attempts = cfg.RetryAttempts
	}
	if cfg.RetryBackoff > 0 {
		policy.Backoff = cfg.RetryBackoff
	}
	return policy
}

// Do runs fn until it succeeds, fails permanently or the attempts run out.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.Attempts <= 1 {
		return fn(ctx)
	}

	wait := p.Backoff
	if wait <= 0 {
		wait = time.Millisecond
	}
	backoff := retry.WithMaxRetries(uint64(p.Attempts-1), retry.NewConstant(wait))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
