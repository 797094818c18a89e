package cron

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultLockTTL = 2 * time.Hour

// Lock makes sure a single worker runs a cycle at a time.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	DelIfEquals(ctx context.Context, key, value string) (bool, error)
}

// RedisLock is a SET NX lease. The stored value is "<instance>:<token>" so an
// operator can see which worker holds it; only that value can release it.
type RedisLock struct {
	client   redisStore
	key      string
	instance string
	ttl      time.Duration

	mu    sync.Mutex
	value string
}

func NewRedisLock(client redisStore, key, instance string, ttl time.Duration) (*RedisLock, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	if instance == "" {
		instance = "local"
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLock{client: client, key: key, instance: instance, ttl: ttl}, nil
}

func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.value != "" {
		return false, nil
	}
	value := l.instance + ":" + uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, value, l.ttl)
	if err != nil {
		return false, fmt.Errorf("acquire %s: %w", l.key, err)
	}
	if ok {
		l.value = value
	}
	return ok, nil
}

// Release is a no-op when this instance does not hold the lease.
func (l *RedisLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.value == "" {
		return nil
	}
	if _, err := l.client.DelIfEquals(ctx, l.key, l.value); err != nil {
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	l.value = ""
	return nil
}
