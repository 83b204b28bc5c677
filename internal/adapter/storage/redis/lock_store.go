package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LockStore implements ports.SettlementLock using Redis SET NX.
type LockStore struct {
	client *goredis.Client
	prefix string
}

// NewLockStore creates a new Redis-backed settlement lock.
func NewLockStore(client *goredis.Client) *LockStore {
	return &LockStore{
		client: client,
		prefix: "settlement:lock:",
	}
}

// Acquire atomically takes the per-currency lock if nobody holds it.
// Returns true on success, false when a settlement for the currency is
// already running. The TTL bounds how long a crashed holder can block
// the next run.
func (s *LockStore) Acquire(ctx context.Context, currency string, ttl time.Duration) (bool, error) {
	key := s.prefix + currency
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — another settlement holds the lock
			return false, nil
		}
		return false, fmt.Errorf("redis lock acquire: %w", err)
	}
	return result == "OK", nil
}

// Release frees the per-currency lock.
func (s *LockStore) Release(ctx context.Context, currency string) error {
	if err := s.client.Del(ctx, s.prefix+currency).Err(); err != nil {
		return fmt.Errorf("redis lock release: %w", err)
	}
	return nil
}
