package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// PreviewCache implements ports.PreviewCache using Redis.
type PreviewCache struct {
	client *goredis.Client
	prefix string
}

// NewPreviewCache creates a new Redis-backed preview cache.
func NewPreviewCache(client *goredis.Client) *PreviewCache {
	return &PreviewCache{
		client: client,
		prefix: "settlement:preview:",
	}
}

// Get retrieves a cached preview payload for a currency.
// Returns nil, nil if no preview is cached.
func (c *PreviewCache) Get(ctx context.Context, currency string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+currency).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis preview get: %w", err)
	}
	return val, nil
}

// Set stores a preview payload with TTL.
func (c *PreviewCache) Set(ctx context.Context, currency string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+currency, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis preview set: %w", err)
	}
	return nil
}
