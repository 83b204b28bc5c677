package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPreviewCache(client)
	ctx := context.Background()

	payload := []byte(`{"actionable":true}`)
	require.NoError(t, cache.Set(ctx, "BTC", payload, 15*time.Second))

	got, err := cache.Get(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestPreviewCache_Get_Miss(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPreviewCache(client)

	got, err := cache.Get(context.Background(), "ETH")
	require.NoError(t, err)
	assert.Nil(t, got, "miss should return nil, nil")
}

func TestPreviewCache_Expires(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPreviewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "BTC", []byte("stale"), time.Second))
	s.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "BTC")
	require.NoError(t, err)
	assert.Nil(t, got, "expired preview should be gone")
}

func TestPreviewCache_CurrenciesAreIndependent(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPreviewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "BTC", []byte("btc-plan"), time.Minute))

	got, err := cache.Get(ctx, "ETH")
	require.NoError(t, err)
	assert.Nil(t, got)
}
