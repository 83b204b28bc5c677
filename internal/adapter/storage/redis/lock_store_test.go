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

func TestLockStore_Acquire(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewLockStore(client)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "BTC", 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "first acquire should succeed")
}

func TestLockStore_Acquire_Held(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewLockStore(client)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "BTC", 2*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// Second acquire while held
	ok, err = store.Acquire(ctx, "BTC", 2*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "acquire while held should return false")
}

func TestLockStore_CurrenciesAreIndependent(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewLockStore(client)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "BTC", 2*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Acquire(ctx, "ETH", 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "lock on BTC must not block ETH")
}

func TestLockStore_Release(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewLockStore(client)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "BTC", 2*time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "BTC"))

	ok, err = store.Acquire(ctx, "BTC", 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "acquire after release should succeed")
}

func TestLockStore_ExpiresAfterTTL(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewLockStore(client)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "BTC", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// Simulate crashed holder: TTL elapses without a Release
	s.FastForward(2 * time.Second)

	ok, err = store.Acquire(ctx, "BTC", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock should be acquirable")
}
