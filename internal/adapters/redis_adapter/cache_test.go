package redis_a_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/pvginkel/electronics-inventory/internal/adapters/redis_adapter"
	"github.com/pvginkel/electronics-inventory/internal/core/ports"
	"github.com/pvginkel/electronics-inventory/test/helpers"
)

func setupCache(t *testing.T) (ports.CacheRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := setupCache(t)

	tests := []struct {
		name  string
		key   string
		value int64
	}{
		{
			name:  "stores_and_retrieves_part_id",
			key:   "partkey:R-0603-10K",
			value: 42,
		},
		{
			name:  "stores_and_retrieves_large_id",
			key:   "partkey:IC-ATMEGA328P",
			value: 9223372036854775807,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cache.Set(ctx, tt.key, tt.value)
			require.NoError(t, err)

			var result int64
			err = cache.Get(ctx, tt.key, &result)
			require.NoError(t, err)
			assert.Equal(t, tt.value, result)
		})
	}
}

func TestCache_GetMiss(t *testing.T) {
	ctx := context.Background()
	cache, _ := setupCache(t)

	var result int64
	err := cache.Get(ctx, "partkey:UNKNOWN", &result)
	assert.Equal(t, redis_a.ErrCacheMiss, err)
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)

	err := cache.SetWithTTL(ctx, "ttl:test", int64(7), 100*time.Millisecond)
	require.NoError(t, err)

	var result int64
	err = cache.Get(ctx, "ttl:test", &result)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result)

	// Fast forward time in miniredis
	mr.FastForward(200 * time.Millisecond)

	// Should be expired
	err = cache.Get(ctx, "ttl:test", &result)
	assert.Equal(t, redis_a.ErrCacheMiss, err)
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache, _ := setupCache(t)

	keys := []string{"del:1", "del:2", "del:3"}
	for i, key := range keys {
		err := cache.Set(ctx, key, int64(i))
		require.NoError(t, err)
	}

	err := cache.Delete(ctx, keys...)
	require.NoError(t, err)

	for _, key := range keys {
		var result int64
		err := cache.Get(ctx, key, &result)
		assert.Equal(t, redis_a.ErrCacheMiss, err)
	}

	// Deleting nothing is a no-op
	err = cache.Delete(ctx)
	require.NoError(t, err)
}

func TestCache_Exists(t *testing.T) {
	ctx := context.Background()
	cache, _ := setupCache(t)

	require.NoError(t, cache.Set(ctx, "exists:1", int64(1)))
	require.NoError(t, cache.Set(ctx, "exists:2", int64(2)))

	ok, err := cache.Exists(ctx, "exists:1", "exists:2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.Exists(ctx, "exists:1", "exists:missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Ping(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)

	require.NoError(t, cache.Ping(ctx))

	mr.Close()
	assert.Error(t, cache.Ping(ctx))
}
