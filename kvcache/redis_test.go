// Lesson: integration testing against Redis.
//
// These tests need a real server, so they gate themselves on
// TEST_REDIS_ADDR and skip cleanly when it is unset; a plain
// `go test ./...` stays green on a machine with nothing running. Run them
// with something like:
//
//	docker run --rm -p 6379:6379 redis:7
//	TEST_REDIS_ADDR=localhost:6379 go test ./kvcache
//
// Every key lives under a test-only prefix and setup deletes the prefix
// before each test, so runs are isolated from each other and from anything
// else using the same database.
package kvcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotestbook/gotestbook/envconf"
)

const redisTestPrefix = "gotestbook:test:"

func setupRedis(t *testing.T) *RedisCache {
	t.Helper()

	integ, err := envconf.LoadIntegration()
	require.NoError(t, err)
	if !integ.HasRedis() {
		t.Skip("skipping: TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	cache, err := NewRedisCache(ctx, RedisConfig{
		Addr:     integ.RedisAddr,
		Password: integ.RedisPassword,
		DB:       integ.RedisDB,
	})
	require.NoError(t, err)

	cleanup := func() {
		client := cache.Client()
		iter := client.Scan(ctx, 0, redisTestPrefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			_ = client.Del(ctx, iter.Val()).Err()
		}
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		_ = cache.Close()
	})

	return cache
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache := setupRedis(t)
	ctx := context.Background()
	key := redisTestPrefix + "roundtrip"

	require.NoError(t, cache.Set(ctx, key, []byte("hello"), time.Minute))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisCache_MissIsSentinel(t *testing.T) {
	cache := setupRedis(t)

	// The sentinel hides the driver's redis.Nil, so callers never import
	// the driver just to detect a miss.
	_, err := cache.Get(context.Background(), redisTestPrefix+"never-set")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_TTLExpires(t *testing.T) {
	cache := setupRedis(t)
	ctx := context.Background()
	key := redisTestPrefix + "short-lived"

	// Real server, real clock: no fake time here, so the TTL is short and
	// the assertion polls instead of sleeping a fixed amount.
	require.NoError(t, cache.Set(ctx, key, []byte("going"), 100*time.Millisecond))

	assert.Eventually(t, func() bool {
		_, err := cache.Get(ctx, key)
		return err != nil
	}, 2*time.Second, 20*time.Millisecond, "entry should expire")

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache := setupRedis(t)
	ctx := context.Background()
	key := redisTestPrefix + "doomed"

	require.NoError(t, cache.Set(ctx, key, []byte("x"), time.Minute))
	require.NoError(t, cache.Delete(ctx, key))

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Ping(t *testing.T) {
	cache := setupRedis(t)
	assert.NoError(t, cache.Ping(context.Background()))
}

// The typed layer was developed against MemoryCache; this run proves the
// same code holds against the real backend.
func TestProfileCache_AgainstRedis(t *testing.T) {
	cache := setupRedis(t)
	profiles := NewProfileCache(cache, redisTestPrefix+"profile:", time.Minute)
	ctx := context.Background()

	require.NoError(t, profiles.Set(ctx, testProfile))

	got, err := profiles.Get(ctx, testProfile.ID)
	require.NoError(t, err)
	assert.Equal(t, testProfile, got)

	loader := &countingLoader{profiles: map[string]Profile{testProfile.ID: testProfile}}
	fromCache, err := profiles.GetOrLoad(ctx, testProfile.ID, loader.load)
	require.NoError(t, err)
	assert.Equal(t, testProfile, fromCache)
	assert.Equal(t, 0, loader.calls)
}
