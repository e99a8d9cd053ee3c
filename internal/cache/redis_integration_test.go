package cache

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var (
	testRedisURL string
	redContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	// Parse flags to check for -short
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	redContainer, err = tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := redContainer.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	defer func() {
		if err := redContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
		}
	}()
	os.Exit(m.Run())
}

func setupTestRedisStore(t *testing.T, ttl time.Duration) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	store, err := NewRedisStore(testRedisURL, ttl)
	require.NoError(t, err)

	// Flush all keys before each test
	require.NoError(t, store.rdb.FlushAll(context.Background()).Err())

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestRedisStore_SetGet(t *testing.T) {
	store := setupTestRedisStore(t, time.Minute)
	ctx := context.Background()

	key := Key("/analyze", []byte(`{"texts":["good"]}`))
	require.NoError(t, store.Set(ctx, key, []byte(`{"cached":true}`)))

	payload, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"cached":true}`), payload)
}

func TestRedisStore_MissOnUnknownKey(t *testing.T) {
	store := setupTestRedisStore(t, time.Minute)

	payload, ok, err := store.Get(context.Background(), "never-stored")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestRedisStore_SetOverwrites(t *testing.T) {
	store := setupTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("first")))
	require.NoError(t, store.Set(ctx, "k", []byte("second")))

	payload, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), payload)
}

func TestRedisStore_EntriesExpire(t *testing.T) {
	store := setupTestRedisStore(t, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("payload")))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	store := setupTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("payload")))

	keys, err := store.rdb.Keys(ctx, redisKeyPrefix+"*").Result()
	require.NoError(t, err)
	assert.Equal(t, []string{redisKeyPrefix + "k"}, keys)
}

func TestRedisStore_Ping(t *testing.T) {
	store := setupTestRedisStore(t, time.Minute)
	require.NoError(t, store.Ping(context.Background()))
}

func TestRedisStore_Backend(t *testing.T) {
	store := setupTestRedisStore(t, time.Minute)
	assert.Equal(t, "redis", store.Backend())
}
