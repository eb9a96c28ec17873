package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joselazo21/todo-list/internal/auth/ratelimit"
)

func newTestLimiter(t *testing.T) (*ratelimit.RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
	}
	t.Cleanup(func() { pool.Close() })

	return ratelimit.NewRedisLimiter(pool), mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()
	key := ratelimit.Key("login", "ip", "10.0.0.1")

	t.Run("admits requests up to the limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			ok, err := limiter.Allow(ctx, key, 5, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok, "attempt %d should be admitted", i+1)
		}
	})

	t.Run("rejects the first request past the limit", func(t *testing.T) {
		ok, err := limiter.Allow(ctx, key, 5, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRedisLimiter_Allow_WindowExpiry(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()
	key := ratelimit.Key("register", "ip", "10.0.0.2")

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// Once the window elapses the counter is gone and the budget resets.
	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_Allow_IndependentKeys(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	keyA := ratelimit.Key("login", "email", "alice@example.com")
	keyB := ratelimit.Key("login", "email", "bob@example.com")

	for i := 0; i < 5; i++ {
		ok, err := limiter.Allow(ctx, keyA, 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, keyA, 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A different key still has its full budget.
	ok, err = limiter.Allow(ctx, keyB, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_Allow_RedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "rl:login:ip:10.0.0.3", 5, time.Minute)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "rl:login:ip:10.0.0.1", ratelimit.Key("login", "ip", "10.0.0.1"))
	assert.Equal(t, "rl:register:email:a@b.com", ratelimit.Key("register", "email", "a@b.com"))
}
