package ratelimit

//go:generate mockgen -destination=../../mocks/mock_limiter.go -package=mocks github.com/joselazo21/todo-list/internal/auth/ratelimit Limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Limiter is a keyed counter with a fixed time window. Allow reports whether
// the request under key is still inside the window's budget.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Key builds the counter key for an endpoint and a client dimension,
// e.g. Key("login", "ip", "10.0.0.1") or Key("login", "email", "a@b.com").
func Key(endpoint, kind, value string) string {
	return fmt.Sprintf("rl:%s:%s:%s", endpoint, kind, value)
}

// RedisLimiter counts attempts in Redis so every serving instance shares the
// same window. INCR is atomic; the EXPIRE is only set on the first hit.
type RedisLimiter struct {
	pool *redis.Pool
}

func NewRedisLimiter(pool *redis.Pool) *RedisLimiter {
	return &RedisLimiter{pool: pool}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("rate limiter: get connection: %w", err)
	}
	defer conn.Close()

	count, err := redis.Int(conn.Do("INCR", key))
	if err != nil {
		return false, fmt.Errorf("rate limiter: incr %s: %w", key, err)
	}

	if count == 1 {
		if _, err := conn.Do("EXPIRE", key, int(window.Seconds())); err != nil {
			return false, fmt.Errorf("rate limiter: expire %s: %w", key, err)
		}
	}

	return count <= limit, nil
}
