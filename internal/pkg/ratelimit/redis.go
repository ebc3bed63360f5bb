package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared across instances via Redis
// INCR+EXPIRE. It fails open: a Redis error admits the request.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		window: window,
		prefix: "rl:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.client == nil {
		return Decision{Allowed: true}, nil
	}

	cnt, err := l.client.Incr(ctx, l.prefix+key).Result()
	if err != nil {
		return Decision{Allowed: true}, err
	}
	if cnt == 1 {
		l.client.Expire(ctx, l.prefix+key, l.window)
	}
	if cnt > int64(l.max) {
		return Decision{Allowed: false, RetryAfter: l.window}, nil
	}
	return Decision{Allowed: true}, nil
}
