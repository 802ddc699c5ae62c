package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter backed by a shared Redis
// instance, for deployments running more than one process. Window state is
// a single counter per key with a TTL equal to the window.
type RedisLimiter struct {
	client *redis.Client
	log    *slog.Logger

	prefix string
	max    int
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing max requests per window,
// namespaced under prefix so independent endpoints don't share counters.
func NewRedisLimiter(client *redis.Client, log *slog.Logger, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		log:    log.With("component", "redis_limiter", "prefix", prefix),
		prefix: prefix,
		max:    max,
		window: window,
	}
}

// Allow implements Limiter. On a Redis failure the limiter fails open and
// logs: for this service availability beats strict enforcement.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.log.ErrorContext(ctx, "rate limit check failed, allowing request", "error", err, "key", key)
		return Result{Allowed: true, Remaining: l.max}, nil
	}

	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			l.log.ErrorContext(ctx, "failed to set window expiry", "error", err, "key", key)
		}
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	resetAt := time.Now().Add(ttl)

	if count > int64(l.max) {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	return Result{Allowed: true, Remaining: l.max - int(count), ResetAt: resetAt}, nil
}
