package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares one window across processes using INCR with a TTL set on
// the first hit of each window. The TTL doubles as the reset timestamp.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, tenantID uuid.UUID) (Result, error) {
	key := fmt.Sprintf("licentra:ratelimit:%s", tenantID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Result{}, err
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return Result{}, err
	}
	// A negative TTL means the key has no expiry: either this INCR just created
	// it, or a previous process died between INCR and EXPIRE and left the counter
	// orphaned. Both cases (re)arm the window.
	if count == 1 || ttl < 0 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return Result{}, err
		}
		ttl = l.window
	}
	resetAt := l.now().Add(ttl)

	if count > int64(l.limit) {
		return Result{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Limit: l.limit, Remaining: remaining, ResetAt: resetAt}, nil
}
