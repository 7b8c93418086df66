package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryLimiter is a fixed-window counter per tenant. The window rolls over
// lazily on access; no sweeper is needed for correctness, only Evict to keep the
// map from growing with every tenant ever seen.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[uuid.UUID]*bucket
}

type bucket struct {
	count       int
	windowStart time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[uuid.UUID]*bucket),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, tenantID uuid.UUID) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[tenantID]
	if !ok || now.Sub(b.windowStart) >= l.window {
		b = &bucket{windowStart: now}
		l.buckets[tenantID] = b
	}

	resetAt := b.windowStart.Add(l.window)
	if b.count >= l.limit {
		return Result{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: resetAt}, nil
	}

	b.count++
	return Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - b.count,
		ResetAt:   resetAt,
	}, nil
}

// Evict removes buckets whose window ended more than maxIdle ago.
func (l *MemoryLimiter) Evict(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for id, b := range l.buckets {
		if b.windowStart.Add(l.window).Before(cutoff) {
			delete(l.buckets, id)
			evicted++
		}
	}
	return evicted
}
