package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result describes one admission decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is how long the caller should wait before the window opens again.
func (r Result) RetryAfter(now time.Time) time.Duration {
	d := r.ResetAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Limiter admits requests per tenant within a fixed window. Implementations must
// be safe under concurrent calls for the same tenant.
type Limiter interface {
	Allow(ctx context.Context, tenantID uuid.UUID) (Result, error)
}
