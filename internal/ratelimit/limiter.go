// Package ratelimit provides fixed-window request limiting keyed by an
// opaque string (in practice the client IP). The Limiter interface is
// deliberately small so callers don't care whether the window state lives
// in process memory or in a shared Redis instance.
package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of a limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter checks and counts a request against a fixed window. Allow both
// records the attempt and reports whether it is within the limit: a denied
// attempt is not counted toward the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
