package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type record struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. State is volatile:
// a restart resets every window, and instances do not share counters. That
// is an accepted property of the deployment, not something to paper over
// here.
type MemoryLimiter struct {
	mu      sync.Mutex
	records map[string]*record

	max    int
	window time.Duration
	clock  clockwork.Clock
}

// NewMemoryLimiter creates a limiter allowing max requests per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return newMemoryLimiter(max, window, clockwork.NewRealClock())
}

func newMemoryLimiter(max int, window time.Duration, clock clockwork.Clock) *MemoryLimiter {
	return &MemoryLimiter{
		records: make(map[string]*record),
		max:     max,
		window:  window,
		clock:   clock,
	}
}

// Allow implements Limiter. The first request from a key, or the first
// after its window expired, opens a fresh window with count 1.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	rec, ok := l.records[key]
	if !ok || now.After(rec.resetAt) {
		rec = &record{count: 1, resetAt: now.Add(l.window)}
		l.records[key] = rec
		return Result{Allowed: true, Remaining: l.max - 1, ResetAt: rec.resetAt}, nil
	}

	if rec.count >= l.max {
		return Result{Allowed: false, Remaining: 0, ResetAt: rec.resetAt}, nil
	}

	rec.count++
	return Result{Allowed: true, Remaining: l.max - rec.count, ResetAt: rec.resetAt}, nil
}

// Prune discards expired records. It is called periodically by a scheduled
// job rather than inline on the request path.
func (l *MemoryLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	for key, rec := range l.records {
		if now.After(rec.resetAt) {
			delete(l.records, key)
		}
	}
}

// Len reports the number of tracked keys, expired or not.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
