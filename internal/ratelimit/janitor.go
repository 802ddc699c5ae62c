package ratelimit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Janitor periodically prunes expired windows from memory limiters so the
// per-IP maps don't grow without bound. Redis-backed limiters expire keys
// themselves and don't need one.
type Janitor struct {
	scheduler gocron.Scheduler
	log       *slog.Logger
}

// NewJanitor creates a janitor that prunes the given limiters on the
// interval. Call Start to begin pruning.
func NewJanitor(interval time.Duration, log *slog.Logger, limiters ...*MemoryLimiter) (*Janitor, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	logger := log.With("component", "ratelimit_janitor")
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			for _, l := range limiters {
				l.Prune()
			}
			logger.Debug("pruned expired rate limit windows")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule prune job: %w", err)
	}

	return &Janitor{scheduler: s, log: logger}, nil
}

// Start begins the prune schedule.
func (j *Janitor) Start() {
	j.scheduler.Start()
}

// Stop shuts the schedule down, waiting for a running prune to finish.
func (j *Janitor) Stop() error {
	if err := j.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}
	return nil
}
