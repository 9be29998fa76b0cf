package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler periodically rebuilds the index as a fallback for environments
// where filesystem notifications are unreliable (network mounts, containers).
type Scheduler struct {
	scheduler gocron.Scheduler
	manager   *Manager
}

// NewScheduler creates a scheduler that rebuilds manager's index every
// interval.
func NewScheduler(manager *Manager, interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			_ = manager.Rebuild(ctx)
		}),
		gocron.WithName("index-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule index rebuild: %w", err)
	}

	return &Scheduler{scheduler: s, manager: manager}, nil
}

// Start begins periodic execution.
func (s *Scheduler) Start() {
	slog.Info("Starting index rebuild scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down gracefully.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
