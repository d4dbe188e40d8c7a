package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"drive-transcribe-go/internal/logger"
)

// MinInterval is the smallest accepted sync interval. Smaller values
// are rejected rather than silently clamped.
const MinInterval = 2 * time.Hour

// Scheduler re-runs a sync job on a fixed interval.
type Scheduler struct {
	interval time.Duration
	job      func(context.Context)
	runner   *cron.Cron
}

func New(interval time.Duration, job func(context.Context)) (*Scheduler, error) {
	if interval < MinInterval {
		return nil, fmt.Errorf("interval %s is below the minimum %s", interval, MinInterval)
	}
	return &Scheduler{interval: interval, job: job, runner: cron.New()}, nil
}

// Start runs the job once immediately, then fires it on the interval
// until the context is cancelled. In-flight jobs finish before Start
// returns.
func (s *Scheduler) Start(ctx context.Context) error {
	log := logger.New().WithField("component", "scheduler").WithField("interval", s.interval.String())

	log.Info("running initial sync")
	s.job(ctx)

	_, err := s.runner.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		log.Info("scheduled sync triggered")
		s.job(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}

	s.runner.Start()
	log.Info("scheduler started")

	<-ctx.Done()
	<-s.runner.Stop().Done()
	log.Info("scheduler stopped")
	return nil
}
