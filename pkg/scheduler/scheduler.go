// Package scheduler runs periodic jobs on cron specs. Every job is wrapped with
// panic recovery and skip-if-still-running, and runs in the configured time zone.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ghuser/contracthub/pkg/logger"
)

// JobFunc is one scheduled unit of work.
type JobFunc func(ctx context.Context) error

// Scheduler manages the cron jobs of the worker.
type Scheduler struct {
	cron   *cron.Cron
	log    logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Scheduler evaluating specs in loc.
func New(log logger.Logger, loc *time.Location) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(log.ToSlog().Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{cron: c, log: log, ctx: ctx, cancel: cancel}
}

// Register schedules job under name at spec (standard 5-field cron syntax).
func (s *Scheduler) Register(name, spec string, job JobFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.log.InfoContext(s.ctx, "scheduler: job started", "job", name)
		if err := job(s.ctx); err != nil {
			s.log.ErrorContext(s.ctx, "scheduler: job failed", "job", name, "error", err,
				"duration_ms", time.Since(start).Milliseconds())
			return
		}
		s.log.InfoContext(s.ctx, "scheduler: job finished", "job", name,
			"duration_ms", time.Since(start).Milliseconds())
	})
	if err != nil {
		return fmt.Errorf("scheduler: register %s at %q: %w", name, spec, err)
	}
	s.log.Info("scheduler: job scheduled", "job", name, "schedule", spec)
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs' context and waits for them to return, or for ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler: stop: %w", ctx.Err())
	}
}
