package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"
)

const defaultInterval = time.Hour

type ServiceParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics
	Interval time.Duration
}

// Service runs the registered maintenance jobs once per interval on
// whichever worker holds the lock.
type Service struct {
	logg     *logger.Logger
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	interval time.Duration
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Lock == nil {
		return nil, fmt.Errorf("lock required")
	}
	registry := params.Registry
	if registry == nil {
		registry = &Registry{}
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		logg:     params.Logger,
		registry: registry,
		lock:     params.Lock,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run executes a cycle immediately and then on every tick. It returns the
// context error once ctx is done.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.runCycle(ctx); err != nil {
			s.logg.Error(ctx, "cron cycle failed", err)
		}
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "cron service stopping")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// runCycle runs every job once under the lock. A failing job does not stop
// the others; failures come back combined.
func (s *Service) runCycle(ctx context.Context) error {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		s.logg.Info(ctx, "cron lock held elsewhere; skipping cycle")
		return nil
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.logg.Error(ctx, "failed to release cron lock", err)
		}
	}()

	ctx = s.logg.WithField(ctx, "cycle_id", uuid.NewString())
	start := time.Now()

	var (
		failures error
		affected int64
	)
	jobs := s.registry.Jobs()
	for _, job := range jobs {
		rows, jobErr := s.runJob(ctx, job)
		if jobErr != nil {
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", job.Name(), jobErr))
			continue
		}
		affected += rows
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"jobs":          len(jobs),
		"failed":        len(multierr.Errors(failures)),
		"rows_affected": affected,
		"duration_ms":   time.Since(start).Milliseconds(),
	}), "cron cycle complete")
	return failures
}

func (s *Service) runJob(ctx context.Context, job Job) (affected int64, err error) {
	name := job.Name()
	ctx = s.logg.WithField(ctx, "job", name)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			affected, err = 0, fmt.Errorf("panic: %v", rec)
		}
		duration := time.Since(start)
		s.metrics.ObserveDuration(name, duration)
		jobCtx := s.logg.WithFields(ctx, map[string]any{
			"duration_ms":   duration.Milliseconds(),
			"rows_affected": affected,
		})
		if err != nil {
			s.metrics.IncFailure(name)
			s.logg.Error(jobCtx, "cron job failed", err)
			return
		}
		s.metrics.IncSuccess(name)
		s.metrics.AddAffected(name, affected)
		s.logg.Info(jobCtx, "cron job completed")
	}()

	return job.Run(ctx)
}
