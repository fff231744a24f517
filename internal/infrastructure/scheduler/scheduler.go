package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrInvalidSchedule is returned when the configured cron expression cannot be parsed
var ErrInvalidSchedule = errors.New("invalid cron schedule")

// Scheduler runs the recurring billing jobs on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	jobs   *BillingJobs
	config config.SchedulerConfig
	logger *zap.Logger
}

// NewScheduler creates a scheduler and registers the daily billing job.
// The daily run opens the next billing cycle and then sends reminders.
func NewScheduler(cfg config.SchedulerConfig, jobs *BillingJobs, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.Local))

	s := &Scheduler{
		cron:   c,
		jobs:   jobs,
		config: cfg,
		logger: logger.Named("scheduler"),
	}

	if _, err := c.AddFunc(cfg.DailyCronSchedule, s.runDaily); err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	return s, nil
}

// Start begins the cron scheduler. It is a no-op when disabled by config.
func (s *Scheduler) Start() {
	if !s.config.Enabled {
		s.logger.Info("Billing scheduler disabled")
		return
	}
	s.cron.Start()
	s.logger.Info("Billing scheduler started",
		zap.String("schedule", s.config.DailyCronSchedule))
}

// Stop stops the scheduler and waits for any in-flight job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Billing scheduler stopped")
}

// runDaily is the scheduled entry point for one billing day
func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	if err := s.jobs.RunBillingCycle(ctx); err != nil {
		s.logger.Error("Daily billing cycle failed", zap.Error(err))
	}
	if _, err := s.jobs.SendPaymentReminders(ctx); err != nil {
		s.logger.Error("Daily reminder run failed", zap.Error(err))
	}
}
