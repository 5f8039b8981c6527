// Package scheduler runs the periodic due-date scan.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/logger"
)

// Scheduler drives the background due-date notification scan.
type Scheduler struct {
	cron          *cron.Cron
	notifications *services.NotificationService
	spec          string
	log           *zap.Logger
}

// Option customises the Scheduler.
type Option func(*Scheduler)

// WithSpec overrides the cron spec for the due-date scan.
func WithSpec(spec string) Option {
	return func(s *Scheduler) {
		if spec != "" {
			s.spec = spec
		}
	}
}

// New creates a Scheduler. The scan runs hourly unless overridden.
func New(notifications *services.NotificationService, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:          cron.New(),
		notifications: notifications,
		spec:          "@hourly",
		log:           logger.WithModule("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the scan job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runScan); err != nil {
		return fmt.Errorf("scheduler: add due-date job: %w", err)
	}
	s.cron.Start()
	s.log.Info("scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runScan() {
	result, err := s.notifications.GenerateDueDateNotifications()
	if err != nil {
		s.log.Error("due-date scan failed", zap.Error(err))
		return
	}
	if result.Total() > 0 {
		s.log.Info("due-date scan created notifications",
			zap.Int("due_soon", result.DueSoon),
			zap.Int("due_today", result.DueToday),
			zap.Int("overdue", result.Overdue))
	}
}
