package daily

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule runs at midnight, with seconds precision.
const DefaultSchedule = "0 0 0 * * *"

type Scheduler struct {
	cron      *cron.Cron
	publisher *Publisher
	logger    *zap.Logger
}

// NewScheduler registers publisher.RunOnce on schedule, a six-field cron
// expression.
func NewScheduler(schedule string, publisher *Publisher, logger *zap.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		publisher: publisher,
		logger:    logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid daily schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start publishes once immediately, then on schedule.
func (s *Scheduler) Start() {
	s.run()
	s.cron.Start()
	s.logger.Info("daily recipe scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and returns a context done when running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) run() {
	if err := s.publisher.RunOnce(context.Background()); err != nil {
		s.logger.Error("daily recipe job failed", zap.Error(err))
	}
}
