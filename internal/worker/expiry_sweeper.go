package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
)

// ExpirySweeper periodically flips lapsed trials and subscriptions to
// expired. The entitlement check is date-based and correct without it; the
// sweep keeps stored statuses honest for listings and analytics.
type ExpirySweeper struct {
	users     user.Repository
	schedule  string
	scheduler *cron.Cron
	logger    *logger.Logger
}

// NewExpirySweeper creates a sweeper on a standard cron schedule
func NewExpirySweeper(users user.Repository, schedule string, log *logger.Logger) (*ExpirySweeper, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, err
	}

	return &ExpirySweeper{
		users:    users,
		schedule: schedule,
		logger:   log,
	}, nil
}

// Start schedules the sweep and runs it once immediately
func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, func() {
		s.Sweep(ctx)
	}); err != nil {
		return err
	}

	s.scheduler.Start()
	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Expiry sweeper started")

	s.Sweep(ctx)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *ExpirySweeper) Stop() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
	s.logger.Info("Expiry sweeper stopped")
}

// Sweep runs one pass
func (s *ExpirySweeper) Sweep(ctx context.Context) {
	changed, err := s.users.ExpireLapsed(ctx, time.Now())
	if err != nil {
		s.logger.ErrorWithErr(err, "Expiry sweep failed")
		return
	}

	if changed > 0 {
		s.logger.WithFields(map[string]interface{}{
			"expired": changed,
		}).Info("Expiry sweep completed")
	}
}
