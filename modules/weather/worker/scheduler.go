package worker

import (
	"context"
	"time"

	"meteocal/core/logger"

	"github.com/robfig/cron/v3"
)

// Sweeper refreshes the forecasts of all upcoming events.
type Sweeper interface {
	RefreshUpcoming(ctx context.Context) (int, error)
}

// Scheduler runs the periodic forecast sweep.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
}

func NewScheduler(spec string, loc *time.Location, sweeper Sweeper, timeout time.Duration) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		sweeper: sweeper,
		timeout: timeout,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.sweeper.RefreshUpcoming(ctx); err != nil {
		logger.Error("Scheduler:RefreshUpcoming:Error", "error", err)
	}
}

func (s *Scheduler) Start() {
	logger.Info("Scheduler:Start", "entries", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
