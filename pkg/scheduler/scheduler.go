// Package scheduler drives periodic snapshot refreshes, independent of the
// lazy refresh performed on the read path.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultInterval is the refresh cadence against the live API.
const DefaultInterval = 5 * time.Minute

// Refresher is the cache operation the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler calls Refresh on a fixed interval, whether or not any read has
// occurred. Overlap with read-triggered refreshes is absorbed by the cache's
// single-flight guard.
type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	logger   zerolog.Logger
}

// New creates a scheduler that refreshes target every interval.
func New(target Refresher, interval time.Duration, logger zerolog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := target.Refresh(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Scheduled refresh failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("register refresh job: %w", err)
	}

	return &Scheduler{cron: c, interval: interval, logger: logger}, nil
}

// Interval returns the configured refresh cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the background timer.
func (s *Scheduler) Start() {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting refresh scheduler")
	s.cron.Start()
}

// Stop halts the timer and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Refresh scheduler stopped")
}
