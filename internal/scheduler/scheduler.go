// Package scheduler runs periodic background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ScoreRefresher recomputes cached rating scores.
type ScoreRefresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// Scheduler drives the score refresher.
type Scheduler struct {
	cron    *cron.Cron
	scores  ScoreRefresher
	timeout time.Duration
	logger  zerolog.Logger
}

// New registers the score refresh job on spec. Overlapping runs are skipped.
func New(spec string, scores ScoreRefresher, timeout time.Duration, location *time.Location, logger zerolog.Logger) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}
	if timeout <= 0 {
		timeout = 4 * time.Minute
	}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		scores:  scores,
		timeout: timeout,
		logger:  logger.With().Str("component", "scheduler").Logger(),
	}

	if _, err := s.cron.AddFunc(spec, s.runScoreRefresh); err != nil {
		return nil, fmt.Errorf("invalid score refresh schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start refreshes scores once and then follows the schedule.
func (s *Scheduler) Start() {
	go s.runScoreRefresh()
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts scheduling and waits for a running job until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stopped before running job finished")
	}
}

func (s *Scheduler) runScoreRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	changed, err := s.scores.RefreshAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("score refresh job failed")
		return
	}

	s.logger.Debug().Int("changed", changed).Dur("took", time.Since(start)).Msg("score refresh job finished")
}
