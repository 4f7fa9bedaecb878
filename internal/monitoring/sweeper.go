package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/naresh-2026/warehouseProducts/internal/services"
)

// Sweeper prunes old activity entries on a cron schedule.
type Sweeper struct {
	activitySvc services.ActivityServiceProvider
	schedule    cron.Schedule
	retention   time.Duration
	nextRunAt   time.Time
	ticker      *time.Ticker
	done        chan bool
}

// NewSweeper creates a sweeper from a standard cron expression and a
// retention window.
func NewSweeper(activitySvc services.ActivityServiceProvider, spec string, retention time.Duration) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		activitySvc: activitySvc,
		schedule:    schedule,
		retention:   retention,
		nextRunAt:   schedule.Next(time.Now()),
		done:        make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *Sweeper) Run() {
	log.Info().Time("next_run", s.nextRunAt).Msg("Starting activity sweeper...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping activity sweeper.")
			return
		case <-s.ticker.C:
			s.sweepIfDue()
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

// sweepIfDue prunes when the schedule has come due and advances the next
// run time.
func (s *Sweeper) sweepIfDue() {
	now := time.Now()
	if now.Before(s.nextRunAt) {
		return
	}
	s.nextRunAt = s.schedule.Next(now)

	cutoff := now.Add(-s.retention)
	pruned, err := s.activitySvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to prune activity")
		return
	}
	log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("Sweeper: pruned old activity entries")
}
