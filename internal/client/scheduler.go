// Package client holds the view-side of the inventory system: an HTTP
// fetcher, a polling scheduler and a view model that keeps a displayed
// listing consistent with the server.
package client

import (
	"context"
	"sync"
	"time"
)

// SyncScheduler drives the periodic refresh of a polling view. Ticks run
// the callback synchronously, so at most one fetch is in flight at a time.
type SyncScheduler struct {
	interval time.Duration
	tick     func(ctx context.Context)
	done     chan struct{}
	stopOnce sync.Once
}

// NewSyncScheduler creates a scheduler invoking tick every interval.
func NewSyncScheduler(interval time.Duration, tick func(ctx context.Context)) *SyncScheduler {
	return &SyncScheduler{
		interval: interval,
		tick:     tick,
		done:     make(chan struct{}),
	}
}

// Run ticks once immediately, then on every interval until Stop is called
// or the context is cancelled.
func (s *SyncScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Stop halts the scheduler. Safe to call more than once.
func (s *SyncScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
