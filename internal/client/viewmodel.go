package client

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/naresh-2026/warehouseProducts/internal/models"
)

// Mode is the refresh state of a view model.
type Mode int

const (
	// ModePolling refetches the recent window on a fixed interval.
	ModePolling Mode = iota
	// ModeStatic holds a one-shot full listing and never refreshes.
	// There is no transition back to polling.
	ModeStatic
)

// SortOrder is the direction of the derived view's timestamp sort.
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// FilterAll is the category filter value that matches every record.
const FilterAll = "All"

// ErrClosed is returned by operations on a view model after Close.
var ErrClosed = errors.New("view model is closed")

// ViewModel keeps a client-local copy of one owner's inventory and derives
// the displayed listing from it. Each instance owns its state; nothing is
// shared across instances.
//
// Every fetch is tagged with the generation current when it started. Close
// and ShowAll advance the generation, so a result that resolves late is
// recognized as stale and discarded instead of overwriting newer state.
type ViewModel struct {
	fetcher  Fetcher
	owner    string
	interval time.Duration

	mu      sync.Mutex
	mode    Mode
	records []models.Product
	lastErr error
	filter  string
	order   SortOrder
	gen     uint64
	closed  bool
	sched   *SyncScheduler
}

// NewViewModel creates a view model for one owner's inventory.
func NewViewModel(fetcher Fetcher, owner string, interval time.Duration) *ViewModel {
	return &ViewModel{
		fetcher:  fetcher,
		owner:    owner,
		interval: interval,
		filter:   FilterAll,
	}
}

// Start begins polling the recent window. Calling Start twice, or after
// Close, is a no-op.
func (vm *ViewModel) Start(ctx context.Context) {
	vm.mu.Lock()
	if vm.closed || vm.sched != nil {
		vm.mu.Unlock()
		return
	}
	sched := NewSyncScheduler(vm.interval, vm.refreshRecent)
	vm.sched = sched
	vm.mu.Unlock()

	go sched.Run(ctx)
}

// refreshRecent is one polling tick: fetch the recent window and apply the
// result unless it went stale while in flight.
func (vm *ViewModel) refreshRecent(ctx context.Context) {
	vm.mu.Lock()
	if vm.closed || vm.mode != ModePolling {
		vm.mu.Unlock()
		return
	}
	gen := vm.gen
	vm.mu.Unlock()

	records, err := vm.fetcher.ListRecent(ctx, vm.owner)
	vm.apply(gen, records, err)
}

// apply installs a fetch result. A result from a stale generation, or one
// arriving after Close, leaves the state untouched. A failed fetch sets the
// error state without discarding the previous records; the next successful
// fetch clears it.
func (vm *ViewModel) apply(gen uint64, records []models.Product, err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed || gen != vm.gen {
		return
	}
	if err != nil {
		vm.lastErr = err
		return
	}
	vm.records = records
	vm.lastErr = nil
}

// ShowAll fetches the owner's full inventory once and freezes automatic
// refresh. On a failed fetch the view model stays in polling mode with the
// error state set. On success the category filter resets to All.
func (vm *ViewModel) ShowAll(ctx context.Context) error {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return ErrClosed
	}
	if vm.mode == ModeStatic {
		vm.mu.Unlock()
		return nil
	}
	// Any poll fetch still in flight is stale from here on.
	vm.gen++
	gen := vm.gen
	vm.mu.Unlock()

	records, err := vm.fetcher.ListAll(ctx, vm.owner)
	if err != nil {
		vm.apply(gen, nil, err)
		return err
	}

	vm.mu.Lock()
	if vm.closed || gen != vm.gen {
		vm.mu.Unlock()
		return nil
	}
	vm.mode = ModeStatic
	vm.records = records
	vm.lastErr = nil
	vm.filter = FilterAll
	sched := vm.sched
	vm.sched = nil
	vm.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
	return nil
}

// SetFilter selects the category filter for the derived view. Filtering is
// client-local and never triggers a refetch.
func (vm *ViewModel) SetFilter(category string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = category
}

// SetSort selects the sort direction for the derived view.
func (vm *ViewModel) SetSort(order SortOrder) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.order = order
}

// Mode reports the current refresh state.
func (vm *ViewModel) Mode() Mode {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.mode
}

// View recomputes the derived listing: filter by category, then sort by
// creation time. An error state from the last fetch suppresses the listing.
func (vm *ViewModel) View() ([]models.Product, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.lastErr != nil {
		return nil, vm.lastErr
	}

	out := make([]models.Product, 0, len(vm.records))
	for _, p := range vm.records {
		if vm.filter == "" || vm.filter == FilterAll || p.Category == vm.filter {
			out = append(out, p)
		}
	}

	order := vm.order
	sort.SliceStable(out, func(i, j int) bool {
		if order == NewestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Close tears the view model down: the poller stops and any fetch that
// resolves afterwards is discarded. Safe to call more than once.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	vm.closed = true
	vm.gen++
	sched := vm.sched
	vm.sched = nil
	vm.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
}
