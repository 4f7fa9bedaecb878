package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/naresh-2026/warehouseProducts/internal/models"
)

// Mock Fetcher
type fakeFetcher struct {
	mu          sync.Mutex
	recent      []models.Product
	all         []models.Product
	recentErr   error
	allErr      error
	recentCalls int
	blockRecent chan struct{} // when set, ListRecent waits on it
	started     chan struct{} // signaled when a blocked fetch begins
}

func (f *fakeFetcher) ListRecent(ctx context.Context, owner string) ([]models.Product, error) {
	f.mu.Lock()
	f.recentCalls++
	block := f.blockRecent
	started := f.started
	f.mu.Unlock()

	if block != nil {
		if started != nil {
			select {
			case started <- struct{}{}:
			default:
			}
		}
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	return append([]models.Product(nil), f.recent...), nil
}

func (f *fakeFetcher) ListAll(ctx context.Context, owner string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allErr != nil {
		return nil, f.allErr
	}
	return append([]models.Product(nil), f.all...), nil
}

func (f *fakeFetcher) setRecent(products ...models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent = products
}

func (f *fakeFetcher) setRecentErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentErr = err
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recentCalls
}

func product(name, category string, ts time.Time) models.Product {
	return models.Product{
		ID: name, Username: "alice", Name: name, Category: category, Quantity: 1, CreatedAt: ts,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func viewNames(t *testing.T, vm *ViewModel) []string {
	t.Helper()
	view, err := vm.View()
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	names := make([]string, len(view))
	for i, p := range view {
		names[i] = p.Name
	}
	return names
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStartPopulatesFromFirstFetch(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(product("B", "Books", baseTime.Add(time.Second)), product("A", "Books", baseTime))

	vm := NewViewModel(f, "alice", 5*time.Millisecond)
	defer vm.Close()
	vm.Start(context.Background())

	waitFor(t, "initial fetch", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 2
	})
}

func TestPollingPicksUpChanges(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(product("A", "Books", baseTime))

	vm := NewViewModel(f, "alice", 5*time.Millisecond)
	defer vm.Close()
	vm.Start(context.Background())

	waitFor(t, "initial fetch", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 1
	})

	f.setRecent(product("A", "Books", baseTime), product("B", "Books", baseTime.Add(time.Second)))
	waitFor(t, "poll to pick up the new record", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 2
	})
}

func TestShowAllFreezesRefresh(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(product("recent", "Books", baseTime))
	f.all = []models.Product{
		product("old", "Books", baseTime.Add(-time.Hour)),
		product("recent", "Books", baseTime),
	}

	vm := NewViewModel(f, "alice", 5*time.Millisecond)
	defer vm.Close()
	vm.Start(context.Background())
	waitFor(t, "initial fetch", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 1
	})

	if err := vm.ShowAll(context.Background()); err != nil {
		t.Fatalf("ShowAll: %v", err)
	}
	if vm.Mode() != ModeStatic {
		t.Fatal("ShowAll did not enter static mode")
	}
	view, err := vm.View()
	if err != nil || len(view) != 2 {
		t.Fatalf("view after ShowAll = %v, %v", view, err)
	}

	// Polling must be frozen: new server-side data never shows up. A tick
	// already in flight when ShowAll landed may still finish first.
	f.setRecent(product("newest", "Books", baseTime.Add(time.Hour)))
	time.Sleep(15 * time.Millisecond)
	callsAfterShowAll := f.calls()
	time.Sleep(50 * time.Millisecond)

	if got := f.calls(); got != callsAfterShowAll {
		t.Errorf("recent fetches continued after ShowAll: %d -> %d", callsAfterShowAll, got)
	}
	if names := viewNames(t, vm); len(names) != 2 {
		t.Errorf("static view changed: %v", names)
	}
}

func TestShowAllFailureStaysPolling(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(product("A", "Books", baseTime))
	f.allErr = errors.New("Failed to fetch all products")

	vm := NewViewModel(f, "alice", 5*time.Millisecond)
	defer vm.Close()
	vm.Start(context.Background())
	waitFor(t, "initial fetch", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 1
	})

	if err := vm.ShowAll(context.Background()); err == nil {
		t.Fatal("ShowAll with failing fetch returned nil error")
	}
	if vm.Mode() != ModePolling {
		t.Error("failed ShowAll left polling mode")
	}
	if _, err := vm.View(); err == nil {
		t.Error("failed ShowAll did not set the error state")
	}

	// The poller keeps ticking and the next success clears the error.
	waitFor(t, "recovery on next tick", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 1
	})
}

func TestFailedPollSetsErrorThenRecovers(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(product("A", "Books", baseTime))

	vm := NewViewModel(f, "alice", 5*time.Millisecond)
	defer vm.Close()
	vm.Start(context.Background())
	waitFor(t, "initial fetch", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 1
	})

	f.setRecentErr(errors.New("Failed to fetch products"))
	waitFor(t, "error state", func() bool {
		_, err := vm.View()
		return err != nil
	})

	f.setRecentErr(nil)
	waitFor(t, "recovery", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 1
	})
}

func TestCloseDiscardsLateResult(t *testing.T) {
	f := &fakeFetcher{
		blockRecent: make(chan struct{}),
		started:     make(chan struct{}, 1),
	}
	f.setRecent(product("late", "Books", baseTime))

	vm := NewViewModel(f, "alice", time.Hour)
	vm.Start(context.Background())

	// Wait until the first fetch is in flight, then tear down.
	<-f.started
	vm.Close()

	// Release the fetch; its result must not land.
	close(f.blockRecent)
	time.Sleep(20 * time.Millisecond)

	view, err := vm.View()
	if err != nil {
		t.Fatalf("View after Close: %v", err)
	}
	if len(view) != 0 {
		t.Errorf("late fetch mutated state after teardown: %v", view)
	}
}

func TestShowAllInvalidatesInFlightPoll(t *testing.T) {
	f := &fakeFetcher{
		blockRecent: make(chan struct{}),
		started:     make(chan struct{}, 1),
	}
	f.setRecent(product("stale-poll", "Books", baseTime.Add(time.Hour)))
	f.all = []models.Product{product("full", "Books", baseTime)}

	vm := NewViewModel(f, "alice", time.Hour)
	defer vm.Close()
	vm.Start(context.Background())
	<-f.started

	if err := vm.ShowAll(context.Background()); err != nil {
		t.Fatalf("ShowAll: %v", err)
	}

	// The poll that was in flight before ShowAll resolves now; it is stale
	// and must not overwrite the full listing.
	close(f.blockRecent)
	time.Sleep(20 * time.Millisecond)

	names := viewNames(t, vm)
	if len(names) != 1 || names[0] != "full" {
		t.Errorf("stale poll result overwrote the full listing: %v", names)
	}
}

func TestDerivedViewFilterAndSort(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(
		product("laptop", "Electronics", baseTime.Add(2*time.Second)),
		product("novel", "Books", baseTime.Add(time.Second)),
		product("phone", "Electronics", baseTime),
	)

	vm := NewViewModel(f, "alice", time.Hour)
	defer vm.Close()
	vm.Start(context.Background())
	waitFor(t, "initial fetch", func() bool {
		view, err := vm.View()
		return err == nil && len(view) == 3
	})
	callsBefore := f.calls()

	names := viewNames(t, vm)
	if names[0] != "laptop" || names[2] != "phone" {
		t.Errorf("default order = %v, want newest first", names)
	}

	vm.SetSort(OldestFirst)
	names = viewNames(t, vm)
	if names[0] != "phone" || names[2] != "laptop" {
		t.Errorf("oldest-first order = %v", names)
	}

	vm.SetFilter("Electronics")
	names = viewNames(t, vm)
	if len(names) != 2 || names[0] != "phone" || names[1] != "laptop" {
		t.Errorf("filtered view = %v", names)
	}

	// A filter with no matches yields an empty view, never an error.
	vm.SetFilter("Apparel")
	view, err := vm.View()
	if err != nil {
		t.Fatalf("View with empty filter result: %v", err)
	}
	if len(view) != 0 {
		t.Errorf("filter with zero matches returned %v", view)
	}

	vm.SetFilter(FilterAll)
	if names = viewNames(t, vm); len(names) != 3 {
		t.Errorf("All filter = %v, want identity", names)
	}

	// Filtering and sorting are pure and never refetch.
	if f.calls() != callsBefore {
		t.Errorf("derived view recomputation triggered %d extra fetches", f.calls()-callsBefore)
	}
}

func TestCloseIsIdempotentAndStopsPolling(t *testing.T) {
	f := &fakeFetcher{}
	f.setRecent(product("A", "Books", baseTime))

	vm := NewViewModel(f, "alice", 5*time.Millisecond)
	vm.Start(context.Background())
	waitFor(t, "initial fetch", func() bool { return f.calls() > 0 })

	vm.Close()
	vm.Close()

	// A tick already in flight is allowed to finish; after that the count
	// must hold steady.
	time.Sleep(15 * time.Millisecond)
	calls := f.calls()
	time.Sleep(30 * time.Millisecond)
	if got := f.calls(); got != calls {
		t.Errorf("polling continued after Close: %d -> %d", calls, got)
	}
}
