package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skyblock-tools/auction-filter/pkg/auctions"
)

// fakeClock is a manually advanced clock for staleness tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeFetcher returns canned listings, optionally after a delay, and counts
// upstream calls.
type fakeFetcher struct {
	mu       sync.Mutex
	listings []auctions.Listing
	err      error
	delay    time.Duration
	calls    atomic.Int32
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]auctions.Listing, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listings, f.err
}

func (f *fakeFetcher) set(listings []auctions.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings = listings
}

func TestNew_PanicsOnNilFetcher(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("New should panic with nil fetcher")
		}
	}()
	New(nil, Config{})
}

func TestStale_Lifecycle(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{listings: []auctions.Listing{{UUID: "a"}}}
	c := New(fetcher, Config{TTL: 5 * time.Minute, Clock: clock.Now})

	if !c.Stale() {
		t.Error("cache should be stale before the first refresh")
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if c.Stale() {
		t.Error("cache should be fresh immediately after refresh")
	}

	clock.Advance(5 * time.Minute)
	if c.Stale() {
		t.Error("cache at exactly the TTL boundary should still be fresh")
	}

	clock.Advance(time.Second)
	if !c.Stale() {
		t.Error("cache should be stale once the TTL has elapsed")
	}
}

func TestRefresh_EmptyResultStillFresh(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{}
	c := New(fetcher, Config{Clock: clock.Now})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	// Empty upstream and total fetch failure both yield an empty snapshot;
	// either way the snapshot is fresh.
	if c.Stale() {
		t.Error("empty snapshot should still count as fresh")
	}
	snap := c.Current()
	if snap == nil {
		t.Fatal("Current returned nil after refresh")
	}
	if len(snap.Listings) != 0 {
		t.Errorf("snapshot holds %d listings, want 0", len(snap.Listings))
	}
}

func TestRefresh_ErrorKeepsPriorSnapshot(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{listings: []auctions.Listing{{UUID: "old"}}}
	c := New(fetcher, Config{Clock: clock.Now})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}

	fetcher.mu.Lock()
	fetcher.err = errors.New("fetch cancelled")
	fetcher.mu.Unlock()

	if err := c.Refresh(context.Background()); err == nil {
		t.Error("Refresh should surface the fetch error")
	}

	snap := c.Current()
	if snap == nil || len(snap.Listings) != 1 || snap.Listings[0].UUID != "old" {
		t.Errorf("prior snapshot not preserved after failed refresh: %+v", snap)
	}
}

func TestRefresh_Coalesces(t *testing.T) {
	fetcher := &fakeFetcher{delay: 50 * time.Millisecond}
	c := New(fetcher, Config{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Refresh(context.Background()); err != nil {
				t.Errorf("Refresh returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls := fetcher.calls.Load(); calls != 1 {
		t.Errorf("upstream fetched %d times, want 1 (coalesced)", calls)
	}
}

func TestRefresh_AtomicReplacement(t *testing.T) {
	old := []auctions.Listing{{UUID: "old-1"}}
	fresh := []auctions.Listing{{UUID: "new-1"}, {UUID: "new-2"}}

	fetcher := &fakeFetcher{listings: old}
	c := New(fetcher, Config{})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}
	fetcher.set(fresh)

	// Readers racing the replacement must always observe one of the two
	// complete snapshots, never a mix.
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := c.Current()
				switch len(snap.Listings) {
				case 1:
					if snap.Listings[0].UUID != "old-1" {
						t.Errorf("inconsistent 1-listing snapshot: %+v", snap.Listings)
						return
					}
				case 2:
					if snap.Listings[0].UUID != "new-1" || snap.Listings[1].UUID != "new-2" {
						t.Errorf("inconsistent 2-listing snapshot: %+v", snap.Listings)
						return
					}
				default:
					t.Errorf("snapshot with %d listings observed", len(snap.Listings))
					return
				}
			}
		}()
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	close(done)
	wg.Wait()

	snap := c.Current()
	if len(snap.Listings) != 2 {
		t.Errorf("final snapshot holds %d listings, want 2", len(snap.Listings))
	}
}

func TestListings_LazyRefreshWhenStale(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{listings: []auctions.Listing{{UUID: "a"}}}
	c := New(fetcher, Config{TTL: 5 * time.Minute, Clock: clock.Now})

	listings, err := c.Listings(context.Background())
	if err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("Listings returned %d entries, want 1", len(listings))
	}
	if calls := fetcher.calls.Load(); calls != 1 {
		t.Errorf("upstream fetched %d times, want 1", calls)
	}

	// Fresh snapshot: the read must not touch upstream.
	if _, err := c.Listings(context.Background()); err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}
	if calls := fetcher.calls.Load(); calls != 1 {
		t.Errorf("fresh read hit upstream (%d calls), want 1", calls)
	}

	clock.Advance(6 * time.Minute)
	if _, err := c.Listings(context.Background()); err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}
	if calls := fetcher.calls.Load(); calls != 2 {
		t.Errorf("stale read should refresh (%d calls), want 2", calls)
	}
}

func TestListings_FailedRefreshServesPrevious(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{listings: []auctions.Listing{{UUID: "old"}}}
	c := New(fetcher, Config{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := c.Listings(context.Background()); err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}

	clock.Advance(10 * time.Minute)
	fetcher.mu.Lock()
	fetcher.err = errors.New("fetch cancelled")
	fetcher.mu.Unlock()

	listings, err := c.Listings(context.Background())
	if err == nil {
		t.Error("Listings should report the failed refresh")
	}
	if len(listings) != 1 || listings[0].UUID != "old" {
		t.Errorf("Listings = %+v, want the previous snapshot", listings)
	}
}
