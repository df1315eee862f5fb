package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/skyblock-tools/auction-filter/pkg/auctions"
)

// DefaultTTL is how long a snapshot stays fresh.
const DefaultTTL = 5 * time.Minute

// Fetcher retrieves the full listing set from upstream.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]auctions.Listing, error)
}

// Config holds the cache configuration.
type Config struct {
	// TTL is the staleness threshold. Zero means DefaultTTL.
	TTL time.Duration

	// Clock supplies the current time; tests inject a fake. Nil means
	// time.Now.
	Clock func() time.Time
}

// Cache owns the single auction snapshot. Reads never block on network I/O;
// only Refresh does, and concurrent refreshes are coalesced into one
// upstream fetch.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger

	group    singleflight.Group
	snapshot atomic.Pointer[Snapshot]
}

// New creates a cache around the given fetcher.
func New(fetcher Fetcher, cfg Config) *Cache {
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Cache{
		fetcher: fetcher,
		ttl:     cfg.TTL,
		now:     cfg.Clock,
		logger:  log.With().Str("component", "cache").Logger(),
	}
}

// Current returns the held snapshot, or nil when nothing has been fetched
// yet. It never blocks.
func (c *Cache) Current() *Snapshot {
	return c.snapshot.Load()
}

// Stale reports whether the snapshot is absent or older than the TTL.
func (c *Cache) Stale() bool {
	snap := c.snapshot.Load()
	return snap == nil || snap.Age(c.now()) > c.ttl
}

// Refresh fetches the full listing set and atomically replaces the snapshot.
// Partial or empty fetch results still produce a fresh snapshot; a fetch
// that errors (cancellation) leaves the prior snapshot untouched. Concurrent
// callers share one upstream fetch.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, shared := c.group.Do("refresh", func() (any, error) {
		start := time.Now()
		listings, err := c.fetcher.FetchAll(ctx)
		if err != nil {
			refreshesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("fetch auctions: %w", err)
		}

		snap := &Snapshot{Listings: listings, FetchedAt: c.now()}
		c.snapshot.Store(snap)

		refreshesTotal.WithLabelValues("ok").Inc()
		snapshotListings.Set(float64(len(listings)))
		c.logger.Info().
			Int("listings", len(listings)).
			Dur("duration", time.Since(start)).
			Msg("Snapshot refreshed")
		return snap, nil
	})
	if shared {
		refreshesCoalesced.Inc()
	}
	return err
}

// Listings returns the current listing set, refreshing first when stale. A
// failed refresh is reported alongside whatever the cache still holds, so
// callers can keep serving the previous snapshot.
func (c *Cache) Listings(ctx context.Context) ([]auctions.Listing, error) {
	var err error
	if c.Stale() {
		err = c.Refresh(ctx)
	}

	if snap := c.snapshot.Load(); snap != nil {
		return snap.Listings, err
	}
	return nil, err
}
