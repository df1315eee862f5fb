// Package cache holds the most recent full auction snapshot and decides when
// it must be refreshed.
package cache

import (
	"time"

	"github.com/skyblock-tools/auction-filter/pkg/auctions"
)

// Snapshot is the complete listing set from one fetch cycle, stamped with
// its capture time. A snapshot is never mutated after construction; refreshes
// install a new one.
type Snapshot struct {
	Listings  []auctions.Listing
	FetchedAt time.Time
}

// Age returns the elapsed time since capture.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
