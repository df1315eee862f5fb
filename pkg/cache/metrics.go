package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for snapshot refresh operations.
var (
	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_cache_refreshes_total",
		Help: "Snapshot refresh attempts by outcome",
	}, []string{"outcome"})

	refreshesCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_cache_refreshes_coalesced_total",
		Help: "Refresh calls coalesced into an already in-flight fetch",
	})

	snapshotListings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "auction_cache_snapshot_listings",
		Help: "Listings held by the current snapshot",
	})
)
