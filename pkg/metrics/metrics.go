// Package metrics documents the Prometheus metrics exposed by the auction
// filter service. Metrics are defined in their owning packages (auctions,
// cache, server) via promauto to avoid circular dependencies; this package
// is the reference for what lands on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registry used by the service. All metrics are
// registered automatically through promauto in their owning packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Reference
//
// Fetch metrics (pkg/auctions):
//   - auction_fetch_pages_total{status} (Counter): upstream page requests by
//     status ("200", HTTP error codes, "network_error", "decode_error")
//   - auction_fetch_retries_total (Counter): transient failures consumed from
//     the retry budget
//   - auction_fetch_retry_exhausted_total (Counter): bulk fetches that gave
//     up and returned partial results
//   - auction_fetch_duration_seconds (Histogram): full bulk fetch duration
//   - auction_entries_skipped_total (Counter): entries dropped for missing
//     required fields
//
// Cache metrics (pkg/cache):
//   - auction_cache_refreshes_total{outcome} (Counter): refresh attempts by
//     outcome ("ok", "error")
//   - auction_cache_refreshes_coalesced_total (Counter): refresh calls that
//     joined an in-flight fetch instead of starting their own
//   - auction_cache_snapshot_listings (Gauge): listings in the current
//     snapshot
//
// Request metrics (pkg/server):
//   - auction_http_requests_total{path} (Counter)
//   - auction_http_request_duration_seconds{path} (Histogram)
//
// Example queries:
//
//   # Partial-fetch rate
//   rate(auction_fetch_retry_exhausted_total[30m])
//
//   # Refresh coalescing effectiveness
//   rate(auction_cache_refreshes_coalesced_total[5m]) /
//   rate(auction_cache_refreshes_total[5m])
//
//   # P95 endpoint latency
//   histogram_quantile(0.95, rate(auction_http_request_duration_seconds_bucket[5m]))
