// Package server exposes the filtered auction listings over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/skyblock-tools/auction-filter/pkg/auctions"
	"github.com/skyblock-tools/auction-filter/pkg/filter"
	"github.com/skyblock-tools/auction-filter/pkg/lore"
)

// Prometheus metrics for served requests.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_http_requests_total",
		Help: "HTTP requests by path",
	}, []string{"path"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auction_http_request_duration_seconds",
		Help:    "HTTP request duration by path",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
	}, []string{"path"})
)

// ListingSource yields the current listing set, refreshing when stale.
type ListingSource interface {
	Listings(ctx context.Context) ([]auctions.Listing, error)
}

// FilteredItem is one element of the /filtered_items payload.
type FilteredItem struct {
	UUID        string       `json:"uuid"`
	Name        string       `json:"name"`
	StartingBid int64        `json:"starting_bid"`
	Tier        string       `json:"tier"`
	BINStatus   bool         `json:"bin_status"`
	Attributes  []lore.Match `json:"attributes"`
}

// Server routes HTTP requests to the cache-backed filter pipeline.
type Server struct {
	source ListingSource
	logger zerolog.Logger
}

// New creates a server reading from the given listing source.
func New(source ListingSource, logger zerolog.Logger) *Server {
	return &Server{source: source, logger: logger}
}

// Handler returns the route mux: the filtered listings endpoint plus health
// and metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/filtered_items", s.handleFilteredItems)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// handleFilteredItems serves the filtered, attribute-annotated listing set.
// It always answers 200: a degraded or empty cache yields an empty array,
// never an error status.
func (s *Server) handleFilteredItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		httpRequestDuration.WithLabelValues("/filtered_items").Observe(time.Since(start).Seconds())
	}()
	httpRequestsTotal.WithLabelValues("/filtered_items").Inc()

	listings, err := s.source.Listings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Listing refresh failed - serving cached data")
	}

	items := make([]FilteredItem, 0)
	for _, l := range filter.Apply(listings) {
		attrs := lore.Extract(l.Lore)
		if attrs == nil {
			attrs = []lore.Match{}
		}
		items = append(items, FilteredItem{
			UUID:        l.UUID,
			Name:        l.Name,
			StartingBid: l.StartingBid,
			Tier:        l.Tier,
			BINStatus:   l.BIN,
			Attributes:  attrs,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpRequestsTotal.WithLabelValues("/health").Inc()
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
