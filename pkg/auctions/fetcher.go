// Package auctions provides the Hypixel SkyBlock auction house client: the
// Listing model and the paginated bulk Fetcher with bounded retry.
package auctions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Prometheus metrics for upstream fetch operations.
var (
	fetchPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_fetch_pages_total",
		Help: "Upstream page requests by status",
	}, []string{"status"})

	fetchRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_fetch_retries_total",
		Help: "Transient page failures consumed from the retry budget",
	})

	fetchExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_fetch_retry_exhausted_total",
		Help: "Bulk fetches that exhausted the retry budget",
	})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "auction_fetch_duration_seconds",
		Help:    "Full bulk fetch duration in seconds",
		Buckets: []float64{1, 2, 5, 10, 30, 60, 120},
	})

	entriesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_entries_skipped_total",
		Help: "Upstream entries dropped for missing required fields",
	})
)

// Config holds the fetcher configuration.
type Config struct {
	// BaseURL of the upstream API, without trailing slash.
	BaseURL string

	// APIKey is sent as the API-Key header when set. The auctions
	// endpoint is public, so this is optional.
	APIKey string

	// PageTimeout bounds a single page request.
	PageTimeout time.Duration

	// Retry is the transient-failure budget for one bulk fetch.
	Retry RetryPolicy

	// RateLimit caps page requests per second against the upstream.
	RateLimit rate.Limit
	RateBurst int
}

// DefaultConfig returns a safe default configuration for the live API.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.hypixel.net",
		PageTimeout: 10 * time.Second,
		Retry:       DefaultRetryPolicy(),
		RateLimit:   2,
		RateBurst:   1,
	}
}

// Fetcher performs the paginated bulk retrieval of auction listings.
type Fetcher struct {
	httpClient *http.Client
	config     Config
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New creates a fetcher. Zero config values fall back to defaults.
func New(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.hypixel.net"
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 10 * time.Second
	}
	if cfg.Retry.MaxRetries <= 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}

	return &Fetcher{
		httpClient: &http.Client{},
		config:     cfg,
		limiter:    rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:     log.With().Str("component", "fetcher").Logger(),
	}
}

// FetchAll retrieves every auction page, starting at page 0 and continuing
// until the last page reported by the upstream. A transient failure (network
// error, timeout, non-2xx) consumes one retry from the shared budget, waits
// the backoff, and re-requests the same page. When the budget is exhausted
// the listings accumulated so far are returned with a nil error: degraded
// results are a partial success, not a failure. Only context cancellation
// produces an error, alongside whatever was collected.
func (f *Fetcher) FetchAll(ctx context.Context) ([]Listing, error) {
	start := time.Now()
	defer func() {
		fetchDuration.Observe(time.Since(start).Seconds())
	}()

	var listings []Listing
	retries := f.config.Retry.MaxRetries
	page := 0
	totalPages := 1 // unknown until the first page lands

	for page < totalPages {
		body, err := f.fetchPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return listings, fmt.Errorf("%w: %v", ErrFetchCancelled, ctx.Err())
			}

			retries--
			fetchRetriesTotal.Inc()
			f.logger.Warn().
				Err(err).
				Int("page", page).
				Int("retries_left", retries).
				Msg("Page fetch failed")

			if retries <= 0 {
				fetchExhaustedTotal.Inc()
				f.logger.Warn().
					Int("page", page).
					Int("listings", len(listings)).
					Msg("Retry budget exhausted - returning partial results")
				return listings, nil
			}

			select {
			case <-ctx.Done():
				return listings, fmt.Errorf("%w: %v", ErrFetchCancelled, ctx.Err())
			case <-time.After(f.config.Retry.Backoff):
			}
			continue // same page
		}

		totalPages = body.TotalPages
		for i := range body.Auctions {
			l, err := body.Auctions[i].toListing()
			if err != nil {
				entriesSkippedTotal.Inc()
				f.logger.Warn().
					Err(err).
					Int("page", page).
					Msg("Skipping malformed auction entry")
				continue
			}
			listings = append(listings, l)
		}
		page++
	}

	f.logger.Info().
		Int("pages", page).
		Int("listings", len(listings)).
		Dur("duration", time.Since(start)).
		Msg("Bulk fetch complete")

	return listings, nil
}

// fetchPage requests a single auction page with the per-page timeout.
func (f *Fetcher) fetchPage(ctx context.Context, page int) (*auctionsPage, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	pageCtx, cancel := context.WithTimeout(ctx, f.config.PageTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/skyblock/auctions?page=%d", f.config.BaseURL, page)
	req, err := http.NewRequestWithContext(pageCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.config.APIKey != "" {
		req.Header.Set("API-Key", f.config.APIKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		fetchPagesTotal.WithLabelValues("network_error").Inc()
		return nil, fmt.Errorf("request page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fetchPagesTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var body auctionsPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fetchPagesTotal.WithLabelValues("decode_error").Inc()
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}

	fetchPagesTotal.WithLabelValues("200").Inc()
	return &body, nil
}
