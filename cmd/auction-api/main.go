package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/skyblock-tools/auction-filter/pkg/auctions"
	"github.com/skyblock-tools/auction-filter/pkg/cache"
	"github.com/skyblock-tools/auction-filter/pkg/config"
	"github.com/skyblock-tools/auction-filter/pkg/logging"
	"github.com/skyblock-tools/auction-filter/pkg/scheduler"
	"github.com/skyblock-tools/auction-filter/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	fetcher := auctions.New(auctions.Config{
		BaseURL:     cfg.Upstream.BaseURL,
		APIKey:      cfg.Upstream.APIKey,
		PageTimeout: cfg.Upstream.PageTimeout.Duration,
		Retry: auctions.RetryPolicy{
			MaxRetries: cfg.Upstream.MaxRetries,
			Backoff:    cfg.Upstream.RetryBackoff.Duration,
		},
		RateLimit: rate.Limit(cfg.Upstream.PagesPerSecond),
	})

	auctionCache := cache.New(fetcher, cache.Config{TTL: cfg.Cache.TTL.Duration})

	sched, err := scheduler.New(auctionCache, cfg.Cache.RefreshInterval.Duration, logging.NewLogger("scheduler"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create refresh scheduler")
	}
	sched.Start()
	defer sched.Stop()

	// Warm the cache so the first request does not pay for the full fetch;
	// the cron schedule only fires after the first interval.
	go func() {
		if err := auctionCache.Refresh(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Initial refresh failed")
		}
	}()

	srv := server.New(auctionCache, logging.NewLogger("server"))
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("Starting auction filter server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown error")
	}
}
