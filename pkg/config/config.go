// Package config defines the service configuration: a TOML file merged over
// built-in defaults, then AUCTION_* environment variable overrides.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Upstream  UpstreamConfig `toml:"upstream"`
	Cache     CacheConfig    `toml:"cache"`
	Server    ServerConfig   `toml:"server"`
	LogLevel  string         `toml:"log_level"`
	LogPretty bool           `toml:"log_pretty"`
}

// UpstreamConfig holds the auction API endpoint and fetch tuning.
type UpstreamConfig struct {
	BaseURL        string   `toml:"base_url"`
	APIKey         string   `toml:"api_key"`
	PageTimeout    duration `toml:"page_timeout"`
	MaxRetries     int      `toml:"max_retries"`
	RetryBackoff   duration `toml:"retry_backoff"`
	PagesPerSecond float64  `toml:"pages_per_second"`
}

// CacheConfig holds snapshot staleness and refresh cadence.
type CacheConfig struct {
	TTL             duration `toml:"ttl"`
	RefreshInterval duration `toml:"refresh_interval"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// duration wraps time.Duration so TOML values like "5m" decode naturally.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Defaults returns the built-in configuration, tuned for the live API.
func Defaults() Config {
	return Config{
		Upstream: UpstreamConfig{
			BaseURL:        "https://api.hypixel.net",
			PageTimeout:    duration{10 * time.Second},
			MaxRetries:     5,
			RetryBackoff:   duration{5 * time.Second},
			PagesPerSecond: 2,
		},
		Cache: CacheConfig{
			TTL:             duration{5 * time.Minute},
			RefreshInterval: duration{5 * time.Minute},
		},
		Server: ServerConfig{
			Port: 5000,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.MaxRetries < 1 {
		return fmt.Errorf("upstream.max_retries must be >= 1 (got %d)", c.Upstream.MaxRetries)
	}
	if c.Upstream.PageTimeout.Duration <= 0 {
		return fmt.Errorf("upstream.page_timeout must be positive")
	}
	if c.Cache.TTL.Duration <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.Cache.RefreshInterval.Duration <= 0 {
		return fmt.Errorf("cache.refresh_interval must be positive")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}
	return nil
}
