package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load merges a TOML file at path (optional, "" skips it) over the defaults,
// then applies AUCTION_* environment variable overrides. The result has NOT
// been validated; callers should invoke Config.Validate after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env if present; missing files are fine.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides overwrites Config fields from AUCTION_* variables when
// set, so operators can inject settings without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Upstream.BaseURL, "AUCTION_UPSTREAM_BASE_URL")
	setStr(&cfg.Upstream.APIKey, "AUCTION_UPSTREAM_API_KEY")
	setDuration(&cfg.Upstream.PageTimeout, "AUCTION_UPSTREAM_PAGE_TIMEOUT")
	setInt(&cfg.Upstream.MaxRetries, "AUCTION_UPSTREAM_MAX_RETRIES")
	setDuration(&cfg.Upstream.RetryBackoff, "AUCTION_UPSTREAM_RETRY_BACKOFF")
	setFloat64(&cfg.Upstream.PagesPerSecond, "AUCTION_UPSTREAM_PAGES_PER_SECOND")

	setDuration(&cfg.Cache.TTL, "AUCTION_CACHE_TTL")
	setDuration(&cfg.Cache.RefreshInterval, "AUCTION_CACHE_REFRESH_INTERVAL")

	setInt(&cfg.Server.Port, "AUCTION_SERVER_PORT")

	setStr(&cfg.LogLevel, "AUCTION_LOG_LEVEL")
	setBool(&cfg.LogPretty, "AUCTION_LOG_PRETTY")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
