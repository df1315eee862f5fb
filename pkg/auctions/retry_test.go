package auctions

import (
	"testing"
	"time"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()

	if policy.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", policy.MaxRetries)
	}
	if policy.Backoff != 5*time.Second {
		t.Errorf("Backoff = %v, want 5s", policy.Backoff)
	}
}

func TestNew_Defaults(t *testing.T) {
	fetcher := New(Config{})

	if fetcher.config.BaseURL != "https://api.hypixel.net" {
		t.Errorf("BaseURL = %q", fetcher.config.BaseURL)
	}
	if fetcher.config.PageTimeout != 10*time.Second {
		t.Errorf("PageTimeout = %v, want 10s", fetcher.config.PageTimeout)
	}
	if fetcher.config.Retry.MaxRetries != 5 {
		t.Errorf("Retry.MaxRetries = %d, want 5", fetcher.config.Retry.MaxRetries)
	}
	if fetcher.limiter == nil {
		t.Error("limiter not initialized")
	}
}
