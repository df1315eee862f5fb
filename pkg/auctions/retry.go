package auctions

import "time"

// RetryPolicy bounds transient-failure handling for one bulk fetch. The
// budget is shared across the whole fetch, not granted per page; a failed
// page request consumes one retry, waits the backoff, and re-requests the
// same page.
type RetryPolicy struct {
	// MaxRetries is the total number of transient failures tolerated
	// before the fetch gives up and returns what it has.
	MaxRetries int

	// Backoff is the fixed wait between a failure and the re-request.
	Backoff time.Duration
}

// DefaultRetryPolicy returns the retry budget used against the live API.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 5,
		Backoff:    5 * time.Second,
	}
}
