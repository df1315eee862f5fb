package auctions

import (
	"errors"
	"fmt"
)

// Common errors returned by the fetcher.
var (
	// ErrMissingField is returned when an upstream entry lacks a required
	// field. The entry is skipped, not the page.
	ErrMissingField = errors.New("auction entry missing required field")

	// ErrFetchCancelled is returned when the context is cancelled during a
	// bulk fetch. The listings accumulated so far are still returned.
	ErrFetchCancelled = errors.New("fetch cancelled")
)

// UpstreamError is a non-2xx response from the auction API. It is treated as
// transient and subject to retry.
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
}
