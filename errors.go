package verilens

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the failure categories the API client surfaces.
// Transport failures are terminal; the client never retries them.
var (
	// ErrInvalidConfig marks a missing credential or malformed base URL.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidFile marks a missing, empty, or oversized upload source.
	ErrInvalidFile = errors.New("invalid file")

	// ErrInvalidLink marks a social media link that failed validation.
	ErrInvalidLink = errors.New("invalid link")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized: invalid API key")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")
)

// APIError carries the HTTP status and server-reported message of a failed
// API call. It unwraps to one of the sentinel errors above when the status
// maps to a known category.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api request failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api request failed (HTTP %d)", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// TimeoutError reports an exhausted polling budget while the analysis was
// still in progress. Elapsed is wall-clock time across all attempts.
type TimeoutError struct {
	Elapsed  time.Duration
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for result after %s (%d attempts)", e.Elapsed.Round(time.Millisecond), e.Attempts)
}
