package verilens

import (
	"context"
	"fmt"
	"time"

	"verilens/detection"
	"verilens/internal/logging"
)

// GetResult fetches the analysis for a request id. Without a waiting policy
// it performs exactly one fetch and returns whatever status came back, even
// ANALYZING. With one, it polls until the status leaves ANALYZING or the
// attempt budget runs out.
//
// A status of ERROR (or any other non-ANALYZING value) reported by the API
// is a valid terminal result, not a polling failure.
func (c *Client) GetResult(ctx context.Context, requestID string, opts *ResultOptions) (Result, error) {
	if !opts.wait() {
		return c.fetchResult(ctx, requestID)
	}
	return c.waitForResult(ctx, requestID, opts.MaxAttempts, opts.PollingInterval)
}

// fetchResult performs a single fetch+normalize round trip.
func (c *Client) fetchResult(ctx context.Context, requestID string) (Result, error) {
	var report detection.AnalysisReport
	if err := c.getJSON(ctx, mediaPath+"/"+requestID, nil, &report); err != nil {
		return Result{}, fmt.Errorf("fetch result %s: %w", requestID, err)
	}
	return detection.Normalize(report), nil
}

// waitForResult loops fetchResult until a terminal status appears. Each
// attempt fetches a fresh report; nothing is cached between attempts.
func (c *Client) waitForResult(ctx context.Context, requestID string, maxAttempts int, interval time.Duration) (Result, error) {
	start := time.Now()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := c.fetchResult(ctx, requestID)
		if err != nil {
			return Result{}, err
		}
		if !detection.InProgress(result.Status) {
			return result, nil
		}

		c.logger.Debug("analysis still in progress",
			logging.String("request_id", requestID),
			logging.Int("attempt", attempt+1),
			logging.Int("max_attempts", maxAttempts))

		if err := c.sleeper(ctx, interval); err != nil {
			return Result{}, err
		}
	}

	return Result{}, &TimeoutError{Elapsed: time.Since(start), Attempts: maxAttempts}
}

// sleepWithContext waits for the polling interval or the caller's
// cancellation, whichever comes first.
func (c *Client) sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
