package verilens

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"verilens/detection"
	"verilens/internal/logging"
)

// ProcessBatch uploads every path and, when the options request waiting,
// polls each surviving request id to a terminal status. Work proceeds in
// groups of at most MaxConcurrency: members of a group run concurrently,
// groups run one after another, so no more than MaxConcurrency operations
// of the same kind are ever outstanding.
//
// A single item's failure never aborts the batch. Failed uploads are
// dropped from the surviving id set and failed or timed-out pollers are
// filtered from the returned slice; both are logged with the batch id.
// Callers that need per-item diagnostics should use Upload and GetResult
// directly.
//
// When waiting is not requested, one placeholder result with status
// PROCESSING is returned per surviving request id so the ids can be polled
// independently later.
func (c *Client) ProcessBatch(ctx context.Context, paths []string, opts BatchOptions) ([]Result, error) {
	if len(paths) == 0 {
		return []Result{}, nil
	}

	batchID := uuid.NewString()
	logger := c.logger.With(logging.String("batch_id", batchID))
	concurrency := opts.concurrency()

	logger.Debug("batch started",
		logging.Int("items", len(paths)),
		logging.Int("max_concurrency", concurrency),
		logging.Bool("wait_for_results", opts.wait()))

	requestIDs := c.uploadGroups(ctx, logger, paths, concurrency)

	if !opts.wait() {
		placeholders := make([]Result, 0, len(requestIDs))
		for _, id := range requestIDs {
			placeholders = append(placeholders, Result{
				RequestID: id,
				Status:    detection.StatusProcessing,
				Models:    []ModelResult{},
			})
		}
		return placeholders, nil
	}

	results := c.pollGroups(ctx, logger, requestIDs, concurrency, &ResultOptions{
		MaxAttempts:     opts.MaxAttempts,
		PollingInterval: opts.PollingInterval,
	})

	logger.Debug("batch finished",
		logging.Int("uploaded", len(requestIDs)),
		logging.Int("resolved", len(results)))

	return results, nil
}

// uploadGroups uploads paths in sequential groups of size concurrency and
// returns the request ids of the uploads that succeeded, in input order.
func (c *Client) uploadGroups(ctx context.Context, logger *slog.Logger, paths []string, concurrency int) []string {
	ids := make([]string, len(paths))

	for start := 0; start < len(paths); start += concurrency {
		end := start + concurrency
		if end > len(paths) {
			end = len(paths)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				handle, err := c.Upload(ctx, paths[i])
				if err != nil {
					logger.Warn("batch upload failed",
						logging.String("file", paths[i]),
						logging.Error(err))
					return
				}
				ids[i] = handle.RequestID
			}(i)
		}
		wg.Wait()
	}

	surviving := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			surviving = append(surviving, id)
		}
	}
	return surviving
}

// pollGroups runs the single-item polling contract over each id with the
// same grouping strategy as uploads. One id's timeout does not cancel the
// others; only successful results are returned, in id order.
func (c *Client) pollGroups(ctx context.Context, logger *slog.Logger, requestIDs []string, concurrency int, opts *ResultOptions) []Result {
	resolved := make([]*Result, len(requestIDs))

	for start := 0; start < len(requestIDs); start += concurrency {
		end := start + concurrency
		if end > len(requestIDs) {
			end = len(requestIDs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := c.GetResult(ctx, requestIDs[i], opts)
				if err != nil {
					logger.Warn("batch result polling failed",
						logging.String("request_id", requestIDs[i]),
						logging.Error(err))
					return
				}
				resolved[i] = &result
			}(i)
		}
		wg.Wait()
	}

	results := make([]Result, 0, len(resolved))
	for _, result := range resolved {
		if result != nil {
			results = append(results, *result)
		}
	}
	return results
}
