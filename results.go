package verilens

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"verilens/detection"
	"verilens/internal/logging"
)

// GetResults retrieves one page of historical results with optional
// filters. Without a waiting policy the page is fetched once and returned
// with every item normalized. With one, the whole page is re-fetched until
// no item on it is still analyzing; the unit of "done" is the page, not a
// single item.
func (c *Client) GetResults(ctx context.Context, opts *ResultListOptions) (ResultPage, error) {
	if opts == nil {
		opts = &ResultListOptions{}
	}
	if !opts.wait() {
		return c.fetchResultPage(ctx, opts)
	}
	return c.waitForResultPage(ctx, opts)
}

func (c *Client) fetchResultPage(ctx context.Context, opts *ResultListOptions) (ResultPage, error) {
	query := url.Values{}
	if opts.Size > 0 {
		query.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Name != "" {
		query.Set("name", opts.Name)
	}
	if opts.StartDate != "" {
		query.Set("startDate", opts.StartDate)
	}
	if opts.EndDate != "" {
		query.Set("endDate", opts.EndDate)
	}

	endpoint := mediaPagesPath + "/" + strconv.Itoa(opts.PageNumber)
	var page detection.ReportPage
	if err := c.getJSON(ctx, endpoint, query, &page); err != nil {
		return ResultPage{}, fmt.Errorf("fetch results page %d: %w", opts.PageNumber, err)
	}
	return detection.NormalizePage(page), nil
}

func (c *Client) waitForResultPage(ctx context.Context, opts *ResultListOptions) (ResultPage, error) {
	start := time.Now()

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		page, err := c.fetchResultPage(ctx, opts)
		if err != nil {
			return ResultPage{}, err
		}
		if !pageInProgress(page) {
			return page, nil
		}

		c.logger.Debug("page has items still analyzing",
			logging.Int("page", opts.PageNumber),
			logging.Int("attempt", attempt+1),
			logging.Int("max_attempts", opts.MaxAttempts))

		if err := c.sleeper(ctx, opts.PollingInterval); err != nil {
			return ResultPage{}, err
		}
	}

	return ResultPage{}, &TimeoutError{Elapsed: time.Since(start), Attempts: opts.MaxAttempts}
}

func pageInProgress(page ResultPage) bool {
	for _, item := range page.Items {
		if detection.InProgress(item.Status) {
			return true
		}
	}
	return false
}
