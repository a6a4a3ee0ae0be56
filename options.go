package verilens

import "time"

// UploadHandle identifies an accepted upload. RequestID is the sole key
// needed to poll for the analysis result; it never changes once assigned.
type UploadHandle struct {
	RequestID string
	MediaID   string
	ResultURL string
}

// ResultOptions controls whether and how GetResult waits for a terminal
// status. Waiting is enabled only when both MaxAttempts and PollingInterval
// are positive; otherwise a single fetch is performed and returned as-is.
type ResultOptions struct {
	MaxAttempts     int
	PollingInterval time.Duration
}

func (o *ResultOptions) wait() bool {
	return o != nil && o.MaxAttempts > 0 && o.PollingInterval > 0
}

// BatchOptions controls ProcessBatch. MaxConcurrency caps how many uploads
// (and later pollers) run at once; zero selects the default. The embedded
// polling knobs follow the ResultOptions rules.
type BatchOptions struct {
	MaxConcurrency  int
	MaxAttempts     int
	PollingInterval time.Duration
}

func (o BatchOptions) wait() bool {
	return o.MaxAttempts > 0 && o.PollingInterval > 0
}

func (o BatchOptions) concurrency() int {
	if o.MaxConcurrency > 0 {
		return o.MaxConcurrency
	}
	return defaultBatchConcurrency
}

// ResultListOptions selects one page of historical results. PageNumber is
// zero-based; Name and the date bounds (YYYY-MM-DD) are optional filters.
// When MaxAttempts and PollingInterval are both positive, GetResults
// re-fetches the page until no item on it is still analyzing.
type ResultListOptions struct {
	PageNumber      int
	Size            int
	Name            string
	StartDate       string
	EndDate         string
	MaxAttempts     int
	PollingInterval time.Duration
}

func (o *ResultListOptions) wait() bool {
	return o != nil && o.MaxAttempts > 0 && o.PollingInterval > 0
}
