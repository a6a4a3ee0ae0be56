package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures. The API key is deliberately not required
// here; commands that talk to the API check for it so that purely local
// commands (cache, history, config) work without credentials.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds cannot be negative")
	}
	if c.Polling.MaxAttempts < 0 {
		return fmt.Errorf("polling.max_attempts cannot be negative")
	}
	if c.Polling.IntervalMS < 0 {
		return fmt.Errorf("polling.interval_ms cannot be negative")
	}
	if c.Batch.MaxConcurrency < 1 {
		return fmt.Errorf("batch.max_concurrency must be at least 1")
	}

	switch c.Logging.Format {
	case "", "json", "text", "console":
	default:
		return fmt.Errorf("logging.format %q is not supported (json, text)", c.Logging.Format)
	}

	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return fmt.Errorf("cache.path cannot be empty when the cache is enabled")
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path cannot be empty when history is enabled")
	}
	return nil
}
