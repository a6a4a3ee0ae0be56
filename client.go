package verilens

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"verilens/internal/logging"
)

const (
	defaultBaseURL          = "https://api.verilens.ai"
	defaultTimeout          = 30 * time.Second
	defaultBatchConcurrency = 5

	// Defaults used by DetectFile: up to five minutes of waiting.
	detectMaxAttempts     = 150
	detectPollingInterval = 2 * time.Second

	userAgent = "verilens-go/1.0"
)

// Config describes the client configuration. Only APIKey is required.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Verilens API. It is safe for concurrent use; all
// mutable state lives in the individual calls.
type Client struct {
	apiKey  string
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger

	// sleeper overrides polling sleeps in tests.
	sleeper func(context.Context, time.Duration) error
}

// Option customizes the client.
type Option func(*Client)

// WithSleeper overrides how polling sleeps are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// New creates a Client from the supplied configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base url: %v", ErrInvalidConfig, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: base url %q must be absolute", ErrInvalidConfig, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	client := &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    httpClient,
		logger:  logging.NewComponentLogger(logger, "verilens"),
	}
	client.sleeper = client.sleepWithContext
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// DetectFile uploads a file and waits for its analysis with default polling
// settings. It is the one-call path for callers that just want a verdict.
func (c *Client) DetectFile(ctx context.Context, path string) (Result, error) {
	handle, err := c.Upload(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return c.GetResult(ctx, handle.RequestID, &ResultOptions{
		MaxAttempts:     detectMaxAttempts,
		PollingInterval: detectPollingInterval,
	})
}
