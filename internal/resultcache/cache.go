package resultcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"verilens/detection"
	"verilens/internal/logging"
)

// Entry is one cached terminal result.
type Entry struct {
	RequestID string           `json:"request_id"`
	Result    detection.Result `json:"result"`
	CachedAt  time.Time        `json:"cached_at"`
}

// Cache provides thread-safe access to the terminal-result cache. If path
// is empty the cache is non-functional and every operation is a no-op.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache creates a cache instance backed by the JSON file at path. The
// file is created lazily on first Store.
func NewCache(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "resultcache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]Entry),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load result cache",
			logging.Error(err),
			logging.String("path", path))
	}

	return c
}

// Lookup returns the cached result for a request id if present.
func (c *Cache) Lookup(requestID string) (detection.Result, bool) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" || c.path == "" {
		return detection.Result{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[requestID]
	if !found {
		return detection.Result{}, false
	}
	return entry.Result, true
}

// Store caches a terminal result and persists to disk. In-progress results
// are rejected so the cache never serves stale non-final answers.
func (c *Cache) Store(result detection.Result) error {
	requestID := strings.TrimSpace(result.RequestID)
	if requestID == "" {
		return errors.New("request id cannot be empty")
	}
	if detection.InProgress(result.Status) || result.Status == detection.StatusProcessing {
		return fmt.Errorf("result %s is not terminal (%s)", requestID, result.Status)
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[requestID] = Entry{
		RequestID: requestID,
		Result:    result,
		CachedAt:  time.Now().UTC(),
	}

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached terminal result",
		logging.String("request_id", requestID),
		logging.String("status", result.Status))

	return nil
}

// List returns all entries sorted by CachedAt descending (newest first).
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	return entries
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	return nil
}

// Count returns the number of cached results.
func (c *Cache) Count() int {
	if c.path == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.RequestID) != "" {
			c.entries[entry.RequestID] = entry
		}
	}
	return nil
}

// save writes the cache to disk atomically. A sibling lock file serializes
// writers across processes; two CLI invocations may otherwise interleave
// their temp-file renames and drop entries.
func (c *Cache) save() error {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(c.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer lock.Unlock()

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
