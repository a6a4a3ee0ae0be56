package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	t.Setenv("VERILENS_API_KEY", "")

	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists = true for a missing file")
	}
	if resolved == "" {
		t.Error("resolved path is empty")
	}

	if cfg.API.BaseURL != "https://api.verilens.ai" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
	if cfg.PollingInterval() != 2*time.Second {
		t.Errorf("PollingInterval = %v", cfg.PollingInterval())
	}
	if cfg.Batch.MaxConcurrency != 5 {
		t.Errorf("MaxConcurrency = %d", cfg.Batch.MaxConcurrency)
	}
	if cfg.Cache.Enabled || cfg.History.Enabled {
		t.Error("cache and history must default to disabled")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	t.Setenv("VERILENS_API_KEY", "")

	path := writeConfig(t, `
[api]
key = "  file-key  "
base_url = "https://api.example.com/"
timeout_seconds = 10

[polling]
max_attempts = 7
interval_ms = 500

[logging]
level = "DEBUG"
format = "JSON"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q, exists = %v", resolved, exists)
	}

	if cfg.API.Key != "file-key" {
		t.Errorf("Key = %q, want trimmed", cfg.API.Key)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash stripped", cfg.API.BaseURL)
	}
	if cfg.Polling.MaxAttempts != 7 || cfg.PollingInterval() != 500*time.Millisecond {
		t.Errorf("polling = %+v", cfg.Polling)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want lowercased", cfg.Logging)
	}
}

func TestLoadEnvKeyFallback(t *testing.T) {
	t.Setenv("VERILENS_API_KEY", "env-key")

	path := writeConfig(t, `
[api]
key = ""
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Key != "env-key" {
		t.Errorf("Key = %q, want env fallback", cfg.API.Key)
	}
}

func TestLoadFileKeyWinsOverEnv(t *testing.T) {
	t.Setenv("VERILENS_API_KEY", "env-key")

	path := writeConfig(t, `
[api]
key = "file-key"
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Key != "file-key" {
		t.Errorf("Key = %q", cfg.API.Key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(c *Config) {}},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "api.example.com" },
			wantErr: "absolute",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = -1 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "negative attempts",
			mutate:  func(c *Config) { c.Polling.MaxAttempts = -1 },
			wantErr: "max_attempts",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Batch.MaxConcurrency = 0 },
			wantErr: "max_concurrency",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name: "cache enabled without path",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.Path = "  "
			},
			wantErr: "cache.path",
		},
		{
			name: "history enabled without path",
			mutate: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			wantErr: "history.path",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := ExpandPath("~/verilens/config.toml")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	want := filepath.Join(home, "verilens", "config.toml")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}

	if got, err := ExpandPath(""); err != nil || got != "" {
		t.Fatalf("ExpandPath(\"\") = %q, %v", got, err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("VERILENS_API_KEY", "")

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file not found after CreateSample")
	}
	defaults := Default()
	if cfg.API.BaseURL != defaults.API.BaseURL {
		t.Errorf("sample BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Batch.MaxConcurrency != defaults.Batch.MaxConcurrency {
		t.Errorf("sample MaxConcurrency = %d", cfg.Batch.MaxConcurrency)
	}
}
