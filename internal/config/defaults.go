package config

// Default returns the repository default configuration. Paths are expanded
// later by normalize.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        "https://api.verilens.ai",
			TimeoutSeconds: 30,
		},
		Polling: Polling{
			MaxAttempts: 30,
			IntervalMS:  2000,
		},
		Batch: Batch{
			MaxConcurrency: 5,
		},
		Cache: Cache{
			Enabled: false,
			Path:    "~/.cache/verilens/results.json",
		},
		History: History{
			Enabled: false,
			Path:    "~/.local/share/verilens/history.db",
		},
		Logging: Logging{
			Level:  "info",
			Format: "",
		},
	}
}
