package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"verilens"
	"verilens/internal/config"
	"verilens/internal/history"
	"verilens/internal/logging"
	"verilens/internal/resultcache"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// newClient builds an API client from the loaded configuration. Commands
// that talk to the API call this, so purely local commands work without a
// key.
func (c *commandContext) newClient() (*verilens.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.API.Key) == "" {
		return nil, errors.New("no API key configured; set api.key in the config file or export VERILENS_API_KEY")
	}
	return verilens.New(verilens.Config{
		APIKey:  cfg.API.Key,
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
		Logger:  c.ensureLogger(),
	})
}

// resultCache returns the terminal-result cache, or nil when disabled.
func (c *commandContext) resultCache() *resultcache.Cache {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil || !cfg.Cache.Enabled {
		return nil
	}
	return resultcache.NewCache(cfg.Cache.Path, c.ensureLogger())
}

// withHistory runs fn against the submission history store when history is
// enabled; it is a no-op otherwise.
func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil || !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// useJSON reports whether output should be machine readable. The --json
// flag forces it; otherwise tables are used only on a terminal.
func (c *commandContext) useJSON() bool {
	if c.jsonFlag != nil && *c.jsonFlag {
		return true
	}
	return !isatty.IsTerminal(os.Stdout.Fd())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
