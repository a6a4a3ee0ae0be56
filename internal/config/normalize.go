package config

import (
	"os"
	"strings"
)

// normalize trims string fields, applies environment fallbacks, and expands
// local paths. It runs before validation so Validate sees final values.
func (c *Config) normalize() error {
	c.API.Key = strings.TrimSpace(c.API.Key)
	if c.API.Key == "" {
		c.API.Key = strings.TrimSpace(os.Getenv("VERILENS_API_KEY"))
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if c.Cache.Path != "" {
		expanded, err := expandPath(c.Cache.Path)
		if err != nil {
			return err
		}
		c.Cache.Path = expanded
	}
	if c.History.Path != "" {
		expanded, err := expandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = expanded
	}
	return nil
}
