package config

import (
	"fmt"
	"net/url"
	"strings"

	"owlwatch/internal/episode"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTVMaze(); err != nil {
		return err
	}
	if err := c.validateTracking(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTVMaze() error {
	parsed, err := url.Parse(c.TVMaze.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("tvmaze.base_url: %q is not an absolute URL", c.TVMaze.BaseURL)
	}
	return nil
}

func (c *Config) validateTracking() error {
	if _, err := episode.ParseSpecialsPolicy(c.Tracking.SpecialsPolicy); err != nil {
		return fmt.Errorf("tracking.specials_policy: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
