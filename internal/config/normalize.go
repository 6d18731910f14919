package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTVMaze()
	c.normalizeTracking()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTVMaze() {
	c.TVMaze.BaseURL = strings.TrimSpace(c.TVMaze.BaseURL)
	if c.TVMaze.BaseURL == "" {
		c.TVMaze.BaseURL = defaultTVMazeBaseURL
	}
	if c.TVMaze.RequestTimeout <= 0 {
		c.TVMaze.RequestTimeout = defaultRequestTimeout
	}
	if c.TVMaze.RetryAttempts < 0 {
		c.TVMaze.RetryAttempts = defaultRetryAttempts
	}
	if c.TVMaze.RequestDelayMS < 0 {
		c.TVMaze.RequestDelayMS = defaultRequestDelayMS
	}
}

func (c *Config) normalizeTracking() {
	c.Tracking.SpecialsPolicy = strings.ToLower(strings.TrimSpace(c.Tracking.SpecialsPolicy))
	if c.Tracking.SpecialsPolicy == "" {
		c.Tracking.SpecialsPolicy = defaultSpecialsPolicy
	}
	if c.Tracking.MaxTimelineEntries <= 0 {
		c.Tracking.MaxTimelineEntries = defaultMaxTimelineEntries
	}
	if c.Tracking.ArchiveDays < 0 {
		c.Tracking.ArchiveDays = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
