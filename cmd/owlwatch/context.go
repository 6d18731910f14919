package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"owlwatch/internal/config"
	"owlwatch/internal/logging"
	"owlwatch/internal/tvmaze"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger from the loaded configuration.
// Failures degrade to a no-op logger rather than aborting the command.
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
			Output: os.Stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) catalogClient() (*tvmaze.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: time.Duration(cfg.TVMaze.RequestTimeout) * time.Second}
	return tvmaze.New(cfg.TVMaze.BaseURL,
		tvmaze.WithHTTPClient(httpClient),
		tvmaze.WithRetryAttempts(cfg.TVMaze.RetryAttempts),
		tvmaze.WithRequestDelay(time.Duration(cfg.TVMaze.RequestDelayMS)*time.Millisecond),
	)
}

// withDataLock serializes commands that mutate the data directory behind
// the lock file, so a cron-driven check and an interactive command never
// interleave writes.
func (c *commandContext) withDataLock(fn func(cfg *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire data lock: %w", err)
	}
	if !ok {
		return errors.New("another owlwatch command is already running")
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
