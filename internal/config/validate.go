package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateReadiness(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBackend() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	parsed, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url is invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend.url must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("backend.url is missing a host")
	}
	if c.Backend.EntryPoint == "" {
		return fmt.Errorf("backend.entry_point is required")
	}
	return nil
}

func (c *Config) validateReadiness() error {
	interval := c.PollInterval()
	if request := c.RequestTimeout(); request >= interval {
		return fmt.Errorf("readiness.request_timeout_millis (%d) must be shorter than interval_millis (%d)",
			c.Readiness.RequestTimeoutMillis, c.Readiness.IntervalMillis)
	}
	if timeout := c.ReadinessTimeout(); timeout <= interval {
		return fmt.Errorf("readiness.timeout_seconds must exceed the poll interval")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return fmt.Errorf("paths.state_dir is required")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
