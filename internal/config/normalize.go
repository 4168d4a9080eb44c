package config

import "strings"

// normalize expands path fields and fills zero values with defaults.
func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.StateDir, &c.Paths.LogDir} {
		expanded, err := ExpandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Backend.URL = strings.TrimSpace(c.Backend.URL)
	c.Backend.HealthPath = strings.TrimSpace(c.Backend.HealthPath)
	c.Backend.EntryPoint = strings.TrimSpace(c.Backend.EntryPoint)

	trimmed := c.Backend.Interpreters[:0]
	for _, candidate := range c.Backend.Interpreters {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			trimmed = append(trimmed, candidate)
		}
	}
	c.Backend.Interpreters = trimmed

	if c.Backend.ShutdownGraceSeconds <= 0 {
		c.Backend.ShutdownGraceSeconds = defaultShutdownGraceSeconds
	}
	if c.Readiness.TimeoutSeconds <= 0 {
		c.Readiness.TimeoutSeconds = defaultReadinessTimeoutSecs
	}
	if c.Readiness.IntervalMillis <= 0 {
		c.Readiness.IntervalMillis = defaultIntervalMillis
	}
	if c.Readiness.RequestTimeoutMillis <= 0 {
		c.Readiness.RequestTimeoutMillis = defaultRequestTimeoutMillis
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
	if c.Journal.RetentionDays <= 0 {
		c.Journal.RetentionDays = defaultJournalRetentionDays
	}
	return nil
}
