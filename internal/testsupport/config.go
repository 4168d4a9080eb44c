// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"stagehand/internal/config"
)

// NewConfig returns a validated config rooted in a temporary
// directory, with probe timing tightened for tests.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(dir, "state")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Backend.ShutdownGraceSeconds = 1
	cfg.Readiness.TimeoutSeconds = 2
	cfg.Readiness.IntervalMillis = 20
	cfg.Readiness.RequestTimeoutMillis = 10
	cfg.Surface.Enabled = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}
