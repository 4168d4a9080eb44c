package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Backend contains configuration for the supervised backend process.
type Backend struct {
	// URL is the backend's base address; readiness and the surface
	// both point at it.
	URL string `toml:"url"`
	// HealthPath is appended to URL for readiness probes.
	HealthPath string `toml:"health_path"`
	// EntryPoint is the backend script, resolved relative to the
	// stagehand executable's directory unless absolute.
	EntryPoint string `toml:"entry_point"`
	// Interpreters overrides the platform-default candidate list.
	Interpreters []string `toml:"interpreters"`
	// ShutdownGraceSeconds bounds how long a terminated backend may
	// take to exit before it is killed.
	ShutdownGraceSeconds int `toml:"shutdown_grace_seconds"`
}

// Readiness contains health polling timing.
type Readiness struct {
	TimeoutSeconds       int `toml:"timeout_seconds"`
	IntervalMillis       int `toml:"interval_millis"`
	RequestTimeoutMillis int `toml:"request_timeout_millis"`
}

// Paths contains directory configuration.
type Paths struct {
	// StateDir holds the lock file, control socket, and journal.
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Surface contains configuration for the front-end surface.
type Surface struct {
	Enabled bool `toml:"enabled"`
	// Opener overrides the platform default open command.
	Opener string `toml:"opener"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Journal contains configuration for the lifecycle event journal.
type Journal struct {
	RetentionDays int `toml:"retention_days"`
}

// Config encapsulates all configuration values for stagehand.
type Config struct {
	Backend       Backend       `toml:"backend"`
	Readiness     Readiness     `toml:"readiness"`
	Paths         Paths         `toml:"paths"`
	Surface       Surface       `toml:"surface"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
	Journal       Journal       `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/stagehand/config.toml")
}

// Load locates, parses, and validates a configuration file. The
// returned config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HealthURL returns the full readiness endpoint URL.
func (c *Config) HealthURL() string {
	base := strings.TrimRight(c.Backend.URL, "/")
	path := c.Backend.HealthPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// EntryPointPath resolves the backend entry point against the given
// root directory when it is not already absolute.
func (c *Config) EntryPointPath(root string) string {
	if filepath.IsAbs(c.Backend.EntryPoint) {
		return c.Backend.EntryPoint
	}
	return filepath.Join(root, c.Backend.EntryPoint)
}

// SocketPath returns the control socket location.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.StateDir, "stagehand.sock")
}

// LockPath returns the single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "stagehand.lock")
}

// JournalPath returns the lifecycle journal database location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// ReadinessTimeout returns the overall readiness deadline.
func (c *Config) ReadinessTimeout() time.Duration {
	return time.Duration(c.Readiness.TimeoutSeconds) * time.Second
}

// PollInterval returns the delay between readiness probes.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Readiness.IntervalMillis) * time.Millisecond
}

// RequestTimeout returns the per-probe request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Readiness.RequestTimeoutMillis) * time.Millisecond
}

// ShutdownGrace returns how long Stop waits before killing the child.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.Backend.ShutdownGraceSeconds) * time.Second
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	abs, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", pathValue, err)
	}
	return abs, nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
