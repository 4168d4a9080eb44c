// Package preflight verifies the launch environment before stagehand
// spawns the backend: the entry point script, an available
// interpreter, and writable state directories.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"stagehand/internal/config"
	"stagehand/internal/launcher"
	"stagehand/internal/probe"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every launch-environment check for the given config.
// The backend health check is not included; it only applies to a
// running instance and is reported by the status command instead.
func RunAll(cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckEntryPoint(cfg.EntryPointPath(root)),
		CheckInterpreter(cfg.Backend.Interpreters),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// CheckEntryPoint verifies the backend script exists and is a regular
// file.
func CheckEntryPoint(path string) Result {
	const name = "Backend entry point"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckInterpreter resolves the candidate list the launcher would use
// and reports the first interpreter found on PATH.
func CheckInterpreter(configured []string) Result {
	const name = "Python interpreter"
	candidates := launcher.Candidates(configured)
	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return Result{Name: name, Passed: true, Detail: path}
		}
	}
	return Result{Name: name, Detail: fmt.Sprintf("none of %s found on PATH", strings.Join(candidates, ", "))}
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckBackendHealth probes the health endpoint once. Used by the
// status command against a running instance.
func CheckBackendHealth(ctx context.Context, cfg *config.Config) Result {
	const name = "Backend health"
	client := probe.NewClient(cfg.RequestTimeout())
	if !probe.Check(ctx, client, cfg.HealthURL()) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not responding)", cfg.HealthURL())}
	}
	return Result{Name: name, Passed: true, Detail: cfg.HealthURL()}
}
