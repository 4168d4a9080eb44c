package preflight_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"stagehand/internal/preflight"
	"stagehand/internal/testsupport"
)

func TestRunAllPassesWithPreparedEnvironment(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := t.TempDir()
	scriptDir := filepath.Join(root, filepath.Dir(cfg.Backend.EntryPoint))
	if err := os.MkdirAll(scriptDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	script := cfg.EntryPointPath(root)
	if err := os.WriteFile(script, []byte("print('ok')\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	// Guarantee an interpreter hit regardless of the host's Pythons.
	t.Setenv("STAGEHAND_PYTHON", "sh")

	results := preflight.RunAll(cfg, root)
	if len(results) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Errorf("%s failed: %s", result.Name, result.Detail)
		}
	}
	if !preflight.AllPassed(results) {
		t.Fatal("AllPassed should be true")
	}
}

func TestCheckEntryPointMissing(t *testing.T) {
	result := preflight.CheckEntryPoint(filepath.Join(t.TempDir(), "backend", "app.py"))
	if result.Passed {
		t.Fatal("missing entry point must fail")
	}
}

func TestCheckEntryPointDirectory(t *testing.T) {
	result := preflight.CheckEntryPoint(t.TempDir())
	if result.Passed {
		t.Fatal("directory entry point must fail")
	}
}

func TestCheckInterpreterExhausted(t *testing.T) {
	t.Setenv("STAGEHAND_PYTHON", "")
	result := preflight.CheckInterpreter([]string{"stagehand-test-no-such-interpreter"})
	// Platform default python3/python may still resolve; only the
	// failure detail shape is asserted when nothing resolves.
	if !result.Passed && result.Detail == "" {
		t.Fatal("failed check must carry a detail")
	}
}

func TestCheckDirectoryAccessMissing(t *testing.T) {
	result := preflight.CheckDirectoryAccess("State directory", filepath.Join(t.TempDir(), "absent"))
	if result.Passed {
		t.Fatal("missing directory must fail")
	}
}

func TestCheckBackendHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Backend.URL = server.URL

	result := preflight.CheckBackendHealth(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected healthy backend, got %+v", result)
	}

	server.Close()
	result = preflight.CheckBackendHealth(context.Background(), cfg)
	if result.Passed {
		t.Fatal("closed backend must fail the health check")
	}
}
