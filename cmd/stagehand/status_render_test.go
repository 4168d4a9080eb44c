package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Stagehand", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Stagehand:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Stagehand", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestHumanizeState(t *testing.T) {
	cases := map[string]string{
		"ready":         "Ready",
		"shutting down": "Shutting Down",
		"not started":   "Not Started",
	}
	for input, want := range cases {
		if got := humanizeState(input); got != want {
			t.Errorf("humanizeState(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStateKind(t *testing.T) {
	if stateKind("ready") != statusOK {
		t.Fatal("ready should render OK")
	}
	if stateKind("failed") != statusError {
		t.Fatal("failed should render ERROR")
	}
	if stateKind("probing") != statusInfo {
		t.Fatal("probing should render INFO")
	}
}
