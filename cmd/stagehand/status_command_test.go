package main

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"stagehand/internal/config"
	"stagehand/internal/journal"
)

func TestStatusOffline(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, []string{"status"}, configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Not running")
	requireContains(t, out, "Backend entry point")
}

func TestStatusOfflineShowsLastEvent(t *testing.T) {
	configPath := writeTestConfig(t)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if err := store.Append(context.Background(), uuid.NewString(), journal.EventShutdown, "", 0); err != nil {
		t.Fatalf("append: %v", err)
	}
	store.Close()

	out, _, err := runCLI(t, []string{"status"}, configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Last event")
	requireContains(t, out, "shutdown")
}
