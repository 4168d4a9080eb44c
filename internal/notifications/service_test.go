package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"stagehand/internal/config"
	"stagehand/internal/notifications"
)

type captured struct {
	title    string
	priority string
	body     string
}

func newCapturingServer(t *testing.T) (*httptest.Server, *[]captured) {
	t.Helper()
	var mu sync.Mutex
	var requests []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, captured{
			title:    r.Header.Get("Title"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func serviceFor(topic string) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	return notifications.NewService(&cfg)
}

func TestNotifyBackendCrashed(t *testing.T) {
	srv, requests := newCapturingServer(t)

	svc := serviceFor(srv.URL)
	if err := svc.NotifyBackendCrashed(context.Background(), "signal SIGKILL"); err != nil {
		t.Fatalf("NotifyBackendCrashed: %v", err)
	}

	if len(*requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*requests))
	}
	got := (*requests)[0]
	if got.title != "Stagehand - Backend Crashed" {
		t.Fatalf("unexpected title %q", got.title)
	}
	if got.priority != "high" {
		t.Fatalf("crash notifications should be high priority, got %q", got.priority)
	}
	if got.body != "Backend exited unexpectedly (signal SIGKILL)" {
		t.Fatalf("unexpected body %q", got.body)
	}
}

func TestNotifyStartupFailed(t *testing.T) {
	srv, requests := newCapturingServer(t)

	svc := serviceFor(srv.URL)
	if err := svc.NotifyStartupFailed(context.Background(), errors.New("no usable interpreter found")); err != nil {
		t.Fatalf("NotifyStartupFailed: %v", err)
	}
	if len(*requests) != 1 || (*requests)[0].body != "Backend failed to start: no usable interpreter found" {
		t.Fatalf("unexpected requests %v", *requests)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	defer srv.Close()

	svc := serviceFor(srv.URL)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestNoopWhenUnconfigured(t *testing.T) {
	svc := serviceFor("")
	if err := svc.NotifyBackendCrashed(context.Background(), "exit code 1"); err != nil {
		t.Fatalf("noop service should never fail: %v", err)
	}
}
