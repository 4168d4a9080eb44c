// Package notifications delivers user-visible supervisor alerts via
// ntfy push notifications.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stagehand/internal/config"
)

const userAgent = "Stagehand/0.1.0"

// Service defines the notification surface exposed to the supervisor.
type Service interface {
	NotifyStartupFailed(ctx context.Context, err error) error
	NotifyBackendCrashed(ctx context.Context, detail string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when
// configured. When no ntfy topic is configured, a noop implementation
// is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyStartupFailed(ctx context.Context, err error) error {
	data := payload{
		title:    "Stagehand - Startup Failed",
		message:  fmt.Sprintf("Backend failed to start: %v", err),
		tags:     []string{"stagehand", "startup", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBackendCrashed(ctx context.Context, detail string) error {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = "unknown cause"
	}
	data := payload{
		title:    "Stagehand - Backend Crashed",
		message:  fmt.Sprintf("Backend exited unexpectedly (%s)", detail),
		tags:     []string{"stagehand", "backend", "crashed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Stagehand - Test",
		message: "Test notification from stagehand",
		tags:    []string{"stagehand", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyStartupFailed(context.Context, error) error   { return nil }
func (noopService) NotifyBackendCrashed(context.Context, string) error { return nil }
func (noopService) TestNotification(context.Context) error             { return nil }
