// Package probe polls the backend health endpoint until it responds,
// the child exits, or the deadline passes.
package probe

import (
	"context"
	"net/http"
	"time"
)

// Result is the outcome of a readiness wait.
type Result int

const (
	// Ready means the health endpoint answered with a 200–399 status.
	Ready Result = iota
	// TimedOut means the overall deadline passed without success.
	TimedOut
	// ChildExited means the backend terminated while probing.
	ChildExited
	// Canceled means the wait's context ended before a verdict; the
	// caller is shutting down, not the backend failing.
	Canceled
)

func (r Result) String() string {
	switch r {
	case Ready:
		return "ready"
	case TimedOut:
		return "timed out"
	case ChildExited:
		return "child exited"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Process exposes the liveness check the probe needs; it never
// mutates the child.
type Process interface {
	Exited() bool
}

// Policy contains probe timing. The per-request timeout should be
// well below the interval so a hanging request cannot stretch the
// poll cadence.
type Policy struct {
	Timeout        time.Duration
	Interval       time.Duration
	RequestTimeout time.Duration
}

// NewClient builds the probe HTTP client. Redirects are not
// followed: a redirect status already proves the backend is serving.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// WaitUntilReady polls url until it answers successfully, the child
// exits, the context ends, or the deadline passes. The deadline is
// hard: it is measured from wait start and not extended by
// intervening activity.
func WaitUntilReady(ctx context.Context, url string, policy Policy, child Process) Result {
	client := NewClient(policy.RequestTimeout)
	deadline := time.Now().Add(policy.Timeout)

	for time.Now().Before(deadline) {
		if Check(ctx, client, url) {
			return Ready
		}
		// A dead backend will never become ready; stop early instead
		// of polling out the full timeout.
		if child.Exited() {
			return ChildExited
		}
		select {
		case <-ctx.Done():
			return Canceled
		case <-time.After(policy.Interval):
		}
	}
	return TimedOut
}

// Check issues a single bounded request against url. Any status in
// the success/redirect range counts as ready; the body is ignored.
func Check(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}
