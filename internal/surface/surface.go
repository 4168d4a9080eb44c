// Package surface opens the backend's web UI and gates that on
// readiness: an activation request only produces a browser window once
// the supervisor reports the backend healthy, and overlapping requests
// collapse into a single window.
package surface

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"stagehand/internal/logging"
)

// Surface presents the backend UI to the user.
type Surface interface {
	Show(ctx context.Context) error
}

// Browser shows the UI by handing the backend URL to the platform's
// URL opener (or a configured override).
type Browser struct {
	url    string
	argv   []string
	logger *slog.Logger
}

// NewBrowser builds a Surface for url. When opener is empty the
// platform default is used.
func NewBrowser(url, opener string, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = logging.NewNop()
	}
	argv := defaultOpener()
	if opener != "" {
		argv = []string{opener}
	}
	return &Browser{url: url, argv: argv, logger: logger}
}

// Show launches the opener detached; the browser owns the window from
// here on.
func (b *Browser) Show(ctx context.Context) error {
	args := append(append([]string(nil), b.argv[1:]...), b.url)
	cmd := exec.CommandContext(ctx, b.argv[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s with %s: %w", b.url, b.argv[0], err)
	}
	b.logger.Info("surface opened",
		logging.String("url", b.url),
		logging.String(logging.FieldCommand, b.argv[0]))
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func defaultOpener() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}
