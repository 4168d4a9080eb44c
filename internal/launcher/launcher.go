package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"stagehand/internal/logging"
)

// Options describes one launch attempt.
type Options struct {
	// Script is the backend entry point. Its presence is validated
	// before any spawn.
	Script string
	// Candidates is the ordered interpreter list; see Candidates.
	Candidates []string
	// WorkDir is the child's working directory (the project root).
	WorkDir string
}

// Launch resolves a working interpreter from the candidate list and
// spawns the backend as a child process. Fallback to the next
// candidate happens only when the spawn fails because the executable
// was not found; any other spawn error aborts the launch.
func Launch(ctx context.Context, logger *slog.Logger, opts Options) (*Child, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if _, err := os.Stat(opts.Script); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryPointNotFound, opts.Script)
	}
	if len(opts.Candidates) == 0 {
		return nil, ErrNoInterpreterFound
	}

	streamLogger := logging.WithComponent(logger, "backend")
	for _, candidate := range opts.Candidates {
		child, err := spawn(ctx, streamLogger, candidate, opts)
		if err == nil {
			logger.Info("backend launched",
				logging.String(logging.FieldCommand, candidate),
				logging.Int(logging.FieldPID, child.PID()))
			return child, nil
		}
		if IsNotFound(err) {
			logger.Debug("interpreter not found, trying next candidate",
				logging.String(logging.FieldCommand, candidate))
			continue
		}
		return nil, &SpawnError{Candidate: candidate, Err: err}
	}
	return nil, ErrNoInterpreterFound
}

func spawn(ctx context.Context, streamLogger *slog.Logger, candidate string, opts Options) (*Child, error) {
	cmd := exec.CommandContext(ctx, candidate, opts.Script)
	cmd.Dir = opts.WorkDir
	cmd.Env = append(os.Environ(), envUnbuffered, envDesktopMarker)
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	child := &Child{
		cmd:     cmd,
		pid:     cmd.Process.Pid,
		command: candidate,
		done:    make(chan struct{}),
	}

	// The exit monitor is wired before any output is consumed, so no
	// exit can be observed without a registered listener.
	var wg sync.WaitGroup
	wg.Add(2)
	go child.monitorExit(&wg)
	go pumpStream(streamLogger, "stdout", stdout, &wg)
	go pumpStream(streamLogger, "stderr", stderr, &wg)

	return child, nil
}
