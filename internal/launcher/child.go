package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"stagehand/internal/logging"
)

// ExitState describes how a child terminated. Exactly one of Code
// (>= 0) or Signal is meaningful.
type ExitState struct {
	Code   int
	Signal string
}

func (e ExitState) String() string {
	if e.Signal != "" {
		return "signal " + e.Signal
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Child is the handle over a spawned backend process. It is owned by
// the supervisor; other components only read liveness and exit state.
type Child struct {
	cmd     *exec.Cmd
	pid     int
	command string

	done chan struct{}

	mu     sync.Mutex
	exited bool
	exit   ExitState
}

// PID returns the child's process identifier.
func (c *Child) PID() int {
	return c.pid
}

// Command returns the interpreter the child was spawned with.
func (c *Child) Command() string {
	return c.command
}

// Done is closed once the child has terminated and its exit state is
// recorded.
func (c *Child) Done() <-chan struct{} {
	return c.done
}

// Exited reports whether the child has terminated.
func (c *Child) Exited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited
}

// ExitState returns the terminal exit state. The second result is
// false while the child is still running.
func (c *Child) ExitState() (ExitState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exit, c.exited
}

// Terminate asks the child's process group to exit and kills it after
// the grace period. Errors from signaling an already-gone process are
// swallowed; termination during shutdown is best effort.
func (c *Child) Terminate(grace time.Duration) {
	if c.Exited() {
		return
	}
	_ = syscall.Kill(-c.pid, syscall.SIGTERM)

	select {
	case <-c.done:
		return
	case <-time.After(grace):
	}
	_ = syscall.Kill(-c.pid, syscall.SIGKILL)
	<-c.done
}

// pumpStream forwards each non-blank output line as a log entry
// tagged with the stream name.
func pumpStream(logger *slog.Logger, name string, r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		logger.Info(line, logging.String(logging.FieldStream, name))
	}
}

// monitorExit waits for the process to terminate, records the exit
// state, and closes done. Stream pumps are drained first, as required
// by os/exec.
func (c *Child) monitorExit(wg *sync.WaitGroup) {
	wg.Wait()
	err := c.cmd.Wait()

	state := ExitState{Code: 0}
	if err != nil {
		state.Code = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				if ws.Signaled() {
					state.Signal = unix.SignalName(ws.Signal())
				} else {
					state.Code = ws.ExitStatus()
				}
			}
		}
	}

	c.mu.Lock()
	c.exit = state
	c.exited = true
	c.mu.Unlock()
	close(c.done)
}
