package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

var (
	// ErrEntryPointNotFound indicates the backend script is missing;
	// no spawn is attempted.
	ErrEntryPointNotFound = errors.New("backend entry point not found")

	// ErrNoInterpreterFound indicates every candidate failed to spawn
	// because its executable could not be found.
	ErrNoInterpreterFound = errors.New("no usable interpreter found")
)

// SpawnError reports a non-"not found" spawn failure from a specific
// candidate. It aborts the fallback loop: remaining candidates are
// not tried.
type SpawnError struct {
	Candidate string
	Err       error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Candidate, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsNotFound classifies a spawn failure as the executable being
// absent, the only error class that triggers candidate fallback.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOENT)
}
