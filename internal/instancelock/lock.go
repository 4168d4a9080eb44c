// Package instancelock enforces single-instance execution via an
// advisory file lock.
package instancelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock guards a lock file so only one stagehand instance runs per
// user session. The first acquirer wins; later acquirers observe
// false without blocking.
type Lock struct {
	path string
	fl   *flock.Flock
}

// New prepares a lock at the given path without acquiring it.
func New(path string) *Lock {
	return &Lock{path: path, fl: flock.New(path)}
}

// Acquire attempts to take the lock. It returns false when another
// instance already holds it. The decision is made once, never polled.
func (l *Lock) Acquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	return ok, nil
}

// Release drops the lock. Safe to call when the lock is not held.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
