// Package filelock provides an advisory lock that keeps two trname runs from
// renaming inside the same directory tree at the same time.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run already holds the lock for a tree.
var ErrLocked = errors.New("directory tree is locked by another run")

// FileLock wraps a flock file lock for coordinating access to a tree.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held elsewhere.
// Returns an error if the lock operation fails.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
// Returns an error if the unlock operation fails.
func (fl *FileLock) Unlock() error {
	err := fl.flock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Release unlocks and removes the lock file.
// A lock file that is already gone is not an error.
func (fl *FileLock) Release() error {
	if err := fl.Unlock(); err != nil {
		return err
	}
	if err := os.Remove(fl.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file %s: %w", fl.path, err)
	}
	return nil
}

// LockPathFor returns the lock file path for root inside lockDir.
// The name is derived from the absolute root path, so the lock file never
// lives inside the tree being renamed.
func LockPathFor(lockDir, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(lockDir, "trname-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// AcquireTreeLock takes the run lock for root in the OS temp directory.
// It does not block: if another run holds the lock it returns ErrLocked.
func AcquireTreeLock(root string) (*FileLock, error) {
	return AcquireTreeLockIn(os.TempDir(), root)
}

// AcquireTreeLockIn is AcquireTreeLock with an explicit lock directory.
func AcquireTreeLockIn(lockDir, root string) (*FileLock, error) {
	path, err := LockPathFor(lockDir, root)
	if err != nil {
		return nil, err
	}

	lock := NewFileLock(path)
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s (lock file %s)", ErrLocked, root, lock.Path())
	}
	return lock, nil
}
