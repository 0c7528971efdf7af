package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}

	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestTryLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	acquired, err := lock.TryLock()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if !acquired {
		t.Fatal("Expected lock to be acquired")
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestLockPathFor(t *testing.T) {
	lockDir := t.TempDir()
	root := t.TempDir()

	first, err := LockPathFor(lockDir, root)
	if err != nil {
		t.Fatalf("LockPathFor() error = %v", err)
	}
	second, err := LockPathFor(lockDir, root+string(filepath.Separator))
	if err != nil {
		t.Fatalf("LockPathFor() error = %v", err)
	}
	if first != second {
		t.Errorf("same tree should map to one lock file: %s vs %s", first, second)
	}
	if filepath.Dir(first) != lockDir {
		t.Errorf("lock file %s should live in %s", first, lockDir)
	}
	if !strings.HasPrefix(filepath.Base(first), "trname-") || !strings.HasSuffix(first, ".lock") {
		t.Errorf("unexpected lock file name %s", first)
	}

	other, _ := LockPathFor(lockDir, t.TempDir())
	if other == first {
		t.Errorf("different trees must not share a lock file")
	}
}

func TestAcquireTreeLockExclusive(t *testing.T) {
	lockDir := t.TempDir()
	root := t.TempDir()

	lock, err := AcquireTreeLockIn(lockDir, root)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	_, err = AcquireTreeLockIn(lockDir, root)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second acquire should fail with ErrLocked, got %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}

	again, err := AcquireTreeLockIn(lockDir, root)
	if err != nil {
		t.Fatalf("acquire after unlock failed: %v", err)
	}
	again.Unlock()
}

func TestAcquireTreeLockLeavesTreeUntouched(t *testing.T) {
	root := t.TempDir()

	lock, err := AcquireTreeLock(root)
	if err != nil {
		t.Fatalf("AcquireTreeLock() error = %v", err)
	}
	defer lock.Unlock()

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("lock must not create files inside the tree, found %d entries", len(entries))
	}
}

func TestReleaseRemovesLockFile(t *testing.T) {
	lockDir := t.TempDir()
	root := t.TempDir()

	lock, err := AcquireTreeLockIn(lockDir, root)
	if err != nil {
		t.Fatalf("AcquireTreeLockIn() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file should exist while held: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("lock file should be removed after Release, got %v", err)
	}

	again, err := AcquireTreeLockIn(lockDir, root)
	if err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestLockedErrorNamesLockFile(t *testing.T) {
	lockDir := t.TempDir()
	root := t.TempDir()

	lock, err := AcquireTreeLockIn(lockDir, root)
	if err != nil {
		t.Fatalf("AcquireTreeLockIn() error = %v", err)
	}
	defer lock.Release()

	_, err = AcquireTreeLockIn(lockDir, root)
	if err == nil || !strings.Contains(err.Error(), lock.Path()) {
		t.Errorf("error should name the lock file %s, got %v", lock.Path(), err)
	}
}
