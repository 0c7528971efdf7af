package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/trname/internal/models"
)

// LatestLogName is the symlink in the log directory that points at the most recent run log.
const LatestLogName = "latest.log"

// FileLogger writes run messages to a timestamped file in a log directory.
// Each run gets its own run-YYYYMMDD-HHMMSS.log file and latest.log is
// repointed at it. It is thread-safe.
type FileLogger struct {
	logDir  string
	runLog  *os.File
	runFile string
	level   Level
	mu      sync.Mutex
}

// NewFileLogger creates a FileLogger writing into logDir, creating the directory
// if needed. logLevel is the minimum level written: debug, info, warn or error.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Repoint latest.log at this run
	symlinkPath := filepath.Join(logDir, LatestLogName)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:  logDir,
		runLog:  file,
		runFile: runFile,
		level:   ParseLevel(logLevel),
	}

	fl.writeRunLog("=== trname Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the path of the current run log file.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// Log writes message at the given level if filtering allows it.
func (fl *FileLogger) Log(level Level, message string) {
	if level < fl.level {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogSummary writes the run summary without colors, followed by the entries
// that were left untouched because of a collision or a failure. It is written
// at every level.
func (fl *FileLogger) LogSummary(summary *models.Summary) {
	if summary == nil {
		return
	}
	ts := timestamp()
	fl.writeRunLog(fmt.Sprintf("[%s] Run ID: %s\n", ts, summary.RunID))
	fl.writeRunLog(formatSummary(summary, ts, plain))

	if collided := summary.ResultsWith(models.OutcomeSkippedCollision); len(collided) > 0 {
		fl.writeRunLog("\nCollisions:\n")
		for _, r := range collided {
			fl.writeRunLog(fmt.Sprintf("  - %s %s -> %s\n", r.Kind(), r.Path, r.NewName))
		}
	}
	if failed := summary.ResultsWith(models.OutcomeFailed); len(failed) > 0 {
		fl.writeRunLog("\nFailures:\n")
		for _, r := range failed {
			fl.writeRunLog(fmt.Sprintf("  - %s: %v\n", r.Path, r.Err))
		}
	}
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
