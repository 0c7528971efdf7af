// Package walker applies the rename pipeline to a directory tree.
//
// A Walker scans the tree bottom-up, transforms each eligible base name and
// renames the entry in place. Collisions are never resolved by overwriting or
// suffixing: the original entry is left as it is and the run continues. One
// failed rename never aborts the run.
package walker

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/trname/internal/config"
	"github.com/harrison/trname/internal/fileutil"
	"github.com/harrison/trname/internal/logger"
	"github.com/harrison/trname/internal/models"
	"github.com/harrison/trname/internal/transform"
)

// ErrNotDirectory is returned when the target is missing or not a directory.
var ErrNotDirectory = errors.New("target is not a directory")

// Logger is the single logging capability the walker writes through.
type Logger interface {
	Log(level logger.Level, message string)
	LogSummary(summary *models.Summary)
}

// Walker renames the entries of one directory tree.
type Walker struct {
	cfg    *config.Config
	opts   transform.Options
	logger Logger
	rename func(oldpath, newpath string) error

	// dry-run bookkeeping: paths a previewed rename would occupy or free
	claimed map[string]bool
	vacated map[string]bool
}

// New creates a Walker for cfg. A nil logger discards all messages.
func New(cfg *config.Config, log Logger) *Walker {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Walker{
		cfg:    cfg,
		opts:   cfg.Options(),
		logger: log,
		rename: os.Rename,
	}
}

// Run processes every entry below root and returns the summary.
// An error is returned only when root cannot be used; per-entry problems are
// counted in the summary instead.
func (w *Walker) Run(root string) (*models.Summary, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &models.Summary{
		RunID:  uuid.NewString(),
		Root:   root,
		DryRun: w.cfg.DryRun,
	}
	w.claimed = make(map[string]bool)
	w.vacated = make(map[string]bool)

	w.logger.Log(logger.LevelDebug, fmt.Sprintf("run %s: scanning %s (dry run: %t)", summary.RunID, root, w.cfg.DryRun))

	scan, err := fileutil.ScanTree(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	for _, scanErr := range scan.Errors {
		w.logger.Log(logger.LevelError, scanErr.Error())
		summary.Record(models.Result{Outcome: models.OutcomeFailed, Err: scanErr})
	}

	for _, entry := range scan.Entries {
		if result, ok := w.process(entry); ok {
			summary.Record(result)
		}
	}

	summary.Duration = time.Since(start)
	w.logger.LogSummary(summary)
	return summary, nil
}

// CheckRoot verifies root exists, is a directory and can be listed.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrNotDirectory, root)
		}
		return fmt.Errorf("failed to access %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	f, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("directory %s is not readable: %w", root, err)
	}
	f.Close()
	return nil
}

// process handles one entry. The bool is false for directories that are not
// being processed, which are skipped without a trace.
func (w *Walker) process(entry fileutil.Entry) (models.Result, bool) {
	if entry.IsDir && !w.cfg.ProcessDirs {
		return models.Result{}, false
	}

	result := models.Result{
		Path:         entry.Path,
		OriginalName: entry.Name,
		NewName:      entry.Name,
		IsDir:        entry.IsDir,
	}

	if !entry.IsDir && !w.cfg.MatchesExtension(entry.Name) {
		result.Outcome = models.OutcomeSkippedExtension
		w.logger.Log(logger.LevelDebug, fmt.Sprintf("[SKIP] %s %s (extension not selected)", result.Kind(), entry.Path))
		return result, true
	}

	result.NewName = transform.Transform(entry.Name, w.opts)
	result.Changed = result.NewName != entry.Name
	if !result.Changed {
		result.Outcome = models.OutcomeUnchanged
		w.logger.Log(logger.LevelDebug, fmt.Sprintf("[SKIP] %s %s (no changes)", result.Kind(), entry.Path))
		return result, true
	}

	newPath := result.NewPath()
	collision, err := w.collides(entry.Path, newPath)
	if err != nil {
		result.Outcome = models.OutcomeFailed
		result.Err = err
		w.logger.Log(logger.LevelError, fmt.Sprintf("Failed to rename %s to %s: %v", entry.Path, newPath, err))
		return result, true
	}
	if collision {
		result.Outcome = models.OutcomeSkippedCollision
		w.logger.Log(logger.LevelWarn, fmt.Sprintf("[COLLISION] %s %s -> %s: target already exists, left untouched",
			result.Kind(), entry.Path, newPath))
		return result, true
	}

	if w.cfg.DryRun {
		result.Outcome = models.OutcomeDryRunPreview
		w.claim(entry.Path, newPath)
		w.logger.Log(logger.LevelInfo, fmt.Sprintf("[DRY-RUN] %s %s -> %s", result.Kind(), entry.Path, newPath))
		return result, true
	}

	if err := w.rename(entry.Path, newPath); err != nil {
		result.Outcome = models.OutcomeFailed
		result.Err = err
		w.logger.Log(logger.LevelError, fmt.Sprintf("Failed to rename %s to %s: %v", entry.Path, newPath, err))
		return result, true
	}

	result.Outcome = models.OutcomeRenamed
	w.logger.Log(logger.LevelInfo, fmt.Sprintf("[RENAME] %s %s -> %s", result.Kind(), entry.Path, newPath))
	return result, true
}

// collides reports whether dst is taken by an entry other than src.
// A dst that is the same file as src (a case-only rename on a
// case-insensitive filesystem) is not a collision. An error means src
// itself can no longer be found.
func (w *Walker) collides(src, dst string) (bool, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return false, fmt.Errorf("entry disappeared: %w", err)
	}
	if w.claimed[dst] {
		return true, nil
	}
	if w.vacated[dst] {
		return false, nil
	}

	dstInfo, err := os.Lstat(dst)
	if err != nil {
		return false, nil
	}
	return !os.SameFile(srcInfo, dstInfo), nil
}

// claim records a previewed rename so later entries of a dry run see the
// tree as a real run would have left it.
func (w *Walker) claim(src, dst string) {
	delete(w.claimed, src)
	delete(w.vacated, dst)
	w.vacated[src] = true
	w.claimed[dst] = true
}
