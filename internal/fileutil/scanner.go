package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Entry is one filesystem entry discovered during a scan
type Entry struct {
	// Path is the entry path, joined onto the scanned root
	Path string
	// Name is the base name of the entry
	Name string
	// IsDir is true for real directories; symlinks are never directories here
	IsDir bool
}

// ScanResult contains the results of a tree scan
type ScanResult struct {
	// Entries lists every entry bottom-up (see ScanTree)
	Entries []Entry
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanTree lists every entry below root in bottom-up order.
//
// For each directory the order is: the subtrees of its subdirectories, then
// its files, then the subdirectories themselves, each group sorted by name.
// A directory therefore always comes after everything it contains. The root
// itself is not listed. Symlinks are listed as plain entries and never
// followed. Unreadable directories are recorded in Errors and skipped.
func ScanTree(root string) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &ScanResult{
		Entries: make([]Entry, 0),
		Errors:  make([]error, 0),
	}
	scanDir(root, result)
	return result, nil
}

func scanDir(dir string, result *ScanResult) {
	// ReadDir sorts by name and may return partial results with an error
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("error reading %s: %w", dir, err))
	}

	var files, dirs []Entry
	for _, d := range dirEntries {
		e := Entry{
			Path:  filepath.Join(dir, d.Name()),
			Name:  d.Name(),
			IsDir: d.IsDir(),
		}
		if e.IsDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}

	for _, sub := range dirs {
		scanDir(sub.Path, result)
	}
	result.Entries = append(result.Entries, files...)
	result.Entries = append(result.Entries, dirs...)
}
