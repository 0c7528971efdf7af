package models

import (
	"path/filepath"
	"time"
)

// Outcome is the per-entry result category of a run.
type Outcome string

// Rename outcome constants
const (
	OutcomeRenamed          Outcome = "renamed"
	OutcomeUnchanged        Outcome = "unchanged"
	OutcomeSkippedExtension Outcome = "skipped-extension-filtered"
	OutcomeSkippedCollision Outcome = "skipped-collision"
	OutcomeDryRunPreview    Outcome = "dry-run-preview"
	OutcomeFailed           Outcome = "failed"
)

// Result describes what happened to a single filesystem entry.
type Result struct {
	Path         string  // Original path of the entry
	OriginalName string  // Base name before the pipeline
	NewName      string  // Base name after the pipeline
	IsDir        bool    // Whether the entry is a directory
	Changed      bool    // NewName differs from OriginalName
	Outcome      Outcome // Category of the result
	Err          error   // Underlying error for OutcomeFailed
}

// NewPath returns the path the entry has (or would have) after renaming.
func (r Result) NewPath() string {
	if r.Path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(r.Path), r.NewName)
}

// Kind returns "DIR" or "FILE" for log lines.
func (r Result) Kind() string {
	if r.IsDir {
		return "DIR"
	}
	return "FILE"
}

// Summary aggregates the results of one run over a directory tree.
type Summary struct {
	RunID            string        // Identifier correlating log lines of one run
	Root             string        // Target directory
	DryRun           bool          // Whether renames were only previewed
	Renamed          int           // Entries actually renamed
	Previewed        int           // Entries that would be renamed (dry run)
	Unchanged        int           // Entries whose name is already clean
	SkippedExtension int           // Files excluded by the extension filter
	SkippedCollision int           // Entries whose target name was taken
	Failed           int           // Entries the filesystem refused to rename
	Duration         time.Duration // Wall time of the run
	Results          []Result      // Per-entry details in processing order
}

// Record adds a result to the summary and bumps the matching counter.
func (s *Summary) Record(r Result) {
	switch r.Outcome {
	case OutcomeRenamed:
		s.Renamed++
	case OutcomeDryRunPreview:
		s.Previewed++
	case OutcomeUnchanged:
		s.Unchanged++
	case OutcomeSkippedExtension:
		s.SkippedExtension++
	case OutcomeSkippedCollision:
		s.SkippedCollision++
	case OutcomeFailed:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}

// Skipped returns the number of entries skipped for any reason.
func (s *Summary) Skipped() int {
	return s.SkippedExtension + s.SkippedCollision
}

// Total returns the number of recorded results.
func (s *Summary) Total() int {
	return len(s.Results)
}

// ResultsWith returns the recorded results that have the given outcome.
func (s *Summary) ResultsWith(outcome Outcome) []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Outcome == outcome {
			out = append(out, r)
		}
	}
	return out
}
