// Package logger provides logging implementations for trname runs.
//
// All user-facing messages of a run go through a single leveled call,
// Log(level, message), so verbosity policy lives here and not in the walker.
// Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/trname/internal/models"
	"github.com/mattn/go-isatty"
)

// Level is the severity of a log message
type Level int

// Log level constants for filtering
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the upper-case label used in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level.
// Empty or unknown names map to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Warnings and errors go to a separate error writer when one is set.
// Color output is enabled only when the writer is a terminal.
type ConsoleLogger struct {
	writer         io.Writer
	errWriter      io.Writer
	level          Level
	mutex          sync.Mutex
	colorOutput    bool
	errColorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes every message to writer.
// If writer is nil, messages are silently discarded.
// logLevel is the minimum level written: debug, info, warn or error.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return NewSplitConsoleLogger(writer, writer, logLevel)
}

// NewSplitConsoleLogger creates a ConsoleLogger that writes debug and info
// messages and the summary to writer, and warnings and errors to errWriter.
func NewSplitConsoleLogger(writer, errWriter io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:         writer,
		errWriter:      errWriter,
		level:          ParseLevel(logLevel),
		colorOutput:    isTerminal(writer),
		errColorOutput: isTerminal(errWriter),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// NO_COLOR is honored through color.NoColor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// target returns the writer and color setting used for level.
func (cl *ConsoleLogger) target(level Level) (io.Writer, bool) {
	if level >= LevelWarn {
		return cl.errWriter, cl.errColorOutput
	}
	return cl.writer, cl.colorOutput
}

// Enabled reports whether a message at level would be written.
func (cl *ConsoleLogger) Enabled(level Level) bool {
	w, _ := cl.target(level)
	return w != nil && level >= cl.level
}

// Log writes message at the given level if filtering allows it.
// Format: "[HH:MM:SS] [LEVEL] <message>"
func (cl *ConsoleLogger) Log(level Level, message string) {
	if !cl.Enabled(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	w, colored := cl.target(level)
	label := level.String()
	if colored {
		label = levelColor(level).Sprint(label)
	}
	fmt.Fprintf(w, "[%s] [%s] %s\n", timestamp(), label, message)
}

func levelColor(level Level) *color.Color {
	switch level {
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogSummary logs the run summary. It is written at every level.
// Format: "[HH:MM:SS] === Rename Summary ===" followed by one line per counter.
func (cl *ConsoleLogger) LogSummary(summary *models.Summary) {
	if cl.writer == nil || summary == nil {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	paint := func(c color.Attribute, text string) string {
		if !cl.colorOutput {
			return text
		}
		return color.New(c).Sprint(text)
	}
	io.WriteString(cl.writer, formatSummary(summary, timestamp(), paint))
}

// formatSummary renders the summary block. paint decorates highlighted lines.
func formatSummary(summary *models.Summary, ts string, paint func(color.Attribute, string) string) string {
	header := "=== Rename Summary ==="
	if summary.DryRun {
		header = "=== Rename Summary (dry run) ==="
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, paint(color.Bold, header))
	fmt.Fprintf(&b, "[%s] Target: %s\n", ts, summary.Root)
	fmt.Fprintf(&b, "[%s] Entries: %d\n", ts, summary.Total())
	if summary.DryRun {
		fmt.Fprintf(&b, "[%s] %s\n", ts, paint(color.FgGreen, fmt.Sprintf("Would rename: %d", summary.Previewed)))
	} else {
		fmt.Fprintf(&b, "[%s] %s\n", ts, paint(color.FgGreen, fmt.Sprintf("Renamed: %d", summary.Renamed)))
	}
	fmt.Fprintf(&b, "[%s] Unchanged: %d\n", ts, summary.Unchanged)

	skipped := fmt.Sprintf("Skipped: %d (extension: %d, collision: %d)",
		summary.Skipped(), summary.SkippedExtension, summary.SkippedCollision)
	if summary.SkippedCollision > 0 {
		skipped = paint(color.FgYellow, skipped)
	}
	fmt.Fprintf(&b, "[%s] %s\n", ts, skipped)

	failed := fmt.Sprintf("Failed: %d", summary.Failed)
	if summary.Failed > 0 {
		failed = paint(color.FgRed, failed)
	}
	fmt.Fprintf(&b, "[%s] %s\n", ts, failed)
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(summary.Duration))
	return b.String()
}

// plain is a paint function that leaves text undecorated.
func plain(_ color.Attribute, text string) string {
	return text
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration formats a duration compactly: "450ms", "12s", "3m5s", "1h2m".
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Log is a no-op implementation.
func (n *NoOpLogger) Log(level Level, message string) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(summary *models.Summary) {}
