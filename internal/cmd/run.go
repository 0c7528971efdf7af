package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/trname/internal/config"
	"github.com/harrison/trname/internal/filelock"
	"github.com/harrison/trname/internal/logger"
	"github.com/harrison/trname/internal/models"
	"github.com/harrison/trname/internal/walker"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// runCommand implements the rename run
func runCommand(cmd *cobra.Command, args []string) error {
	target, err := expandPath(args[0])
	if err != nil {
		return fmt.Errorf("invalid target %s: %w", args[0], err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// nothing is created on disk for a target that cannot be used
	if err := walker.CheckRoot(target); err != nil {
		return err
	}

	lock, err := filelock.AcquireTreeLock(target)
	if err != nil {
		return err
	}
	defer lock.Release()

	consoleLog := logger.NewSplitConsoleLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.EffectiveLogLevel())
	var log walker.Logger = consoleLog

	if cfg.LogDir != "" {
		logDir, err := expandPath(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("invalid log directory %s: %w", cfg.LogDir, err)
		}
		inside, err := isWithin(target, logDir)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("log directory %s must be outside the target %s", logDir, target)
		}

		fileLog, err := logger.NewFileLogger(logDir, cfg.EffectiveLogLevel())
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()

		consoleLog.Log(logger.LevelDebug, fmt.Sprintf("writing run log to %s", fileLog.Path()))
		log = &multiLogger{loggers: []walker.Logger{consoleLog, fileLog}}
	}

	_, err = walker.New(cfg, log).Run(target)
	return err
}

// loadConfig builds the run configuration: defaults, then the optional
// profile, then flags that were explicitly set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		path, err := expandPath(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path %s: %w", configPath, err)
		}
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	}

	cfg.MergeWithFlags(flagOverrides(cmd))
	cfg.NormalizeExtensions()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// flagOverrides collects the flags the user actually passed.
func flagOverrides(cmd *cobra.Command) config.FlagOverrides {
	flags := cmd.Flags()
	var f config.FlagOverrides

	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	if no := boolFlag("no-asciify"); no != nil {
		asciify := !*no
		f.Asciify = &asciify
	}
	f.CollapseSpaces = boolFlag("collapse-spaces")
	f.Underscore = boolFlag("underscore")
	f.CamelCase = boolFlag("camelcase")
	f.RemoveNonASCII = boolFlag("remove-non-ascii")
	f.Lowercase = boolFlag("lowercase")
	f.SafeCharsOnly = boolFlag("safe-chars-only")
	f.ReplaceUnsafe = boolFlag("replace-unsafe")
	f.ProcessDirs = boolFlag("process-dirs")
	f.DryRun = boolFlag("dry-run")

	if flags.Changed("verbose") {
		v, _ := flags.GetCount("verbose")
		if v > config.MaxVerbosity {
			v = config.MaxVerbosity
		}
		f.Verbosity = &v
	}
	if flags.Changed("extensions") {
		exts, _ := flags.GetStringSlice("extensions")
		if exts == nil {
			exts = []string{}
		}
		f.Extensions = exts
	}
	f.LogLevel = stringFlag("log-level")
	f.LogDir = stringFlag("log-dir")

	return f
}

// expandPath resolves a leading ~ and cleans the path.
func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

// isWithin reports whether path is root or lies below it.
func isWithin(root, path string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// multiLogger implements walker.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []walker.Logger
}

// Log forwards to all loggers
func (ml *multiLogger) Log(level logger.Level, message string) {
	for _, l := range ml.loggers {
		l.Log(level, message)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(summary *models.Summary) {
	for _, l := range ml.loggers {
		l.LogSummary(summary)
	}
}
