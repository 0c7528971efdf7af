package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harrison/trname/internal/transform"
	"gopkg.in/yaml.v3"
)

// MaxVerbosity is the highest accepted verbosity level (-vv)
const MaxVerbosity = 2

// Config represents trname run options.
// It is built once per run and treated as read-only afterwards.
type Config struct {
	// Asciify maps Turkish letters to ASCII (on unless --no-asciify)
	Asciify bool `yaml:"asciify"`

	// CollapseSpaces collapses whitespace runs into one space
	CollapseSpaces bool `yaml:"collapse_spaces"`

	// Underscore replaces spaces with underscores
	Underscore bool `yaml:"underscore"`

	// CamelCase joins words as camelCase
	CamelCase bool `yaml:"camel_case"`

	// RemoveNonASCII drops characters outside ASCII
	RemoveNonASCII bool `yaml:"remove_non_ascii"`

	// Lowercase lowercases the whole name, extension included
	Lowercase bool `yaml:"lowercase"`

	// SafeCharsOnly restricts names to [a-zA-Z0-9._-]
	SafeCharsOnly bool `yaml:"safe_chars_only"`

	// ReplaceUnsafe replaces unsafe characters with "_" instead of deleting them
	ReplaceUnsafe bool `yaml:"replace_unsafe"`

	// ProcessDirs renames directories too
	ProcessDirs bool `yaml:"process_dirs"`

	// DryRun reports renames without performing them
	DryRun bool `yaml:"dry_run"`

	// Verbosity is the -v count (0-2)
	Verbosity int `yaml:"verbosity"`

	// Extensions restricts files to these suffixes (case-insensitive, empty = all)
	Extensions []string `yaml:"extensions"`

	// LogLevel overrides the level derived from Verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir, when set, also writes each run's messages to a file in this directory
	LogDir string `yaml:"log_dir"`
}

// FlagOverrides holds CLI flag values that were explicitly set.
// Nil fields leave the configuration untouched.
type FlagOverrides struct {
	Asciify        *bool
	CollapseSpaces *bool
	Underscore     *bool
	CamelCase      *bool
	RemoveNonASCII *bool
	Lowercase      *bool
	SafeCharsOnly  *bool
	ReplaceUnsafe  *bool
	ProcessDirs    *bool
	DryRun         *bool
	Verbosity      *int
	Extensions     []string
	LogLevel       *string
	LogDir         *string
}

// DefaultConfig returns a Config with default values: only asciify enabled
func DefaultConfig() *Config {
	return &Config{
		Asciify:   true,
		Verbosity: 0,
	}
}

// LoadConfig loads an option profile from the specified YAML file.
// Keys absent from the file keep their default values.
// A missing or malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell keys that are present apart from zero values
	type yamlConfig struct {
		Asciify        *bool    `yaml:"asciify"`
		CollapseSpaces *bool    `yaml:"collapse_spaces"`
		Underscore     *bool    `yaml:"underscore"`
		CamelCase      *bool    `yaml:"camel_case"`
		RemoveNonASCII *bool    `yaml:"remove_non_ascii"`
		Lowercase      *bool    `yaml:"lowercase"`
		SafeCharsOnly  *bool    `yaml:"safe_chars_only"`
		ReplaceUnsafe  *bool    `yaml:"replace_unsafe"`
		ProcessDirs    *bool    `yaml:"process_dirs"`
		DryRun         *bool    `yaml:"dry_run"`
		Verbosity      *int     `yaml:"verbosity"`
		Extensions     []string `yaml:"extensions"`
		LogLevel       *string  `yaml:"log_level"`
		LogDir         *string  `yaml:"log_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.MergeWithFlags(FlagOverrides(yamlCfg))
	return cfg, nil
}

// MergeWithFlags merges explicitly set values into the configuration.
// This lets CLI flags take precedence over profile settings.
func (c *Config) MergeWithFlags(f FlagOverrides) {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&c.Asciify, f.Asciify)
	setBool(&c.CollapseSpaces, f.CollapseSpaces)
	setBool(&c.Underscore, f.Underscore)
	setBool(&c.CamelCase, f.CamelCase)
	setBool(&c.RemoveNonASCII, f.RemoveNonASCII)
	setBool(&c.Lowercase, f.Lowercase)
	setBool(&c.SafeCharsOnly, f.SafeCharsOnly)
	setBool(&c.ReplaceUnsafe, f.ReplaceUnsafe)
	setBool(&c.ProcessDirs, f.ProcessDirs)
	setBool(&c.DryRun, f.DryRun)

	if f.Verbosity != nil {
		c.Verbosity = *f.Verbosity
	}
	if f.Extensions != nil {
		c.Extensions = append([]string(nil), f.Extensions...)
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
}

// NormalizeExtensions lowercases the extension list, adds a leading dot where
// missing and drops duplicates. Blank entries are kept so Validate can reject them.
func (c *Config) NormalizeExtensions() {
	if len(c.Extensions) == 0 {
		return
	}
	seen := make(map[string]bool, len(c.Extensions))
	out := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	c.Extensions = out
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > MaxVerbosity {
		return fmt.Errorf("verbosity must be between 0 and %d, got %d", MaxVerbosity, c.Verbosity)
	}

	if c.LogLevel != "" {
		validLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLevels[c.LogLevel] {
			return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
		}
	}

	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" || ext == "." {
			return fmt.Errorf("extensions must not contain empty entries")
		}
	}

	return nil
}

// EffectiveLogLevel returns LogLevel when set, otherwise the level implied by
// Verbosity: 0 = warn, 1 = info, 2 = debug.
func (c *Config) EffectiveLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	switch {
	case c.Verbosity >= 2:
		return "debug"
	case c.Verbosity == 1:
		return "info"
	default:
		return "warn"
	}
}

// MatchesExtension reports whether a file name passes the extension filter.
// An empty filter matches everything.
func (c *Config) MatchesExtension(name string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range c.Extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// Options projects the configuration onto the rename pipeline switches.
func (c *Config) Options() transform.Options {
	return transform.Options{
		Asciify:        c.Asciify,
		CollapseSpaces: c.CollapseSpaces,
		Underscore:     c.Underscore,
		CamelCase:      c.CamelCase,
		RemoveNonASCII: c.RemoveNonASCII,
		Lowercase:      c.Lowercase,
		SafeCharsOnly:  c.SafeCharsOnly,
		ReplaceUnsafe:  c.ReplaceUnsafe,
	}
}
