package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for trname
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trname <target_dir>",
		Short: "Rename files with Turkish characters to portable ASCII names",
		Long: `trname walks a directory tree bottom-up and renames files (and optionally
directories) so their names are safe on any filesystem.

Turkish letters are transliterated to ASCII by default. Further clean-up
steps are opt-in and always run in a fixed order: asciify, collapse spaces,
safe characters, remove non-ASCII, underscore, camelCase, lowercase.

An entry whose new name is already taken is left untouched and reported as
a collision. Nothing is ever overwritten.

Options can also be read from a YAML profile with --config. Flags given on
the command line override the profile.

Examples:
  # Preview what would change
  trname --dry-run -v ~/Music

  # Portable lowercase names with underscores, directories included
  trname -s -u -l -d ./photos

  # Only touch JPEG and PNG files
  trname -e .jpg,.png ./photos
  trname -e .jpg -e .png ./photos

  # Strict names: only [a-zA-Z0-9._-], unsafe characters become "_"
  trname -S -U ./downloads`,
		Args:    cobra.ExactArgs(1),
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE:         runCommand,
	}

	flags := cmd.Flags()
	flags.BoolP("dry-run", "D", false, "Show what would be renamed without touching the filesystem")
	flags.CountP("verbose", "v", "Increase verbosity (-v shows renames, -vv shows unchanged entries)")
	flags.BoolP("collapse-spaces", "s", false, "Collapse runs of whitespace into a single space")
	flags.BoolP("underscore", "u", false, "Replace spaces with underscores")
	flags.BoolP("no-asciify", "n", false, "Do not transliterate Turkish characters")
	flags.BoolP("remove-non-ascii", "a", false, "Remove all non-ASCII characters")
	flags.BoolP("lowercase", "l", false, "Lowercase the whole name, extension included")
	flags.BoolP("process-dirs", "d", false, "Rename directories as well as files")
	flags.BoolP("camelcase", "c", false, "Join words as camelCase")
	flags.BoolP("safe-chars-only", "S", false, "Keep only [a-zA-Z0-9._-] characters")
	flags.BoolP("replace-unsafe", "U", false, "With --safe-chars-only, replace unsafe characters with \"_\" instead of removing them")
	flags.StringSliceP("extensions", "e", nil, "Only process files with these extensions (e.g. .jpg,.png)")
	flags.String("config", "", "Path to a YAML option profile")
	flags.String("log-level", "", "Minimum log level (debug, info, warn, error); overrides -v")
	flags.String("log-dir", "", "Also write a run log to this directory (must be outside the target)")

	return cmd
}
