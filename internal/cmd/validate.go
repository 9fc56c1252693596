package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/curator/internal/fileutil"
	"github.com/harrison/curator/internal/naming"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <name-or-directory>...",
		Short: "Check file names against the ingestion naming rules",
		Long: `Validate checks names against the <client>.<DDMMYY>.<DDMMYY>.<ext>
convention without touching any file.

Each argument may be a bare file name, a path to a file, or a directory.
Directories are expanded to the names a run would see. For every valid name
the store path it would relocate to is shown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateNames(args, cmd.OutOrStdout())
		},
	}

	return cmd
}

func validateNames(args []string, output io.Writer) error {
	var names []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			listing, err := fileutil.ListIntake(arg)
			if err != nil {
				return fmt.Errorf("enumerate %s: %w", arg, err)
			}
			names = append(names, listing.Files...)
		case err == nil:
			names = append(names, filepath.Base(arg))
		default:
			// Not on disk, treat the argument as a bare name.
			names = append(names, arg)
		}
	}

	if len(names) == 0 {
		fmt.Fprintln(output, "Nothing to validate.")
		return nil
	}

	invalid := 0
	for _, name := range names {
		fn, err := naming.Parse(name)
		if err != nil {
			invalid++
			fmt.Fprintf(output, "✗ %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(output, "\x1b[32m✓\x1b[0m %s -> %s\n", name, filepath.Join(fn.StartToken(), fn.Extension, fn.Client))
	}

	if invalid > 0 {
		fmt.Fprintf(output, "\nFound %d invalid name(s)!\n", invalid)
		return fmt.Errorf("validation failed with %d invalid name(s)", invalid)
	}

	fmt.Fprintf(output, "\n✓ All %d name(s) valid!\n", len(names))
	return nil
}
