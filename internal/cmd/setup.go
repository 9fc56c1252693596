package cmd

import (
	"fmt"

	"github.com/harrison/curator/internal/fileutil"
	"github.com/harrison/curator/internal/store"
	"github.com/spf13/cobra"
)

// NewSetupCommand creates the setup command
func NewSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the intake and store directories",
		Long: `Setup creates the configured intake and store directories, including any
missing parents. Existing directories are left untouched.

With --fixtures it also seeds the intake directory with sample delivery
files, a few of them deliberately malformed, for trying curator out.`,
		Args: cobra.NoArgs,
		RunE: setupCommand,
	}

	cmd.Flags().String("config", "", "path to config file (default .curator/config.yaml)")
	cmd.Flags().String("intake", "", "intake directory to create")
	cmd.Flags().String("store", "", "store directory to create")
	cmd.Flags().Int("fixtures", 0, "number of sample files to write into intake")

	return cmd
}

func setupCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(stringFlagPtr(cmd, "intake"), stringFlagPtr(cmd, "store"), nil, nil, nil, nil)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := store.EnsureRoots(cfg.IntakeDir, cfg.StoreDir); err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	fmt.Fprintf(output, "\x1b[32m✓\x1b[0m Intake directory ready: %s\n", cfg.IntakeDir)
	fmt.Fprintf(output, "\x1b[32m✓\x1b[0m Store directory ready: %s\n", cfg.StoreDir)

	fixtures, _ := cmd.Flags().GetInt("fixtures")
	if fixtures > 0 {
		names, err := fileutil.WriteFixtures(cfg.IntakeDir, fixtures)
		if err != nil {
			return fmt.Errorf("failed to write fixtures: %w", err)
		}
		fmt.Fprintf(output, "\x1b[32m✓\x1b[0m Wrote %d sample file(s):\n", len(names))
		for _, name := range names {
			fmt.Fprintf(output, "    %s\n", name)
		}
	}

	return nil
}
