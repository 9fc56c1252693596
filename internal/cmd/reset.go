package cmd

import (
	"fmt"

	"github.com/harrison/curator/internal/store"
	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Empty the store directory",
		Long: `Reset removes everything inside the store directory while keeping the
directory itself. Intake and the journal are not touched.

This deletes relocated files permanently, so it requires --force.`,
		Args: cobra.NoArgs,
		RunE: resetCommand,
	}

	cmd.Flags().String("config", "", "path to config file (default .curator/config.yaml)")
	cmd.Flags().String("store", "", "store directory to empty")
	cmd.Flags().Bool("force", false, "confirm emptying the store")

	return cmd
}

func resetCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(nil, stringFlagPtr(cmd, "store"), nil, nil, nil, nil)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		return fmt.Errorf("refusing to empty %s without --force", cfg.StoreDir)
	}

	removed, err := store.Reset(cfg.StoreDir)
	if err != nil {
		return err
	}

	label := "entries"
	if removed == 1 {
		label = "entry"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32m✓\x1b[0m Store emptied: removed %d %s from %s\n", removed, label, cfg.StoreDir)
	return nil
}
