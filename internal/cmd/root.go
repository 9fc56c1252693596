package cmd

import (
	"fmt"

	"github.com/harrison/curator/internal/config"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for curator
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curator",
		Short: "Client file ingestion pipeline",
		Long: `Curator moves client delivery files from an intake directory into a
date-and-type keyed file store.

Each intake file is validated against the <client>.<DDMMYY>.<DDMMYY>.<ext>
naming convention, copied to <store>/<start-date>/<type>/<client>, verified,
and only then removed from the intake directory. Files that fail stay in
intake and are reported; one bad file never stops a batch.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewSetupCommand())
	cmd.AddCommand(NewResetCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// loadConfig loads the configuration honoring the command's --config flag.
// Without the flag it falls back to .curator/config.yaml in the working
// directory, and to defaults when that file does not exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// stringFlagPtr returns a pointer to the flag value if the user set it,
// nil otherwise. Used to merge flags over the configuration.
func stringFlagPtr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}
