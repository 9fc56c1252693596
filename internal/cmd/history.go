package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/curator/internal/display"
	"github.com/harrison/curator/internal/journal"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently journaled batches",
		Long: `History lists the most recent batches recorded in the journal, newest
first. With --failures each batch is followed by the files that failed in
it and why.`,
		Args: cobra.NoArgs,
		RunE: historyCommand,
	}

	cmd.Flags().String("config", "", "path to config file (default .curator/config.yaml)")
	cmd.Flags().Int("limit", 10, "maximum number of batches to show")
	cmd.Flags().Bool("failures", false, "list the failed files of each batch")

	return cmd
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !cfg.Journal.Enabled {
		return fmt.Errorf("journaling is disabled; enable it in the config or pass --config")
	}

	output := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.Journal.DBPath); os.IsNotExist(err) {
		fmt.Fprintln(output, "No batches journaled yet.")
		return nil
	}

	js, err := journal.NewStore(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer js.Close()

	ctx := context.Background()
	limit, _ := cmd.Flags().GetInt("limit")
	records, err := js.RecentBatches(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(output, "No batches journaled yet.")
		return nil
	}

	showFailures, _ := cmd.Flags().GetBool("failures")

	header := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed)

	header.Fprintf(output, "=== Batch History ===\n")
	for _, rec := range records {
		fmt.Fprintf(output, "\n%s  started %s\n", display.ShortID(rec.ID), rec.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(output, "  %s -> %s\n", rec.IntakeDir, rec.StoreDir)

		failed := fmt.Sprintf("%d failed", rec.Failed)
		if rec.Failed > 0 {
			failed = red.Sprintf("%d failed", rec.Failed)
		}
		fmt.Fprintf(output, "  %d processed, %d relocated, %s in %s\n",
			rec.Total, rec.Succeeded, failed, rec.Duration.Round(time.Millisecond))

		if showFailures && rec.Failed > 0 {
			failures, err := js.BatchFailures(ctx, rec.ID)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}
			for _, f := range failures {
				fmt.Fprintf(output, "    ✗ %s (%s)\n", f.Name, f.Reason)
			}
		}
	}

	return nil
}
