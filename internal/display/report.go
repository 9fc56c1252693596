package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/curator/internal/models"
)

// RenderBatchReport writes the operator-facing end-of-run summary for one
// batch: the tallies, every failure with its reason, and the duration.
func RenderBatchReport(out io.Writer, report *models.BatchReport) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintf(out, "\n=== Batch %s ===\n", ShortID(report.BatchID))
	fmt.Fprintf(out, "Intake:    %s\n", report.IntakeDir)
	fmt.Fprintf(out, "Store:     %s\n", report.StoreDir)
	fmt.Fprintf(out, "Processed: %d\n", report.Total)

	failed := report.Failed()

	if report.Total > 0 {
		green.Fprintf(out, "Relocated: %d\n", report.Succeeded)
		if failed > 0 {
			red.Fprintf(out, "Failed:    %d\n", failed)
		} else {
			fmt.Fprintf(out, "Failed:    %d\n", failed)
		}
	}

	fmt.Fprintf(out, "Duration:  %s\n", report.Duration.Round(time.Millisecond))

	if len(report.Skipped) > 0 {
		gray.Fprintf(out, "Skipped:   %s (not regular files)\n", strings.Join(report.Skipped, ", "))
	}

	switch {
	case report.Total == 0:
		fmt.Fprintln(out, "\nIntake directory is empty. Nothing to do.")
	case failed == 0:
		green.Fprintf(out, "\n✓ All %d file(s) relocated\n", report.Succeeded)
	default:
		red.Fprintf(out, "\n✗ %d file(s) failed:\n", failed)
		for _, outcome := range report.Failures() {
			red.Fprintf(out, "  ✗ %s (%s)\n", outcome.Name, outcome.Reason)
			if outcome.Detail != "" {
				gray.Fprintf(out, "      %s\n", outcome.Detail)
			}
			if outcome.Reason == models.ReasonCleanupFailed && outcome.Destination != "" {
				gray.Fprintf(out, "      copy is safe at %s\n", outcome.Destination)
			}
		}
	}
}

// ShortID shortens a UUID to its first group for display.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
