// Package display provides terminal UI utilities for warnings and batch
// summaries.
//
// This package centralizes the user-facing output formatting for the
// curator CLI. Leveled progress logging lives in the logger package; what
// lives here is the block output an operator reads after a run.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Unprocessable intake entries",
//	    Message:    "intake/ contains entries that are not regular files",
//	    Entries:    []string{"archive"},
//	    Suggestion: "Move their contents directly into the intake directory.",
//	}
//	warning.Display(os.Stderr)
//
// Or use the convenience factory for skipped intake entries:
//
//	if len(report.Skipped) > 0 {
//	    display.WarnSkippedEntries(intakeDir, report.Skipped).Display(os.Stdout)
//	}
//
// # Batch Summaries
//
// RenderBatchReport writes the end-of-run block: tallies, failures with
// reasons, and where a cleanup failure left its safe copy.
//
// All functions accept io.Writer interfaces for testability. Color is
// handled by the fatih/color package, which disables itself on non-TTY
// writers and when NO_COLOR is set.
package display
