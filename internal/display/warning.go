package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Entries    []string // Related intake entries (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	// Start with yellow color, emoji, and title
	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	// Add message with 4-space indent if present
	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	// Add entries with proper singular/plural and indentation
	if len(w.Entries) > 0 {
		b.WriteString("    ")
		if len(w.Entries) == 1 {
			b.WriteString("Skipped entry:\n")
		} else {
			b.WriteString("Skipped entries:\n")
		}

		for i, entry := range w.Entries {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, entry))
			b.WriteString("\n")
		}
	}

	// Add suggestion with 4-space indent if present
	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	// End with reset code
	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnSkippedEntries creates a warning for intake entries that a batch did
// not process because they are not regular files.
func WarnSkippedEntries(intakeDir string, entries []string) Warning {
	return Warning{
		Title:      "Unprocessable intake entries",
		Message:    fmt.Sprintf("%s contains entries that are not regular files; batches never descend into them.", intakeDir),
		Entries:    entries,
		Suggestion: "Move their contents directly into the intake directory, or remove them.",
	}
}
