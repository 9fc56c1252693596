// Package models defines the shared result types produced by a batch run.
package models

import "time"

// Relocation status constants
const (
	StatusRelocated = "RELOCATED" // Copied, verified, and removed from intake
	StatusFailed    = "FAILED"    // Not fully relocated; Reason says why
)

// Failure reason constants
const (
	// ReasonInvalidName marks names that fail the intake naming convention.
	// The source file is never touched.
	ReasonInvalidName = "invalid-name"

	// ReasonCopyFailed marks files whose copy did not produce a verified
	// destination. The source stays in the intake directory for retry.
	ReasonCopyFailed = "copy-failed"

	// ReasonCleanupFailed marks files that were copied and verified but
	// whose source could not be removed. The destination copy is valid;
	// the leftover source needs operator attention.
	ReasonCleanupFailed = "cleanup-failed"
)

// FileOutcome is the result of processing a single intake entry.
type FileOutcome struct {
	Name        string // Raw intake file name
	Status      string // StatusRelocated or StatusFailed
	Reason      string // Failure reason constant, empty on success
	Detail      string // Human-readable failure detail
	Destination string // Store path of the copy, set whenever a verified copy exists
	Size        int64  // Bytes in the verified copy
}

// Relocated reports whether the file was fully relocated.
func (o FileOutcome) Relocated() bool {
	return o.Status == StatusRelocated
}

// BatchReport aggregates the outcomes of one intake pass.
type BatchReport struct {
	BatchID   string        // Unique identifier for this run
	IntakeDir string        // Intake directory the batch was read from
	StoreDir  string        // Store root files were relocated into
	StartedAt time.Time     // When the batch started
	Duration  time.Duration // Total batch time
	Total     int           // Number of files processed
	Succeeded int           // Number of relocated files
	Outcomes  []FileOutcome // Per-file outcomes in input order
	Skipped   []string      // Non-file intake entries that were not processed
}

// Failed returns the number of files that were not relocated.
func (r *BatchReport) Failed() int {
	failed := 0
	for _, outcome := range r.Outcomes {
		if !outcome.Relocated() {
			failed++
		}
	}
	return failed
}

// Failures returns the failed outcomes, preserving input order.
func (r *BatchReport) Failures() []FileOutcome {
	var failures []FileOutcome
	for _, outcome := range r.Outcomes {
		if !outcome.Relocated() {
			failures = append(failures, outcome)
		}
	}
	return failures
}

// FailedNames returns the raw names of the failed files, preserving input
// order.
func (r *BatchReport) FailedNames() []string {
	var names []string
	for _, outcome := range r.Outcomes {
		if !outcome.Relocated() {
			names = append(names, outcome.Name)
		}
	}
	return names
}
