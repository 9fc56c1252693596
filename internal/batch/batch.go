// Package batch drives the intake pipeline over a whole directory and
// aggregates the per-file outcomes into a report.
package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/curator/internal/fileutil"
	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/store"
)

// Relocator performs the copy-verify-delete protocol for a single intake
// entry. A non-nil error is fatal for the whole batch.
type Relocator interface {
	Relocate(intakeRoot, rawName, storeRoot string) (models.FileOutcome, error)
}

// Logger receives progress events while a batch runs.
type Logger interface {
	LogBatchStart(report *models.BatchReport)
	LogFileOutcome(outcome models.FileOutcome) error
	LogSummary(report *models.BatchReport)
}

// Ingestor runs batches of intake files through a Relocator.
type Ingestor struct {
	relocator Relocator
	log       Logger
}

// NewIngestor creates an Ingestor. A nil logger discards progress events.
func NewIngestor(relocator Relocator, log Logger) *Ingestor {
	if log == nil {
		log = noopLogger{}
	}
	return &Ingestor{relocator: relocator, log: log}
}

// Run processes every direct entry of intakeRoot exactly once, in listing
// order and strictly one at a time: a file is fully validated, relocated
// and verified before the next one is considered.
//
// Per-file failures are recorded in the report and never stop the batch.
// Only the fatal configuration case (a missing root) returns an error, and
// then the report is nil: an aborted batch makes no partial-state claims.
func (in *Ingestor) Run(intakeRoot, storeRoot string) (*models.BatchReport, error) {
	// Checked up front so an empty intake directory still surfaces a bad
	// configuration.
	if err := store.CheckRoots(intakeRoot, storeRoot); err != nil {
		return nil, err
	}

	listing, err := fileutil.ListIntake(intakeRoot)
	if err != nil {
		return nil, fmt.Errorf("enumerate intake: %w", err)
	}

	report := &models.BatchReport{
		BatchID:   uuid.New().String(),
		IntakeDir: intakeRoot,
		StoreDir:  storeRoot,
		StartedAt: time.Now(),
		Total:     len(listing.Files),
		Skipped:   listing.Skipped,
	}

	in.log.LogBatchStart(report)

	for _, name := range listing.Files {
		outcome, err := in.relocator.Relocate(intakeRoot, name, storeRoot)
		if err != nil {
			return nil, fmt.Errorf("relocate %s: %w", name, err)
		}

		if outcome.Relocated() {
			report.Succeeded++
		}
		report.Outcomes = append(report.Outcomes, outcome)

		// Logging trouble never affects the batch.
		_ = in.log.LogFileOutcome(outcome)
	}

	report.Duration = time.Since(report.StartedAt)
	in.log.LogSummary(report)

	return report, nil
}

// noopLogger discards all progress events.
type noopLogger struct{}

func (noopLogger) LogBatchStart(*models.BatchReport)       {}
func (noopLogger) LogFileOutcome(models.FileOutcome) error { return nil }
func (noopLogger) LogSummary(*models.BatchReport)          {}
