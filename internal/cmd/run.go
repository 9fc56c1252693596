package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/harrison/curator/internal/batch"
	"github.com/harrison/curator/internal/config"
	"github.com/harrison/curator/internal/display"
	"github.com/harrison/curator/internal/filelock"
	"github.com/harrison/curator/internal/fileutil"
	"github.com/harrison/curator/internal/journal"
	"github.com/harrison/curator/internal/logger"
	"github.com/harrison/curator/internal/models"
	"github.com/harrison/curator/internal/naming"
	"github.com/harrison/curator/internal/relocate"
	"github.com/harrison/curator/internal/store"
	"github.com/spf13/cobra"
)

// lockFileName is created inside the intake directory for the duration of a
// run. ListIntake ignores dot entries, so the lock never shows up as a
// skipped file.
const lockFileName = ".curator.lock"

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest one batch from the intake directory",
		Long: `Run processes every regular file in the intake directory exactly once.

Valid files are copied into the store, verified, and removed from intake.
Invalid or failing files are left in place and reported. The command exits
non-zero when any file in the batch failed.`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	cmd.Flags().String("config", "", "path to config file (default .curator/config.yaml)")
	cmd.Flags().String("intake", "", "intake directory to ingest from")
	cmd.Flags().String("store", "", "store directory to relocate into")
	cmd.Flags().String("log-dir", "", "directory for run logs")
	cmd.Flags().String("verify", "", "copy verification mode: size or digest")
	cmd.Flags().Bool("dry-run", false, "report what would be relocated without touching any file")
	cmd.Flags().Bool("no-lock", false, "skip intake directory locking")
	cmd.Flags().Bool("no-journal", false, "skip journaling this batch")
	cmd.Flags().BoolP("verbose", "v", false, "enable verbose logging")

	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flags override file configuration.
	var lockPtr, journalPtr *bool
	if noLock, _ := cmd.Flags().GetBool("no-lock"); noLock {
		disabled := false
		lockPtr = &disabled
	}
	if noJournal, _ := cmd.Flags().GetBool("no-journal"); noJournal {
		disabled := false
		journalPtr = &disabled
	}
	cfg.MergeWithFlags(
		stringFlagPtr(cmd, "intake"),
		stringFlagPtr(cmd, "store"),
		stringFlagPtr(cmd, "log-dir"),
		stringFlagPtr(cmd, "verify"),
		lockPtr,
		journalPtr,
	)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}

	// Both roots must exist before anything else happens. A missing root is
	// an operator mistake, not a file failure.
	if err := store.CheckRoots(cfg.IntakeDir, cfg.StoreDir); err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return dryRunBatch(cmd, cfg)
	}

	if cfg.Lock {
		lock := filelock.New(filepath.Join(cfg.IntakeDir, lockFileName))
		acquired, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to lock intake directory: %w", err)
		}
		if !acquired {
			return fmt.Errorf("intake directory %s is locked by another curator run", cfg.IntakeDir)
		}
		defer func() { _ = lock.Unlock() }()
	}

	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), logLevel)
	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, logLevel)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer fileLog.Close()

	batchLog := &multiLogger{loggers: []batch.Logger{consoleLog, fileLog}}

	relocator, err := relocate.NewWithVerify(relocate.VerifyMode(cfg.Verify))
	if err != nil {
		return err
	}

	ingestor := batch.NewIngestor(relocator, batchLog)
	report, err := ingestor.Run(cfg.IntakeDir, cfg.StoreDir)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	if len(report.Skipped) > 0 {
		display.WarnSkippedEntries(cfg.IntakeDir, report.Skipped).Display(cmd.OutOrStdout())
	}

	if cfg.Journal.Enabled {
		if err := journalReport(cfg, report); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to journal batch: %v\n", err)
		}
	}

	display.RenderBatchReport(cmd.OutOrStdout(), report)
	fmt.Fprintf(cmd.OutOrStdout(), "Logs written to: %s\n", fileLog.RunFile())

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// dryRunBatch previews a batch without moving anything. It reuses the same
// listing and naming rules as a real run, so its verdicts match what run
// would do.
func dryRunBatch(cmd *cobra.Command, cfg *config.Config) error {
	output := cmd.OutOrStdout()

	listing, err := fileutil.ListIntake(cfg.IntakeDir)
	if err != nil {
		return fmt.Errorf("enumerate intake: %w", err)
	}

	if len(listing.Skipped) > 0 {
		display.WarnSkippedEntries(cfg.IntakeDir, listing.Skipped).Display(output)
	}

	if len(listing.Files) == 0 {
		fmt.Fprintln(output, "Intake directory is empty. Nothing to do.")
		return nil
	}

	valid := 0
	for _, name := range listing.Files {
		fn, err := naming.Parse(name)
		if err != nil {
			fmt.Fprintf(output, "✗ %s: %v\n", name, err)
			continue
		}
		valid++
		fmt.Fprintf(output, "\x1b[32m✓\x1b[0m %s -> %s\n", name, store.DestinationPath(cfg.StoreDir, fn))
	}

	fmt.Fprintf(output, "\nDry-run complete: %d of %d would relocate. No files were moved.\n", valid, len(listing.Files))
	return nil
}

// journalReport records the batch in the SQLite journal and prunes entries
// older than the retention window.
func journalReport(cfg *config.Config, report *models.BatchReport) error {
	js, err := journal.NewStore(cfg.Journal.DBPath)
	if err != nil {
		return err
	}
	defer js.Close()

	ctx := context.Background()
	if err := js.RecordBatch(ctx, report); err != nil {
		return err
	}
	if _, err := js.Prune(ctx, cfg.Journal.KeepDays); err != nil {
		return err
	}
	return nil
}

// multiLogger fans batch events out to the console and the run log.
type multiLogger struct {
	loggers []batch.Logger
}

func (m *multiLogger) LogBatchStart(report *models.BatchReport) {
	for _, l := range m.loggers {
		l.LogBatchStart(report)
	}
}

func (m *multiLogger) LogFileOutcome(outcome models.FileOutcome) error {
	var lastErr error
	for _, l := range m.loggers {
		if err := l.LogFileOutcome(outcome); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (m *multiLogger) LogSummary(report *models.BatchReport) {
	for _, l := range m.loggers {
		l.LogSummary(report)
	}
}
