package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/curator/internal/models"
)

// FileLogger logs batch events to files in the .curator/logs/ directory.
// It creates a timestamped per-run log file and maintains a latest.log
// symlink pointing to the most recent run. It is thread-safe and supports
// log level filtering, except that per-file outcomes are always written:
// the run log doubles as the audit trail of what a batch did.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to .curator/logs/.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
// Uses default log level "info".
func NewFileLogger() (*FileLogger, error) {
	logDir := filepath.Join(".curator", "logs")
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDir creates a new FileLogger with a custom log
// directory. Uses default log level "info".
func NewFileLoggerWithDir(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log
// directory and log level.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Timestamped filename: run-YYYYMMDD-HHMMSS.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Create/update latest.log symlink
	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
		mu:       sync.Mutex{},
	}

	logger.writeRunLog("=== Curator Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the current run log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if
// filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogBatchStart logs the start of a batch at INFO level.
func (fl *FileLogger) LogBatchStart(report *models.BatchReport) {
	if !fl.shouldLog("info") {
		return
	}

	fileLabel := "file"
	if report.Total != 1 {
		fileLabel = "files"
	}

	message := fmt.Sprintf(
		"[%s] Starting batch %s: %d %s from %s -> %s\n",
		time.Now().Format("15:04:05"),
		report.BatchID,
		report.Total,
		fileLabel,
		report.IntakeDir,
		report.StoreDir,
	)

	fl.writeRunLog(message)
}

// LogFileOutcome logs one per-file outcome. Outcomes are written at every
// log level so the run log stays a complete account of the batch.
// Returns nil for successful logging, or an error if the write failed.
func (fl *FileLogger) LogFileOutcome(outcome models.FileOutcome) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}

	ts := time.Now().Format("15:04:05")
	var line string
	if outcome.Relocated() {
		line = fmt.Sprintf("[%s] %s: %s -> %s (%d bytes)\n",
			ts, outcome.Name, outcome.Status, outcome.Destination, outcome.Size)
	} else {
		line = fmt.Sprintf("[%s] %s: %s (%s): %s\n",
			ts, outcome.Name, outcome.Status, outcome.Reason, outcome.Detail)
	}

	if _, err := fl.runLog.WriteString(line); err != nil {
		return fmt.Errorf("failed to write file outcome: %w", err)
	}
	fl.runLog.Sync()

	return nil
}

// LogSummary logs the batch summary with final statistics at INFO level.
func (fl *FileLogger) LogSummary(report *models.BatchReport) {
	if !fl.shouldLog("info") {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	failed := report.Failed()

	status := "SUCCESS"
	if failed > 0 {
		if report.Succeeded == 0 {
			status = "FAILED"
		} else {
			status = "PARTIAL"
		}
	}

	message := fmt.Sprintf(
		"\n[%s] === BATCH SUMMARY ===\n"+
			"[%s] Batch ID:     %s\n"+
			"[%s] Total files:  %d\n"+
			"[%s] Relocated:    %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] Total time:   %.1fs\n"+
			"[%s] Status:       %s (%d/%d files relocated)\n"+
			"[%s] Completed at: %s\n",
		timestamp,
		timestamp,
		report.BatchID,
		timestamp,
		report.Total,
		timestamp,
		report.Succeeded,
		timestamp,
		failed,
		timestamp,
		report.Duration.Seconds(),
		timestamp,
		status,
		report.Succeeded,
		report.Total,
		timestamp,
		time.Now().Format(time.RFC3339),
	)

	if failed > 0 {
		for _, outcome := range report.Failures() {
			message += fmt.Sprintf("[%s]   - %s (%s): %s\n",
				timestamp, outcome.Name, outcome.Reason, outcome.Detail)
		}
	}

	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time tailing
		fl.runLog.Sync()
	}
}
