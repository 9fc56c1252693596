// Package logger provides logging implementations for curator batch runs.
//
// Loggers receive batch lifecycle events (start, per-file outcome, summary)
// plus free-form leveled messages. Implementations are thread-safe and
// support console and file destinations.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/curator/internal/models"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs batch progress to a writer with timestamps and thread
// safety. All output is prefixed with [HH:MM:SS] timestamps. It supports
// log level filtering to control verbosity, and color output is enabled
// automatically when writing to a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// logLevel determines the minimum level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		mutex:       sync.Mutex{},
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogBatchStart logs the start of a batch at INFO level.
// Format: "[HH:MM:SS] Starting batch <id>: <count> files from <dir>"
func (cl *ConsoleLogger) LogBatchStart(report *models.BatchReport) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var message string
	if cl.colorOutput {
		batchID := color.New(color.Bold).Sprint(shortBatchID(report.BatchID))
		message = fmt.Sprintf("[%s] Starting batch %s: %d files from %s\n",
			ts, batchID, report.Total, report.IntakeDir)
	} else {
		message = fmt.Sprintf("[%s] Starting batch %s: %d files from %s\n",
			ts, shortBatchID(report.BatchID), report.Total, report.IntakeDir)
	}

	cl.writer.Write([]byte(message))
}

// LogFileOutcome logs one per-file outcome at DEBUG level.
// Format: "[HH:MM:SS] <name>: RELOCATED -> <destination>" on success,
// "[HH:MM:SS] <name>: FAILED (<reason>): <detail>" on failure.
// Returns nil for successful logging, or an error if the write failed.
func (cl *ConsoleLogger) LogFileOutcome(outcome models.FileOutcome) error {
	if cl.writer == nil {
		return nil
	}

	if !cl.shouldLog("debug") {
		return nil
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var message string
	if outcome.Relocated() {
		status := "RELOCATED"
		if cl.colorOutput {
			status = color.New(color.FgGreen).Sprint(status)
		}
		message = fmt.Sprintf("[%s] %s: %s -> %s\n", ts, outcome.Name, status, outcome.Destination)
	} else {
		status := fmt.Sprintf("FAILED (%s)", outcome.Reason)
		if cl.colorOutput {
			status = color.New(color.FgRed).Sprint(status)
		}
		message = fmt.Sprintf("[%s] %s: %s: %s\n", ts, outcome.Name, status, outcome.Detail)
	}

	_, err := cl.writer.Write([]byte(message))
	return err
}

// LogSummary logs the batch summary with relocation statistics at INFO
// level, including the failed files when there are any.
func (cl *ConsoleLogger) LogSummary(report *models.BatchReport) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	durationStr := formatDuration(report.Duration)
	failed := report.Failed()

	var output string

	if cl.colorOutput {
		header := color.New(color.Bold).Sprint("=== Batch Summary ===")
		output = fmt.Sprintf("[%s] %s\n", ts, header)
		output += fmt.Sprintf("[%s] Total files: %d\n", ts, report.Total)

		relocatedText := color.New(color.FgGreen).Sprintf("Relocated: %d", report.Succeeded)
		output += fmt.Sprintf("[%s] %s\n", ts, relocatedText)

		if failed > 0 {
			failedText := color.New(color.FgRed).Sprintf("Failed: %d", failed)
			output += fmt.Sprintf("[%s] %s\n", ts, failedText)
		} else {
			output += fmt.Sprintf("[%s] Failed: %d\n", ts, failed)
		}

		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)

		if failed > 0 {
			failedHeader := color.New(color.FgRed).Sprint("Failed files:")
			output += fmt.Sprintf("[%s] %s\n", ts, failedHeader)
			for _, outcome := range report.Failures() {
				name := color.New(color.FgRed).Sprint(outcome.Name)
				output += fmt.Sprintf("[%s]   - %s (%s)\n", ts, name, outcome.Reason)
			}
		}
	} else {
		output = fmt.Sprintf("[%s] === Batch Summary ===\n", ts)
		output += fmt.Sprintf("[%s] Total files: %d\n", ts, report.Total)
		output += fmt.Sprintf("[%s] Relocated: %d\n", ts, report.Succeeded)
		output += fmt.Sprintf("[%s] Failed: %d\n", ts, failed)
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)

		if failed > 0 {
			output += fmt.Sprintf("[%s] Failed files:\n", ts)
			for _, outcome := range report.Failures() {
				output += fmt.Sprintf("[%s]   - %s (%s)\n", ts, outcome.Name, outcome.Reason)
			}
		}
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// shortBatchID shortens a UUID to its first group for log lines.
func shortBatchID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger discards all batch events. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogBatchStart is a no-op implementation.
func (n *NoOpLogger) LogBatchStart(report *models.BatchReport) {
}

// LogFileOutcome is a no-op implementation.
func (n *NoOpLogger) LogFileOutcome(outcome models.FileOutcome) error {
	return nil
}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(report *models.BatchReport) {
}
