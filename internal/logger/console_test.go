package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/harrison/curator/internal/models"
)

func sampleReport() *models.BatchReport {
	return &models.BatchReport{
		BatchID:   "4f8b9c1a-0000-0000-0000-000000000000",
		IntakeDir: "/var/intake",
		StoreDir:  "/var/store",
		Duration:  2 * time.Second,
		Total:     3,
		Succeeded: 2,
		Outcomes: []models.FileOutcome{
			{Name: "Acme.010125.051225.csv", Status: models.StatusRelocated,
				Destination: "/var/store/010125/csv/Acme", Size: 42},
			{Name: "bad.txt", Status: models.StatusFailed,
				Reason: models.ReasonInvalidName, Detail: "invalid file name"},
			{Name: "Globex.150625.150625.xml", Status: models.StatusRelocated,
				Destination: "/var/store/150625/xml/Globex", Size: 7},
		},
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")

	// None of these should panic.
	cl.LogInfo("message")
	cl.LogBatchStart(sampleReport())
	cl.LogSummary(sampleReport())
	if err := cl.LogFileOutcome(models.FileOutcome{}); err != nil {
		t.Errorf("LogFileOutcome with nil writer returned error: %v", err)
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "warn")

	cl.LogDebug("debug message")
	cl.LogInfo("info message")
	cl.LogWarn("warn message")
	cl.LogError("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("levels below warn should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("warn and error should pass the filter, got: %s", output)
	}
}

func TestConsoleLoggerDefaultsToInfo(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "bogus-level")

	cl.LogDebug("hidden")
	cl.LogInfo("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug should be filtered at the default level, got: %s", output)
	}
	if !strings.Contains(output, "visible") {
		t.Errorf("info should be visible at the default level, got: %s", output)
	}
}

func TestConsoleLoggerBatchStart(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "info")

	cl.LogBatchStart(sampleReport())

	output := buf.String()
	if !strings.Contains(output, "Starting batch 4f8b9c1a") {
		t.Errorf("batch start should name the short batch id, got: %s", output)
	}
	if !strings.Contains(output, "3 files from /var/intake") {
		t.Errorf("batch start should say how many files and from where, got: %s", output)
	}
}

func TestConsoleLoggerFileOutcomeIsDebugLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "info")

	outcome := models.FileOutcome{
		Name:        "Acme.010125.051225.csv",
		Status:      models.StatusRelocated,
		Destination: "/var/store/010125/csv/Acme",
	}
	if err := cl.LogFileOutcome(outcome); err != nil {
		t.Fatalf("LogFileOutcome returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("per-file lines should be hidden at info level, got: %s", buf.String())
	}

	verbose := NewConsoleLogger(buf, "debug")
	if err := verbose.LogFileOutcome(outcome); err != nil {
		t.Fatalf("LogFileOutcome returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "RELOCATED -> /var/store/010125/csv/Acme") {
		t.Errorf("relocated line should show the destination, got: %s", buf.String())
	}
}

func TestConsoleLoggerFailedOutcome(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "debug")

	err := cl.LogFileOutcome(models.FileOutcome{
		Name:   "bad.txt",
		Status: models.StatusFailed,
		Reason: models.ReasonInvalidName,
		Detail: "invalid file name: want <client>.<DDMMYY>.<DDMMYY>.<xml|csv|json>",
	})
	if err != nil {
		t.Fatalf("LogFileOutcome returned error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "FAILED (invalid-name)") {
		t.Errorf("failed line should carry the reason, got: %s", output)
	}
	if !strings.Contains(output, "want <client>") {
		t.Errorf("failed line should carry the detail, got: %s", output)
	}
}

func TestConsoleLoggerSummary(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "info")

	cl.LogSummary(sampleReport())

	output := buf.String()
	for _, want := range []string{
		"=== Batch Summary ===",
		"Total files: 3",
		"Relocated: 2",
		"Failed: 1",
		"Duration: 2s",
		"Failed files:",
		"bad.txt (invalid-name)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("summary should contain %q, got: %s", want, output)
		}
	}
}

func TestConsoleLoggerSummaryWithoutFailures(t *testing.T) {
	buf := new(bytes.Buffer)
	cl := NewConsoleLogger(buf, "info")

	report := sampleReport()
	report.Succeeded = 3
	report.Outcomes = report.Outcomes[:1]

	cl.LogSummary(report)

	if strings.Contains(buf.String(), "Failed files:") {
		t.Errorf("a clean batch should not list failed files, got: %s", buf.String())
	}
}

func TestShortBatchID(t *testing.T) {
	if got := shortBatchID("4f8b9c1a-0000-0000-0000-000000000000"); got != "4f8b9c1a" {
		t.Errorf("shortBatchID() = %q, want %q", got, "4f8b9c1a")
	}
	if got := shortBatchID("plain"); got != "plain" {
		t.Errorf("shortBatchID() = %q, want %q", got, "plain")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{time.Hour, "1h"},
		{time.Hour + time.Minute + time.Second, "1h1m1s"},
		{500 * time.Millisecond, "0s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.duration); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"trace", "trace"},
		{"DEBUG", "debug"},
		{" Info ", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		if got := normalizeLogLevel(tt.input); got != tt.want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	n := NewNoOpLogger()

	n.LogBatchStart(sampleReport())
	n.LogSummary(sampleReport())
	if err := n.LogFileOutcome(models.FileOutcome{}); err != nil {
		t.Errorf("NoOpLogger.LogFileOutcome returned error: %v", err)
	}
}
