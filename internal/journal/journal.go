// Package journal persists batch reports to a local SQLite database so an
// operator can reconstruct what any past run did.
//
// The journal records runs, not files: it never indexes the store itself,
// which stays a plain directory tree.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/curator/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// BatchRecord is one journaled batch run.
type BatchRecord struct {
	ID        string
	IntakeDir string
	StoreDir  string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Succeeded int
	Failed    int
}

// FileRecord is one journaled per-file outcome.
type FileRecord struct {
	Position    int
	Name        string
	Status      string
	Reason      string
	Detail      string
	Destination string
	Size        int64
}

// Store manages the SQLite batch journal.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the journal database at dbPath, creating the file and its
// parent directory if needed.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	// busy_timeout first, so the rest of the setup waits on locks instead
	// of failing when another curator process has the database open.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize journal schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement with exponential backoff on
// "database is locked" errors from concurrent opens.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the journal database path.
func (s *Store) Path() string {
	return s.dbPath
}

// RecordBatch persists a batch report and all of its per-file outcomes in
// one transaction.
func (s *Store) RecordBatch(ctx context.Context, report *models.BatchReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, intake_dir, store_dir, started_at, duration_ms, total, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.BatchID,
		report.IntakeDir,
		report.StoreDir,
		report.StartedAt,
		report.Duration.Milliseconds(),
		report.Total,
		report.Succeeded,
		report.Failed(),
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for i, outcome := range report.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO batch_files (batch_id, position, name, status, reason, detail, destination, size_bytes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.BatchID, i, outcome.Name, outcome.Status,
			outcome.Reason, outcome.Detail, outcome.Destination, outcome.Size,
		)
		if err != nil {
			return fmt.Errorf("insert batch file %s: %w", outcome.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal transaction: %w", err)
	}
	return nil
}

// RecentBatches returns up to limit batches, newest first. A non-positive
// limit falls back to 10.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]BatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, intake_dir, store_dir, started_at, duration_ms, total, succeeded, failed
		 FROM batches
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var records []BatchRecord
	for rows.Next() {
		var rec BatchRecord
		var durationMS int64
		if err := rows.Scan(&rec.ID, &rec.IntakeDir, &rec.StoreDir, &rec.StartedAt,
			&durationMS, &rec.Total, &rec.Succeeded, &rec.Failed); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return records, nil
}

// BatchFiles returns every journaled entry of one batch in input order.
func (s *Store) BatchFiles(ctx context.Context, batchID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, name, status, reason, detail, destination, size_bytes
		 FROM batch_files
		 WHERE batch_id = ?
		 ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch files: %w", err)
	}
	defer rows.Close()
	return scanFileRecords(rows)
}

// BatchFailures returns the failed entries of one batch in input order.
func (s *Store) BatchFailures(ctx context.Context, batchID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, name, status, reason, detail, destination, size_bytes
		 FROM batch_files
		 WHERE batch_id = ? AND status = ?
		 ORDER BY position`, batchID, models.StatusFailed)
	if err != nil {
		return nil, fmt.Errorf("query batch failures: %w", err)
	}
	defer rows.Close()
	return scanFileRecords(rows)
}

func scanFileRecords(rows *sql.Rows) ([]FileRecord, error) {
	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		if err := rows.Scan(&rec.Position, &rec.Name, &rec.Status,
			&rec.Reason, &rec.Detail, &rec.Destination, &rec.Size); err != nil {
			return nil, fmt.Errorf("scan batch file: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch files: %w", err)
	}
	return records, nil
}

// Prune deletes batches older than keepDays along with their per-file rows
// and returns the number of batches removed. keepDays <= 0 disables
// pruning.
func (s *Store) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -keepDays)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin prune transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete children explicitly rather than leaning on the cascade, so a
	// journal created before foreign_keys was enabled still prunes clean.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM batch_files WHERE batch_id IN (SELECT id FROM batches WHERE started_at < ?)`,
		cutoff); err != nil {
		return 0, fmt.Errorf("prune batch files: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM batches WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune batches: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned batches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit prune transaction: %w", err)
	}
	return removed, nil
}
