// Package history records one row per report generation in a local
// SQLite database so past runs can be inspected without re-parsing
// result artifacts.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sdet_runs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	product        TEXT NOT NULL,
	report_type    INTEGER NOT NULL,
	executed_tests INTEGER NOT NULL,
	failed_tests   INTEGER NOT NULL,
	platform_ids   TEXT NOT NULL,
	run_status     TEXT NOT NULL,
	generated_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sdet_runs_generated_at ON sdet_runs (generated_at);
`

// Run is one recorded report generation.
type Run struct {
	ID            int64
	Product       string
	ReportType    int
	ExecutedTests int
	FailedTests   int
	PlatformIDs   []string
	RunStatus     string
	GeneratedAt   time.Time
}

// Store wraps the SQLite run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history database path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %q: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun inserts one run row.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	const query = `
INSERT INTO sdet_runs (product, report_type, executed_tests, failed_tests, platform_ids, run_status, generated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.Product,
		run.ReportType,
		run.ExecutedTests,
		run.FailedTests,
		strings.Join(run.PlatformIDs, ","),
		run.RunStatus,
		run.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Runs returns up to limit runs newer than since, most recent first.
// A zero since returns all runs; a non-positive limit means no limit.
func (s *Store) Runs(ctx context.Context, since time.Time, limit int) ([]Run, error) {
	query := `
SELECT id, product, report_type, executed_tests, failed_tests, platform_ids, run_status, generated_at
FROM sdet_runs
WHERE generated_at >= ?
ORDER BY generated_at DESC, id DESC`
	args := []any{since.UTC().Format(time.RFC3339)}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run         Run
			platformIDs string
			generatedAt string
		)
		if err := rows.Scan(
			&run.ID,
			&run.Product,
			&run.ReportType,
			&run.ExecutedTests,
			&run.FailedTests,
			&platformIDs,
			&run.RunStatus,
			&generatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		if platformIDs != "" {
			run.PlatformIDs = strings.Split(platformIDs, ",")
		}
		run.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid generated_at in run %d: %w", run.ID, err)
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}

	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
