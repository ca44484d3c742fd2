// Package store persists run artifacts in a local sqlite database. Every
// table a run produces (raw inputs, processed tables, analysis results) is
// stored as one JSON payload keyed by run and table name, so a run can be
// reloaded or inspected without re-collecting anything.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// TableStore is the persistence contract the pipeline depends on.
type TableStore interface {
	BeginRun(ctx context.Context, runID string) error
	FinishRun(ctx context.Context, runID, status string) error
	SaveTable(ctx context.Context, runID, name string, rows any) error
	LoadTable(ctx context.Context, runID, name string, dest any) error
	ListTables(ctx context.Context, runID string) ([]string, error)
	Close() error
}

// Run statuses recorded in the runs table.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	status       TEXT NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	finished_at  TIMESTAMP
);
CREATE TABLE IF NOT EXISTS run_tables (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, name)
);
`

// SQLiteStore implements TableStore on a sqlite file.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// sqlite serializes writers; a single connection avoids lock contention
	// from the pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// BeginRun records a new run in the running state.
func (s *SQLiteStore) BeginRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, started_at) VALUES (?, ?, ?)`,
		runID, StatusRunning, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", runID, err)
	}
	return nil
}

// FinishRun marks a run completed or failed.
func (s *SQLiteStore) FinishRun(ctx context.Context, runID, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// SaveTable stores rows as one JSON payload under (runID, name), replacing
// any previous payload for the same key.
func (s *SQLiteStore) SaveTable(ctx context.Context, runID, name string, rows any) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO run_tables (run_id, name, payload, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (run_id, name) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		runID, name, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save table %s for run %s: %w", name, runID, err)
	}

	s.logger.DebugContext(ctx, "table saved", "run_id", runID, "table", name, "bytes", len(payload))
	return nil
}

// LoadTable decodes the payload stored under (runID, name) into dest.
func (s *SQLiteStore) LoadTable(ctx context.Context, runID, name string, dest any) error {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM run_tables WHERE run_id = ? AND name = ?`,
		runID, name).Scan(&payload)
	if err == sql.ErrNoRows {
		return fmt.Errorf("table %s not found for run %s", name, runID)
	}
	if err != nil {
		return fmt.Errorf("failed to load table %s for run %s: %w", name, runID, err)
	}

	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return fmt.Errorf("failed to decode table %s: %w", name, err)
	}
	return nil
}

// ListTables returns the table names stored for a run, ordered by name.
func (s *SQLiteStore) ListTables(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM run_tables WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables for run %s: %w", runID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
