// Package history provides SQLite-backed persistence for past pack runs so
// users can compare loads over time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// schemaV1 defines the initial database schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS pack_runs (
	run_id          TEXT PRIMARY KEY,
	plan_name       TEXT NOT NULL DEFAULT '',
	trailer_label   TEXT NOT NULL DEFAULT '',
	shape_mode      TEXT NOT NULL DEFAULT 'rect',
	item_count      INTEGER NOT NULL DEFAULT 0,
	packed_count    INTEGER NOT NULL DEFAULT 0,
	volume_percent  REAL NOT NULL DEFAULT 0.0,
	duration_ms     INTEGER NOT NULL DEFAULT 0,
	created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pack_runs_created ON pack_runs(created_at);
`

// Run is one recorded pack run.
type Run struct {
	RunID         string
	PlanName      string
	TrailerLabel  string
	ShapeMode     model.ShapeMode
	ItemCount     int
	PackedCount   int
	VolumePercent float64
	Duration      time.Duration
	CreatedAt     time.Time
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location,
// ~/.trailerpack/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trailerpack", "history.db"), nil
}

// Open opens (creating if necessary) the history database at path and
// applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run record and returns its generated ID.
func (s *Store) RecordRun(ctx context.Context, planName string, trailer model.Trailer, result model.PackResult, duration time.Duration) (string, error) {
	const q = `INSERT INTO pack_runs
(run_id, plan_name, trailer_label, shape_mode, item_count, packed_count, volume_percent, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	runID := uuid.New().String()
	_, err := s.db.ExecContext(ctx, q,
		runID,
		planName,
		trailer.Label,
		string(trailer.ShapeMode),
		result.TotalPackable,
		result.PackedCount,
		result.VolumePercent,
		duration.Milliseconds(),
		time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return runID, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	const q = `SELECT run_id, plan_name, trailer_label, shape_mode, item_count, packed_count, volume_percent, duration_ms, created_at
FROM pack_runs
ORDER BY created_at DESC, run_id
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var shapeMode string
		var durationMs, createdAt int64
		if err := rows.Scan(&r.RunID, &r.PlanName, &r.TrailerLabel, &shapeMode, &r.ItemCount, &r.PackedCount, &r.VolumePercent, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.ShapeMode = model.ShapeMode(shapeMode)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Prune deletes the oldest runs beyond keep entries.
func (s *Store) Prune(ctx context.Context, keep int) error {
	const q = `DELETE FROM pack_runs WHERE run_id NOT IN (
SELECT run_id FROM pack_runs ORDER BY created_at DESC, run_id LIMIT ?)`
	if _, err := s.db.ExecContext(ctx, q, keep); err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}
