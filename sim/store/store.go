// Package store keeps a local history of experiment results so runs can be
// compared across sessions. SQLite, single file, schema created on open.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	system      TEXT NOT NULL,
	matchmaker  TEXT NOT NULL,
	players     INTEGER NOT NULL,
	rounds      INTEGER NOT NULL,
	repetitions INTEGER NOT NULL,
	seed        INTEGER NOT NULL,
	mean_err    REAL NOT NULL,
	median_err  REAL NOT NULL,
	min_err     REAL NOT NULL,
	max_err     REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// RunRow is one persisted experiment summary.
type RunRow struct {
	ID          string
	CreatedAt   time.Time
	System      string
	Matchmaker  string
	Players     int
	Rounds      int
	Repetitions int
	Seed        int64

	MeanErr   float64
	MedianErr float64
	MinErr    float64
	MaxErr    float64
}

// DB wraps the results database.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the results database at path and ensures the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (s *DB) Close() error { return s.db.Close() }

// SaveRun inserts one experiment summary.
func (s *DB) SaveRun(r RunRow) error {
	_, err := s.db.Exec(`
		INSERT INTO runs(id, created_at, system, matchmaker, players, rounds,
		                 repetitions, seed, mean_err, median_err, min_err, max_err)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.System, r.Matchmaker,
		r.Players, r.Rounds, r.Repetitions, r.Seed,
		r.MeanErr, r.MedianErr, r.MinErr, r.MaxErr,
	)
	if err != nil {
		return fmt.Errorf("store: save run %s: %w", r.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit summaries, newest first.
func (s *DB) RecentRuns(limit int) ([]RunRow, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, system, matchmaker, players, rounds,
		       repetitions, seed, mean_err, median_err, min_err, max_err
		  FROM runs
		 ORDER BY created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var created string
		if err := rows.Scan(&r.ID, &created, &r.System, &r.Matchmaker, &r.Players,
			&r.Rounds, &r.Repetitions, &r.Seed,
			&r.MeanErr, &r.MedianErr, &r.MinErr, &r.MaxErr); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
