// Package storage provides SQLite-based persistence for the best score and
// the run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultBestKey is the key the best score is stored under.
const DefaultBestKey = "dinoHighScore"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        int64
	RunID     string // Generated when empty
	Score     int
	Ticks     int
	Autopilot bool
	CreatedAt time.Time
}

// RunStats aggregates the run history.
type RunStats struct {
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			autopilot INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadBest returns the best score stored under key, or 0 if none exists.
func (s *Store) LoadBest(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM best_scores WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	return value, nil
}

// SaveBest stores value under key. A lower value never replaces a higher one.
func (s *Store) SaveBest(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value = MAX(value, excluded.value),
			updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (run_id, score, ticks, autopilot) VALUES (?, ?, ?, ?)",
		run.RunID, run.Score, run.Ticks, run.Autopilot,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs ordered by score descending.
// Ties go to the earlier run.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, score, ticks, autopilot, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Score, &r.Ticks, &r.Autopilot, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats retrieves aggregated statistics over all recorded runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes the run history. The best score is kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
