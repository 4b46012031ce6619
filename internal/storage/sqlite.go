// Package storage provides SQLite-based persistence for the training
// platform. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
//
// Two kinds of state live here: named JSON blobs (the profile and the
// mission-progress documents, each under its own key) and an append-only
// completions ledger used for activity reporting.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Well-known blob keys.
const (
	KeyProfile         = "profile"
	KeyMissionProgress = "mission-progress"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// CompletionEntry is one row of the completions ledger.
type CompletionEntry struct {
	ID        int64
	MissionID int
	StepID    int
	Points    int
	Shards    int
	CreatedAt time.Time
}

// Totals aggregates the completions ledger.
type Totals struct {
	Completions  int
	TotalPoints  int64
	TotalShards  int64
	LastActivity time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mission_id INTEGER NOT NULL,
			step_id INTEGER NOT NULL,
			points INTEGER NOT NULL,
			shards INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_mission ON completions(mission_id);
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

// GetBlob returns the blob stored under key, or nil if absent.
func (s *Store) GetBlob(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(
		"SELECT value FROM blobs WHERE key = ?",
		key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read blob %q: %w", key, err)
	}

	return value, nil
}

// PutBlob writes the blob under key, replacing any previous value.
func (s *Store) PutBlob(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write blob %q: %w", key, err)
	}
	return nil
}

// DeleteBlob removes the blob under key. Deleting an absent key is a no-op.
func (s *Store) DeleteBlob(key string) error {
	_, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("storage: cannot delete blob %q: %w", key, err)
	}
	return nil
}

// LogCompletion appends a step completion to the ledger.
// Returns the ID of the inserted record.
func (s *Store) LogCompletion(missionID, stepID, points, shards int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (mission_id, step_id, points, shards) VALUES (?, ?, ?, ?)",
		missionID, stepID, points, shards,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot log completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentCompletions retrieves the most recent ledger entries.
func (s *Store) RecentCompletions(limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mission_id, step_id, points, shards, created_at
		 FROM completions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.MissionID, &e.StepID, &e.Points, &e.Shards, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// GetTotals aggregates the completions ledger.
func (s *Store) GetTotals() (*Totals, error) {
	totals := &Totals{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(points), 0), COALESCE(SUM(shards), 0)
		 FROM completions`,
	).Scan(&totals.Completions, &totals.TotalPoints, &totals.TotalShards)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}

	var last any
	err = s.db.QueryRow(
		`SELECT created_at FROM completions ORDER BY id DESC LIMIT 1`,
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last activity: %w", err)
	}
	if err == nil {
		totals.LastActivity = parseTimestamp(last)
	}

	return totals, nil
}

// parseTimestamp handles the datetime column, which the driver may surface
// as time.Time or as a string.
func parseTimestamp(v any) time.Time {
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
