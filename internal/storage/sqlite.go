// Package storage provides SQLite-based persistence for play scores and
// training history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Mode identifies who was driving when a score was set.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAI     Mode = "ai"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeManual, ModeAI:
		return m, nil
	default:
		return "", fmt.Errorf("storage: unknown mode %q (want manual or ai)", s)
	}
}

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single distance record.
type ScoreEntry struct {
	ID        int64
	Mode      Mode
	Distance  int
	CreatedAt time.Time
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
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
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			distance INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, distance DESC);

		CREATE TABLE IF NOT EXISTS training_runs (
			id TEXT PRIMARY KEY,
			table_path TEXT NOT NULL,
			episodes INTEGER NOT NULL,
			max_steps INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			resumed INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME,
			completed_episodes INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			average REAL NOT NULL DEFAULT 0,
			epsilon REAL NOT NULL DEFAULT 1,
			status TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS training_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES training_runs(id),
			episode INTEGER NOT NULL,
			best_score INTEGER NOT NULL,
			average REAL NOT NULL,
			epsilon REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_training_progress_run ON training_progress(run_id, episode);
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

// SaveScore records a finished game's distance.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(mode Mode, distance int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, distance) VALUES (?, ?)",
		string(mode), distance,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N distances for the given mode.
// Results are ordered by distance descending.
func (s *Store) TopScores(mode Mode, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, distance, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY distance DESC, id ASC
		 LIMIT ?`,
		string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var mode string
		var createdAt any
		if err := rows.Scan(&e.ID, &mode, &e.Distance, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Mode = Mode(mode)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the longest distance for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode Mode) (int, error) {
	var distance sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(distance) FROM scores WHERE mode = ?",
		string(mode),
	).Scan(&distance)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !distance.Valid {
		return 0, nil
	}

	return int(distance.Int64), nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode Mode) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", string(mode))
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
