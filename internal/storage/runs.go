package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a training run id is unknown.
var ErrRunNotFound = errors.New("storage: training run not found")

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// RunParams describes a training run as it starts.
type RunParams struct {
	TablePath string
	Episodes  int
	MaxSteps  int
	Seed      int64
	Resumed   bool
}

// RunResult describes how a training run ended.
type RunResult struct {
	Episodes  int // Episodes actually completed
	BestScore int
	Average   float64
	Epsilon   float64
	Status    string // Defaults to StatusCompleted
}

// Run is a stored training run.
type Run struct {
	ID                string
	TablePath         string
	Episodes          int
	MaxSteps          int
	Seed              int64
	Resumed           bool
	StartedAt         time.Time
	FinishedAt        time.Time // Zero while running
	CompletedEpisodes int
	BestScore         int
	Average           float64
	Epsilon           float64
	Status            string
}

// ProgressEntry is one periodic snapshot of a training run.
type ProgressEntry struct {
	RunID     string
	Episode   int
	BestScore int
	Average   float64
	Epsilon   float64
	CreatedAt time.Time
}

// StartRun inserts a running training run and returns its id.
func (s *Store) StartRun(p RunParams) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO training_runs (id, table_path, episodes, max_steps, seed, resumed, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.TablePath, p.Episodes, p.MaxSteps, p.Seed, p.Resumed, StatusRunning,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// FinishRun stores the outcome of a run.
func (s *Store) FinishRun(id string, r RunResult) error {
	if r.Status == "" {
		r.Status = StatusCompleted
	}
	res, err := s.db.Exec(
		`UPDATE training_runs
		 SET finished_at = CURRENT_TIMESTAMP, completed_episodes = ?, best_score = ?,
		     average = ?, epsilon = ?, status = ?
		 WHERE id = ?`,
		r.Episodes, r.BestScore, r.Average, r.Epsilon, r.Status, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

const runColumns = `id, table_path, episodes, max_steps, seed, resumed, started_at, finished_at,
		        completed_episodes, best_score, average, epsilon, status`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var startedAt, finishedAt any
	err := row.Scan(
		&r.ID,
		&r.TablePath,
		&r.Episodes,
		&r.MaxSteps,
		&r.Seed,
		&r.Resumed,
		&startedAt,
		&finishedAt,
		&r.CompletedEpisodes,
		&r.BestScore,
		&r.Average,
		&r.Epsilon,
		&r.Status,
	)
	if err != nil {
		return r, err
	}
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// Run retrieves a training run by id.
func (s *Store) Run(id string) (Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM training_runs
		 WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// Runs retrieves the most recent training runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM training_runs
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecordProgress appends a progress snapshot to a run.
func (s *Store) RecordProgress(runID string, episode, bestScore int, average, epsilon float64) error {
	_, err := s.db.Exec(
		`INSERT INTO training_progress (run_id, episode, best_score, average, epsilon)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, episode, bestScore, average, epsilon,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record progress: %w", err)
	}
	return nil
}

// Progress retrieves a run's snapshots in episode order.
func (s *Store) Progress(runID string) ([]ProgressEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, episode, best_score, average, epsilon, created_at
		 FROM training_progress
		 WHERE run_id = ?
		 ORDER BY episode ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		var createdAt any
		if err := rows.Scan(&e.RunID, &e.Episode, &e.BestScore, &e.Average, &e.Epsilon, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
