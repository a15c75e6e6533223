package storage

import (
	"github.com/vovakirdan/textdrive/internal/training"
)

// RunRecorder stores training progress snapshots for one run.
// It implements training.Reporter.
type RunRecorder struct {
	store *Store
	runID string
}

// NewRunRecorder binds a recorder to an existing run.
func NewRunRecorder(store *Store, runID string) *RunRecorder {
	return &RunRecorder{store: store, runID: runID}
}

// RunID returns the run being recorded.
func (r *RunRecorder) RunID() string { return r.runID }

// Report implements training.Reporter.
func (r *RunRecorder) Report(p training.Progress) error {
	return r.store.RecordProgress(r.runID, p.Episode, p.BestScore, p.Average, p.Epsilon)
}

// Ensure RunRecorder implements training.Reporter
var _ training.Reporter = (*RunRecorder)(nil)
