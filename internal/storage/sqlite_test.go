package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/textdrive/internal/training"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.textdrive/textdrive.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".textdrive", "textdrive.db"); got != want {
		t.Errorf("ExpandPath = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, d := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ModeManual, d); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(ModeAI, 5000); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(ModeManual, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Distance != 200 || scores[1].Distance != 100 || scores[2].Distance != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Mode != ModeManual {
		t.Errorf("mode = %q", scores[0].Mode)
	}

	limited, err := store.TopScores(ModeManual, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}

	high, err := store.HighScore(ModeAI)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 5000 {
		t.Errorf("Expected AI high score of 5000, got %d", high)
	}

	if err := store.ClearScores(ModeManual); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	high, _ = store.HighScore(ModeManual)
	if high != 0 {
		t.Errorf("Expected high score of 0 after clear, got %d", high)
	}
	high, _ = store.HighScore(ModeAI)
	if high != 5000 {
		t.Error("AI scores should not be affected by clearing manual")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("ai"); err != nil || m != ModeAI {
		t.Errorf("ParseMode(ai) = %q, %v", m, err)
	}
	if _, err := ParseMode("robot"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestStoreTrainingRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartRun(RunParams{TablePath: "qtable.bin", Episodes: 1000, MaxSteps: 10000, Seed: 42})
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("run id %q is not a uuid", id)
	}

	run, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Status != StatusRunning || !run.FinishedAt.IsZero() || run.Seed != 42 {
		t.Errorf("unexpected running run: %+v", run)
	}

	err = store.FinishRun(id, RunResult{Episodes: 1000, BestScore: 321, Average: 45.5, Epsilon: 0.6})
	if err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	run, _ = store.Run(id)
	if run.Status != StatusCompleted || run.BestScore != 321 || run.CompletedEpisodes != 1000 {
		t.Errorf("unexpected finished run: %+v", run)
	}
	if run.Average != 45.5 || run.Epsilon != 0.6 {
		t.Errorf("averages not stored: %+v", run)
	}

	second, _ := store.StartRun(RunParams{TablePath: "other.bin", Episodes: 10, Resumed: true})
	runs, err := store.Runs(10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second || !runs[0].Resumed {
		t.Errorf("Runs() = %+v, want newest first", runs)
	}

	if _, err := store.Run("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run(missing) err = %v", err)
	}
	if err := store.FinishRun("missing", RunResult{}); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun(missing) err = %v", err)
	}
}

func TestRunRecorder(t *testing.T) {
	store := openTestStore(t)
	id, err := store.StartRun(RunParams{TablePath: "qtable.bin", Episodes: 1000})
	if err != nil {
		t.Fatal(err)
	}

	var rep training.Reporter = NewRunRecorder(store, id)
	for _, p := range []training.Progress{
		{Episode: 500, BestScore: 30, Average: 12.5, Epsilon: 0.78},
		{Episode: 1000, BestScore: 61, Average: 20.25, Epsilon: 0.61},
	} {
		if err := rep.Report(p); err != nil {
			t.Fatalf("Report() failed: %v", err)
		}
	}

	entries, err := store.Progress(id)
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 progress entries, got %d", len(entries))
	}
	if entries[1].Episode != 1000 || entries[1].BestScore != 61 || entries[1].Average != 20.25 {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
}
