package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultYAMLMatchesDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("embedded defaults diverge:\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("training:\n  episodes: 200\nplay:\n  scroll_delay_ms: 90\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Training.Episodes != 200 {
		t.Errorf("episodes = %d, want 200", cfg.Training.Episodes)
	}
	if cfg.Play.ScrollDelayMs != 90 {
		t.Errorf("scroll delay = %d, want 90", cfg.Play.ScrollDelayMs)
	}
	// Untouched keys keep their defaults.
	if cfg.Training.MaxSteps != 10000 || cfg.Play.TickRate != 60 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("training: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for malformed custom config")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Training.Episodes != 50000 {
		t.Fatalf("episodes = %d, want embedded default", cfg.Training.Episodes)
	}

	// Local configs directory.
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", fileName), []byte("training:\n  episodes: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Training.Episodes != 300 {
		t.Fatalf("episodes = %d, want local 300", cfg.Training.Episodes)
	}

	// User directory beats the local one.
	userDir := filepath.Join(home, ".textdrive", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, fileName), []byte("training:\n  episodes: 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Training.Episodes != 400 {
		t.Fatalf("episodes = %d, want user 400", cfg.Training.Episodes)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"", DifficultyFixed, false},
		{"insane", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Play.Difficulty.Enabled || cfg.Play.Difficulty.InitialLevel != 0.7 {
		t.Fatalf("hard preset not applied: %+v", cfg.Play.Difficulty)
	}
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Play.Difficulty.Enabled {
		t.Fatal("fixed preset should disable progression")
	}
}

func TestDifficultyScrollDelay(t *testing.T) {
	cfg := DefaultConfig()
	base := cfg.Play.BaseScrollDelay()
	if base != 150*time.Millisecond {
		t.Fatalf("base delay = %v", base)
	}

	fixed := NewDifficultyManager(cfg.Play.Difficulty)
	if got := fixed.ScrollDelay(base, 5000, 5000); got != base {
		t.Errorf("fixed delay = %v, want %v", got, base)
	}

	ApplyPreset(&cfg, DifficultyEasy)
	dm := NewDifficultyManager(cfg.Play.Difficulty)
	if got := dm.ScrollDelay(base, 0, 0); got != base {
		t.Errorf("easy delay at start = %v, want %v", got, base)
	}
	// Max difficulty: speed 1 + 1.5 = 2.5x.
	if got := dm.ScrollDelay(base, 1000, 0); got != 60*time.Millisecond {
		t.Errorf("easy delay at max = %v, want 60ms", got)
	}
	if dm.Level(500, 0) != 0.5 {
		t.Errorf("level at half = %v", dm.Level(500, 0))
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv(EnvTable, "")
	if got := EnvOr(EnvTable, "qtable.bin"); got != "qtable.bin" {
		t.Errorf("EnvOr fallback = %q", got)
	}
	t.Setenv(EnvTable, "/tmp/other.bin")
	if got := EnvOr(EnvTable, "qtable.bin"); got != "/tmp/other.bin" {
		t.Errorf("EnvOr = %q", got)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvDB+"=/tmp/from-env.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDB, "")
	os.Unsetenv(EnvDB)

	if got := LoadEnv(filepath.Join(dir, "missing"), path); got != path {
		t.Fatalf("LoadEnv loaded %q, want %q", got, path)
	}
	if got := os.Getenv(EnvDB); got != "/tmp/from-env.db" {
		t.Fatalf("%s = %q", EnvDB, got)
	}
}
