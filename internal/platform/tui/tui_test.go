package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/textdrive/internal/config"
	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/course"
	"github.com/vovakirdan/textdrive/internal/drive"
	"github.com/vovakirdan/textdrive/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runes("d"), core.ActionRight, false},
		{runes("m"), core.ActionToggleAI, false},
		{runes("p"), core.ActionPause, false},
		{runes("r"), core.ActionRestart, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	play := config.DefaultConfig().Play
	play.ScrollDelayMs = 100
	game := drive.New(drive.Options{Play: play})
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 25, TickRate: 10, Seed: 3})
	m.Init()
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSteersOnTick(t *testing.T) {
	m := newTestModel(t, nil)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = step(t, m, TickMsg(time.Now()))

	if col := m.game.Course().PlayerColumn(); col != course.Center-1 {
		t.Fatalf("column = %d, want %d", col, course.Center-1)
	}
	if m.State().Score != 1 {
		t.Errorf("distance = %d, want 1", m.State().Score)
	}

	view := m.View()
	if !strings.Contains(view, "Distance: 1") || !strings.Contains(view, "[MANUAL]") {
		t.Errorf("view missing header:\n%s", view)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	// Drive into the wall until the crash; the course always has one.
	for i := 0; i < 2000 && !m.State().GameOver; i++ {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		m = step(t, m, TickMsg(time.Now()))
	}
	if !m.State().GameOver {
		t.Fatal("expected a crash")
	}
	m = step(t, m, TickMsg(time.Now()))
	m = step(t, m, TickMsg(time.Now()))

	scores, err := store.TopScores(storage.ModeManual, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Distance != m.State().Score {
		t.Fatalf("scores = %+v, want one entry of %d", scores, m.State().Score)
	}

	// Restart clears the crash.
	m = step(t, m, runes("r"))
	m = step(t, m, TickMsg(time.Now()))
	if m.State().GameOver || m.State().Score != 0 {
		t.Errorf("state after restart = %+v", m.State())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "hi", core.ColorRed)
	s.DrawText(3, 1, "there")
	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestScoreboardSwitchesModes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	store.SaveScore(storage.ModeManual, 12)
	store.SaveScore(storage.ModeAI, 345)

	m := NewScoreboardModel(store, storage.ModeManual, 80, 24)
	if m.Mode() != storage.ModeManual || len(m.scores) != 1 || m.scores[0].Distance != 12 {
		t.Fatalf("manual tab = %+v", m.scores)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Mode() != storage.ModeAI || m.scores[0].Distance != 345 {
		t.Fatalf("ai tab = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "345") {
		t.Error("view does not show the AI score")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if next.(ScoreboardModel).Mode() != storage.ModeManual {
		t.Error("shift+tab did not go back")
	}
}
