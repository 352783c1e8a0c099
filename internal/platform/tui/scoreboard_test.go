package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-styx/internal/games/styx"
	"github.com/vovakirdan/tui-styx/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, score := range []int{300, 1200, 700} {
		if _, err := store.SaveScore("styx", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	runs := []storage.Run{
		{GameID: "styx", Source: "tui", Score: 300, Level: 1, Percent: 40, Duration: time.Minute},
		{GameID: "styx", Source: "ssh", Score: 1200, Level: 10, Percent: 81, Won: true, Duration: 9 * time.Minute},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return store
}

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm
}

func TestScoreboardTopScores(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 80, 30)

	if got := m.currentGame(); got != "styx" {
		t.Fatalf("currentGame() = %q, expected styx", got)
	}
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, expected 3", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "1200" {
		t.Errorf("first row = %v, expected #1 1200", rows[0])
	}
	if !strings.Contains(m.View(), "Top scores") {
		t.Error("View() missing view label")
	}
	if line := m.statsLine(); !strings.Contains(line, "Wins: 1") {
		t.Errorf("statsLine() = %q, expected a win", line)
	}
}

func TestScoreboardRecentRuns(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 80, 30)
	m = boardUpdate(t, m, runeKey('v'))

	if m.view != BoardRecentRuns {
		t.Fatalf("view = %v, expected recent runs", m.view)
	}
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, expected 2", len(rows))
	}
	// Newest first
	if rows[0][1] != "ssh" || rows[0][6] != "won" || rows[0][4] != "81.0%" {
		t.Errorf("first row = %v, expected the winning ssh run", rows[0])
	}
	if len(m.table.Columns()) != 7 {
		t.Errorf("columns = %d, expected 7", len(m.table.Columns()))
	}

	m = boardUpdate(t, m, runeKey('v'))
	if m.view != BoardTopScores || len(m.table.Columns()) != 3 {
		t.Error("second toggle did not return to top scores")
	}
}

func TestScoreboardSwitchGame(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 80, 30)
	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if got := m.currentGame(); got != "styx_endless" {
		t.Fatalf("currentGame() = %q, expected styx_endless", got)
	}
	if len(m.table.Rows()) != 0 {
		t.Errorf("endless rows = %d, expected 0", len(m.table.Rows()))
	}
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("View() missing empty message")
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.currentGame(); got != "styx" {
		t.Errorf("currentGame() = %q, expected styx", got)
	}
}

func TestScoreboardExit(t *testing.T) {
	m := boardUpdate(t, NewScoreboardModel(nil, 80, 30), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}

	m = boardUpdate(t, NewScoreboardModel(nil, 80, 30), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
