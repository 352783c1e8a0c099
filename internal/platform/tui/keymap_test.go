package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-styx/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		slow   bool
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false, false},
		{"shift up", tea.KeyMsg{Type: tea.KeyShiftUp}, core.ActionUp, true, false},
		{"wasd left", runeKey('a'), core.ActionLeft, false, false},
		{"shifted wasd left", runeKey('A'), core.ActionLeft, true, false},
		{"shift right", tea.KeyMsg{Type: tea.KeyShiftRight}, core.ActionRight, true, false},
		{"space draws", tea.KeyMsg{Type: tea.KeySpace}, core.ActionDraw, false, false},
		{"pause", runeKey('p'), core.ActionPause, false, false},
		{"restart", runeKey('r'), core.ActionRestart, false, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false, false},
		{"quit", runeKey('q'), core.ActionQuit, false, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			quit := km.MapKeyToFrame(tc.msg, &frame)

			if quit != tc.quit {
				t.Errorf("MapKeyToFrame(%q) quit = %v, expected %v", tc.msg.String(), quit, tc.quit)
			}
			if !frame.Has(tc.action) {
				t.Errorf("MapKeyToFrame(%q) missing %v", tc.msg.String(), tc.action)
			}
			if frame.Has(core.ActionSlow) != tc.slow {
				t.Errorf("MapKeyToFrame(%q) slow = %v, expected %v", tc.msg.String(), frame.Has(core.ActionSlow), tc.slow)
			}
		})
	}
}

func TestMapKeyUnbound(t *testing.T) {
	km := NewKeyMapper()
	action, quit := km.MapKey(runeKey('z'))
	if action != core.ActionNone || quit {
		t.Errorf("MapKey(z) = %v, %v, expected none", action, quit)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
