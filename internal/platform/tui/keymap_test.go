package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gesturelab/gesture-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"left", runeKey('a'), []core.Action{core.ActionLeft}},
		{"right", runeKey('d'), []core.Action{core.ActionRight}},
		{"jump", runeKey('w'), []core.Action{core.ActionJump}},
		{"fire", runeKey('x'), []core.Action{core.ActionFire}},
		{"pause", runeKey('p'), []core.Action{core.ActionPause}},
		{"restart", runeKey('r'), []core.Action{core.ActionRestart}},
		{"space sets jump and fire", tea.KeyMsg{Type: tea.KeySpace}, []core.Action{core.ActionJump, core.ActionFire}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			isQuit := km.MapKeyToFrame(tt.msg, &frame)

			if isQuit {
				t.Errorf("%s should not be a quit key", tt.msg.String())
			}
			for _, a := range tt.want {
				if !frame.Has(a) {
					t.Errorf("key %q should set %s", tt.msg.String(), a)
				}
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	km := NewKeyMapper()

	for _, msg := range []tea.KeyMsg{
		runeKey('q'),
		{Type: tea.KeyCtrlC},
	} {
		frame := core.NewInputFrame()
		if !km.MapKeyToFrame(msg, &frame) {
			t.Errorf("key %q should be a quit request", msg.String())
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{runeKey('g'), MenuActionGesture},
		{runeKey('q'), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("key %q: got %d, want %d", tt.msg.String(), got, tt.want)
		}
	}
}
