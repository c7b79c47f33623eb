package tui

import (
	"io"
	"testing"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/gestures"
	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

func TestCloseAbandonedSession(t *testing.T) {
	sub := &captureSubmitter{}
	gctx := gestures.NewContext("32")
	tracker := tracking.New(gctx, sub, clock.NewMock(), log.New(io.Discard))
	deps := SessionDeps{Tracker: tracker, Gestures: gctx}
	logger := log.New(io.Discard)

	tracker.Start("DINO")
	tracker.Record("jump")

	closeAbandonedSession(deps, logger)

	if tracker.Active() {
		t.Error("session should be closed after the connection goes away")
	}
	got := sub.results()
	if len(got) != 1 || got[0] != tracking.ResultExit {
		t.Fatalf("expected one exit submission, got %v", got)
	}
	if n := len(sub.payloads[0].Progress.Actions); n != 1 {
		t.Errorf("recorded actions should survive the backstop, got %d", n)
	}

	// Idle tracker: the backstop must not submit again.
	closeAbandonedSession(deps, logger)
	if len(sub.results()) != 1 {
		t.Errorf("idle session should not be submitted, got %v", sub.results())
	}
}

func TestCloseAbandonedSessionNilTracker(t *testing.T) {
	// Tracking disabled for remote play: nothing to do, nothing to panic on.
	closeAbandonedSession(SessionDeps{}, log.New(io.Discard))
}

func TestSessionModelBackReturnsToMenu(t *testing.T) {
	tracker, sub := newTestTracker()
	deps := SessionDeps{Tracker: tracker, Gestures: gestures.NewContext("30")}
	sm := NewSessionModel(deps, testRuntime())

	gm := NewModel(&stubGame{}, tracker, testRuntime())
	_ = gm.Init()
	gm.gameState = core.GameState{Paused: true}
	sm.gameModel = &gm
	sm.inGame = true

	newModel, _ := sm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = newModel.(SessionModel)

	if sm.quitting {
		t.Error("back from a game should not quit the SSH session")
	}
	if sm.inGame {
		t.Error("back from a game should return to the menu")
	}

	got := sub.results()
	if len(got) != 1 || got[0] != tracking.ResultExit {
		t.Errorf("expected one exit submission, got %v", got)
	}
}
