// Package tracking implements the per-session action log for the arcade.
//
// A Tracker owns at most one active session at a time. A mini-game (via the
// platform layer) starts a session when play begins, records discrete player
// actions while it runs, and ends the session exactly once with a final
// score and result. Ending a session builds the telemetry payload and hands
// it to a Submitter fire-and-forget; nothing in this package ever blocks or
// fails into gameplay code.
//
// Recorded actions pass through a two-stage buffer: a background task moves
// pending actions into the committed log every flush interval, purely to
// bound the pending stage. The flush performs no I/O; the single outbound
// submission happens only at session end.
package tracking

import (
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"

	"github.com/gesturelab/gesture-arcade/internal/gestures"
)

// FlushInterval is how often buffered actions migrate from the pending
// stage to the committed log while a session is active.
const FlushInterval = 3 * time.Second

// Well-known session results. End accepts any string; these are the
// conventional values games pass.
const (
	ResultCompleted = "completed"
	ResultLose      = "lose"
	ResultRetry     = "retry"
	ResultExit      = "exit"
)

// GestureProvider supplies the currently selected control-scheme code.
// The tracker reads it exactly once, at session start.
type GestureProvider interface {
	ActiveCode() string
}

// Submitter delivers a completed session payload to the telemetry
// endpoint. Implementations must not block the caller; the tracker treats
// Submit as fire-and-forget and never observes its outcome.
type Submitter interface {
	Submit(p Payload)
}

// sessionState is the lifecycle state of the tracker's session slot.
type sessionState int

const (
	stateIdle sessionState = iota
	stateActive
)

// Tracker records player actions for the current game session and reports
// the session outcome when it ends. One Tracker is constructed at the
// composition root and shared by every game; it is safe for concurrent use
// (the flush task and the frame loop run on different goroutines).
type Tracker struct {
	gestures  GestureProvider
	submitter Submitter
	clk       clock.Clock
	logger    *log.Logger

	mu          sync.Mutex
	state       sessionState
	gameID      string
	gestureName string
	score       int
	startedAt   time.Time
	buf         buffer
	stopFlush   chan struct{}
}

// New creates a tracker wired to the given gesture provider and submitter.
// The clock abstracts time so tests can drive the flush interval; pass
// clock.New() in production.
func New(gestures GestureProvider, submitter Submitter, clk clock.Clock, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tracker"})
	}
	return &Tracker{
		gestures:  gestures,
		submitter: submitter,
		clk:       clk,
		logger:    logger,
	}
}

// Start begins a new tracking session for the given game. If a session is
// still active, it is discarded without submission (with a warning) before
// the new one starts. The active gesture code is read here, once, and the
// resolved label stays frozen for the whole session even if the selection
// changes mid-game.
func (t *Tracker) Start(gameID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == stateActive {
		t.logger.Warn("starting new session while previous is still active; discarding it without submission",
			"new", gameID, "previous", t.gameID, "dropped_actions", t.buf.size())
		t.stopFlushLocked()
	}

	code := t.gestures.ActiveCode()
	if code == "" {
		t.logger.Error("no gesture code selected at session start; reporting gesture as Unknown")
	}

	t.gameID = gameID
	t.gestureName = gestures.Name(code)
	t.score = 0
	t.startedAt = t.clk.Now()
	t.buf.reset()
	t.state = stateActive

	t.stopFlush = make(chan struct{})
	go t.flushLoop(t.stopFlush)

	t.logger.Info("session started", "game", gameID, "gesture", t.gestureName)
}

// Record appends a player action to the current session. The label is
// game-defined and never validated. Outside an active session this is a
// no-op with a warning.
func (t *Tracker) Record(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != stateActive {
		t.logger.Warn("action recorded with no active session", "action", label)
		return
	}

	t.buf.append(ActionEntry{
		Action: label,
		Time:   t.clk.Now().Sub(t.startedAt).Seconds(),
	})
}

// End closes the current session, submits its payload, and resets the
// tracker to idle. Only the first End per session has any effect; repeated
// calls (e.g. a natural game-over followed by the application-quit
// backstop) log a warning and do nothing. The Active-to-idle transition
// happens under the lock, before the payload leaves the tracker, so two
// racing End calls can never both submit.
func (t *Tracker) End(finalScore int, result string) {
	t.mu.Lock()

	if t.state != stateActive {
		t.mu.Unlock()
		t.logger.Warn("session end requested but no session is active; possibly a duplicate call", "result", result)
		return
	}

	t.score = finalScore
	t.stopFlushLocked()
	t.buf.drain()

	payload := Payload{
		GameID: t.gameID,
		Progress: Progress{
			Gesture: t.gestureName,
			Actions: t.buf.take(),
		},
		Result: result,
		Score:  t.score,
	}
	if payload.Progress.Actions == nil {
		payload.Progress.Actions = []ActionEntry{}
	}

	t.logger.Info("session ended",
		"game", t.gameID, "gesture", t.gestureName,
		"result", result, "score", finalScore,
		"actions", len(payload.Progress.Actions))

	t.resetLocked()
	t.mu.Unlock()

	// Submission happens after the tracker is already idle; its outcome is
	// logged by the submitter and never surfaces back to gameplay.
	t.submitter.Submit(payload)
}

// Active reports whether a session is currently being tracked.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == stateActive
}

// flushLoop migrates pending actions to the committed log every flush
// interval until the session ends. It performs no I/O.
func (t *Tracker) flushLoop(stop chan struct{}) {
	ticker := t.clk.Ticker(FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.state == stateActive {
				if n := t.buf.drain(); n > 0 {
					t.logger.Debug("auto-saved pending actions", "moved", n, "total", t.buf.size())
				}
			}
			t.mu.Unlock()
		}
	}
}

// stopFlushLocked stops the periodic flush task, if one is running.
// Callers must hold t.mu.
func (t *Tracker) stopFlushLocked() {
	if t.stopFlush != nil {
		close(t.stopFlush)
		t.stopFlush = nil
	}
}

// resetLocked clears every session field back to idle defaults.
// Callers must hold t.mu.
func (t *Tracker) resetLocked() {
	t.state = stateIdle
	t.gameID = ""
	t.gestureName = ""
	t.score = 0
	t.startedAt = time.Time{}
	t.buf.reset()
}
