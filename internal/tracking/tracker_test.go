package tracking

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGestures is a settable GestureProvider for tests.
type fakeGestures struct {
	mu   sync.Mutex
	code string
}

func (f *fakeGestures) ActiveCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code
}

func (f *fakeGestures) set(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code = code
}

// fakeSubmitter captures every payload handed to it.
type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []Payload
}

func (f *fakeSubmitter) Submit(p Payload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
}

func (f *fakeSubmitter) all() []Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Payload, len(f.payloads))
	copy(out, f.payloads)
	return out
}

func newTestTracker(code string) (*Tracker, *fakeGestures, *fakeSubmitter, *clock.Mock) {
	gp := &fakeGestures{code: code}
	sub := &fakeSubmitter{}
	mock := clock.NewMock()
	logger := log.New(io.Discard)
	return New(gp, sub, mock, logger), gp, sub, mock
}

// advance moves the mock clock forward after giving the flush goroutine a
// moment to install its ticker.
func advance(mock *clock.Mock, d time.Duration) {
	time.Sleep(time.Millisecond)
	mock.Add(d)
}

func TestActionsCommittedExactlyOnce(t *testing.T) {
	tr, _, sub, mock := newTestTracker("33")

	tr.Start("FLAPPY")
	tr.Record("flap")
	tr.Record("flap")
	tr.End(7, ResultLose)

	payloads := sub.all()
	require.Len(t, payloads, 1)
	assert.Equal(t, []ActionEntry{
		{Action: "flap", Time: 0},
		{Action: "flap", Time: 0},
	}, payloads[0].Progress.Actions)

	// Same sequence with a flush interval elapsing mid-session must not
	// duplicate or reorder anything.
	tr.Start("FLAPPY")
	tr.Record("flap")
	advance(mock, FlushInterval+time.Second)
	tr.Record("flap")
	tr.End(3, ResultLose)

	payloads = sub.all()
	require.Len(t, payloads, 2)
	actions := payloads[1].Progress.Actions
	require.Len(t, actions, 2)
	assert.Equal(t, "flap", actions[0].Action)
	assert.Equal(t, "flap", actions[1].Action)
	assert.LessOrEqual(t, actions[0].Time, actions[1].Time)
}

func TestOffsetsTrackElapsedTime(t *testing.T) {
	tr, _, sub, mock := newTestTracker("30")

	tr.Start("BRICK")
	advance(mock, 200*time.Millisecond)
	tr.Record("move_left")
	advance(mock, 900*time.Millisecond)
	tr.Record("move_right")
	tr.End(42, ResultCompleted)

	payloads := sub.all()
	require.Len(t, payloads, 1)
	actions := payloads[0].Progress.Actions
	require.Len(t, actions, 2)
	assert.InDelta(t, 0.2, actions[0].Time, 1e-9)
	assert.InDelta(t, 1.1, actions[1].Time, 1e-9)
}

func TestRecordOutsideSessionIsDropped(t *testing.T) {
	tr, _, sub, _ := newTestTracker("30")

	// Before any session.
	tr.Record("jump")

	tr.Start("DINO")
	tr.End(0, ResultExit)

	// After the session ended.
	tr.Record("jump")

	tr.Start("DINO")
	tr.End(0, ResultExit)

	for _, p := range sub.all() {
		assert.Empty(t, p.Progress.Actions)
	}
}

func TestGestureFrozenAtSessionStart(t *testing.T) {
	tr, gp, sub, _ := newTestTracker("30")

	tr.Start("DINO")
	gp.set("33") // selection changes mid-session
	tr.End(10, ResultLose)

	payloads := sub.all()
	require.Len(t, payloads, 1)
	assert.Equal(t, "OpenPalm", payloads[0].Progress.Gesture)
}

func TestUnknownGestureCodes(t *testing.T) {
	tr, gp, sub, _ := newTestTracker("")

	tr.Start("DINO")
	tr.End(0, ResultExit)

	gp.set("99")
	tr.Start("DINO")
	tr.End(0, ResultExit)

	payloads := sub.all()
	require.Len(t, payloads, 2)
	assert.Equal(t, "Unknown", payloads[0].Progress.Gesture)
	assert.Equal(t, "Unknown (code: 99)", payloads[1].Progress.Gesture)
}

func TestRestartDiscardsPreviousSession(t *testing.T) {
	tr, _, sub, _ := newTestTracker("33")

	tr.Start("DINO")
	tr.Record("jump")
	tr.Record("jump")

	// Second Start without an End: the DINO session vanishes unsubmitted.
	tr.Start("SPACE")
	tr.End(5, ResultLose)

	payloads := sub.all()
	require.Len(t, payloads, 1)
	assert.Equal(t, "SPACE", payloads[0].GameID)
	assert.Empty(t, payloads[0].Progress.Actions)
}

func TestDoubleEndSubmitsOnce(t *testing.T) {
	tr, _, sub, _ := newTestTracker("33")

	tr.Start("DINO")
	tr.Record("jump")
	tr.End(100, ResultLose)
	tr.End(100, ResultExit) // quit backstop firing after a natural end

	payloads := sub.all()
	require.Len(t, payloads, 1)
	assert.Equal(t, ResultLose, payloads[0].Result)
}

func TestEndWithoutStartIsNoop(t *testing.T) {
	tr, _, sub, _ := newTestTracker("33")

	tr.End(50, ResultExit)

	assert.Empty(t, sub.all())
	assert.False(t, tr.Active())
}

func TestPeriodicFlushDoesNotSubmit(t *testing.T) {
	tr, _, sub, mock := newTestTracker("33")

	tr.Start("DINO")
	tr.Record("jump")

	// Several flush intervals pass; nothing may leave the tracker.
	advance(mock, 3*FlushInterval)
	assert.Empty(t, sub.all())
	assert.True(t, tr.Active())

	tr.End(1, ResultLose)
	payloads := sub.all()
	require.Len(t, payloads, 1)
	require.Len(t, payloads[0].Progress.Actions, 1)
}

func TestEndToEndDinoScenario(t *testing.T) {
	tr, _, sub, mock := newTestTracker("33")

	tr.Start("DINO")
	advance(mock, 200*time.Millisecond)
	tr.Record("jump")
	advance(mock, 900*time.Millisecond)
	tr.Record("jump")
	advance(mock, 900*time.Millisecond)
	tr.End(150, ResultLose)

	payloads := sub.all()
	require.Len(t, payloads, 1)

	p := payloads[0]
	assert.Equal(t, "DINO", p.GameID)
	assert.Equal(t, "ThreeFinger", p.Progress.Gesture)
	assert.Equal(t, ResultLose, p.Result)
	assert.Equal(t, 150, p.Score)

	require.Len(t, p.Progress.Actions, 2)
	assert.Equal(t, "jump", p.Progress.Actions[0].Action)
	assert.InDelta(t, 0.2, p.Progress.Actions[0].Time, 1e-9)
	assert.Equal(t, "jump", p.Progress.Actions[1].Action)
	assert.InDelta(t, 1.1, p.Progress.Actions[1].Time, 1e-9)
}

func TestEmptySessionSubmitsEmptyActionList(t *testing.T) {
	tr, _, sub, _ := newTestTracker("33")

	tr.Start("FLAPPY")
	tr.End(0, ResultExit)

	payloads := sub.all()
	require.Len(t, payloads, 1)
	require.NotNil(t, payloads[0].Progress.Actions)
	assert.Empty(t, payloads[0].Progress.Actions)
}
