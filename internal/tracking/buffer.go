package tracking

// buffer is the two-stage action log for one session. Actions land in
// pending as they are recorded and migrate to committed on each drain.
// Drains preserve recording order, so committed is always the exact call
// sequence regardless of how many flush intervals elapsed.
//
// The buffer itself is not synchronized; the Tracker's mutex serializes
// every access.
type buffer struct {
	pending   []ActionEntry
	committed []ActionEntry
}

// append records an action into the pending stage.
func (b *buffer) append(a ActionEntry) {
	b.pending = append(b.pending, a)
}

// drain moves all pending actions to the tail of the committed log and
// empties the pending stage. Returns the number of actions moved.
func (b *buffer) drain() int {
	n := len(b.pending)
	if n == 0 {
		return 0
	}
	b.committed = append(b.committed, b.pending...)
	b.pending = b.pending[:0]
	return n
}

// take returns the committed log and detaches it from the buffer, so the
// caller owns the slice and later sessions cannot alias it.
func (b *buffer) take() []ActionEntry {
	actions := b.committed
	b.committed = nil
	b.pending = nil
	return actions
}

// reset discards everything from both stages.
func (b *buffer) reset() {
	b.pending = nil
	b.committed = nil
}

// size returns the total number of buffered actions across both stages.
func (b *buffer) size() int {
	return len(b.pending) + len(b.committed)
}
