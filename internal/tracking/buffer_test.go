package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferDrainPreservesOrder(t *testing.T) {
	var b buffer

	b.append(ActionEntry{Action: "a", Time: 0.1})
	b.append(ActionEntry{Action: "b", Time: 0.2})
	assert.Equal(t, 2, b.drain())

	b.append(ActionEntry{Action: "c", Time: 0.3})
	assert.Equal(t, 1, b.drain())

	got := b.take()
	assert.Equal(t, []ActionEntry{
		{Action: "a", Time: 0.1},
		{Action: "b", Time: 0.2},
		{Action: "c", Time: 0.3},
	}, got)
}

func TestBufferDrainEmpty(t *testing.T) {
	var b buffer
	assert.Equal(t, 0, b.drain())
	assert.Nil(t, b.take())
}

func TestBufferTakeDetaches(t *testing.T) {
	var b buffer
	b.append(ActionEntry{Action: "a"})
	b.drain()

	got := b.take()
	assert.Len(t, got, 1)

	// The buffer no longer owns anything after take.
	b.append(ActionEntry{Action: "b"})
	b.drain()
	assert.Len(t, got, 1)
	assert.Equal(t, 1, b.size())
}

func TestBufferReset(t *testing.T) {
	var b buffer
	b.append(ActionEntry{Action: "a"})
	b.drain()
	b.append(ActionEntry{Action: "b"})

	b.reset()
	assert.Equal(t, 0, b.size())
	assert.Nil(t, b.take())
}
