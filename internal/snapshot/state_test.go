package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/world"
)

func TestSaveRestoreRoundTripPreservesClockAndTick(t *testing.T) {
	w := world.New(1)
	w.Clock = 5000
	w.TickCount = 42
	w.Labels.Add(1, world.Label{Code: "room"})
	w.Rooms.Add(1, world.Room{})

	data, err := Save(w)
	require.NoError(t, err)

	w2 := world.New(1)
	require.NoError(t, Restore(data, w2))

	assert.Equal(t, w.Clock, w2.Clock)
	assert.Equal(t, w.TickCount, w2.TickCount)
	_, ok := w2.Rooms.Get(1)
	assert.True(t, ok)
}

func TestRestoreAdvancesAllocatorPastLoadedRuntimeIds(t *testing.T) {
	w := world.New(1)
	runtimeID := w.Allocator.Fresh()
	w.Labels.Add(runtimeID, world.Label{Code: "thing"})

	data, err := Save(w)
	require.NoError(t, err)

	w2 := world.New(1)
	require.NoError(t, Restore(data, w2))
	assert.GreaterOrEqual(t, w2.Allocator.NextRuntime(), runtimeID+1)
}
