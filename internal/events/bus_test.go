package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakeOnlySeesEventsAfterRegister(t *testing.T) {
	b := New[int]()
	b.Push(KindSpawn, 1)

	l := b.Register(KindSpawn)
	assert.Empty(t, b.Take(l), "a listener registered after a push must not see it")

	b.Push(KindSpawn, 2)
	assert.Equal(t, []int{2}, b.Take(l))
}

func TestTakeNeverRedelivers(t *testing.T) {
	b := New[int]()
	l := b.Register(KindKilled)
	b.Push(KindKilled, 1)

	assert.Equal(t, []int{1}, b.Take(l))
	assert.Empty(t, b.Take(l))
}

func TestEventsRetainedWithZeroListeners(t *testing.T) {
	b := New[int]()
	b.Push(KindDecay, 1)
	b.Push(KindDecay, 2)
	assert.Equal(t, 2, b.LenByKind(KindDecay))

	l := b.Register(KindDecay)
	assert.Empty(t, b.Take(l), "events retained before registration are not delivered")
}

func TestGCAdvancesToMinimumCursor(t *testing.T) {
	b := New[int]()
	slow := b.Register(KindHealed)
	fast := b.Register(KindHealed)

	b.Push(KindHealed, 1)
	b.Push(KindHealed, 2)

	b.Take(fast) // advances fast to 2
	b.GC()
	assert.Equal(t, 2, b.LenByKind(KindHealed), "slow listener has not taken anything yet, GC must not drop events it still needs")

	b.Take(slow)
	b.GC()
	assert.Equal(t, 0, b.LenByKind(KindHealed))
}

func TestGCLeavesZeroListenerKindsUntouched(t *testing.T) {
	b := New[int]()
	b.Push(KindRespawned, 1)
	b.GC()
	assert.Equal(t, 1, b.LenByKind(KindRespawned))
}

func TestMultipleListenersIndependentCursors(t *testing.T) {
	b := New[string]()
	a := b.Register(KindShipArrived)
	bb := b.Register(KindShipArrived)

	b.Push(KindShipArrived, "x")
	assert.Equal(t, []string{"x"}, b.Take(a))
	assert.Equal(t, []string{"x"}, b.Take(bb), "independent listeners each see the full backlog once")
}
