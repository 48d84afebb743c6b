package fanout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ownworld/internal/ids"
	"ownworld/internal/world"
)

type recordingSink struct {
	lines []Line
}

func (s *recordingSink) Deliver(l Line) { s.lines = append(s.lines, l) }

func TestPrivateDeliversToOneEntity(t *testing.T) {
	w := world.New(1)
	sink := &recordingSink{}
	f := New(w, sink)

	f.Private(7, "hi")
	assert.Equal(t, []Line{{To: 7, Text: "hi"}}, sink.lines)
}

func TestBroadcastExcludesActorAndReachesOnlyImmediateChildren(t *testing.T) {
	w := world.New(1)
	w.Graph.Set(1, 100)
	w.Graph.Set(2, 100)
	w.Graph.Set(3, 2) // grandchild, not an immediate occupant of 100

	sink := &recordingSink{}
	f := New(w, sink)
	f.Broadcast(100, 1, "arrives")

	var targets []ids.EntityID
	for _, l := range sink.lines {
		targets = append(targets, l.To)
	}
	assert.ElementsMatch(t, []ids.EntityID{2}, targets)
}

func TestDeepBroadcastReachesTransitiveDescendants(t *testing.T) {
	w := world.New(1)
	w.Graph.Set(1, 100)
	w.Graph.Set(2, 1)

	sink := &recordingSink{}
	f := New(w, sink)
	f.DeepBroadcast(100, 0, "rumble")

	var targets []ids.EntityID
	for _, l := range sink.lines {
		targets = append(targets, l.To)
	}
	assert.ElementsMatch(t, []ids.EntityID{1, 2}, targets)
}
