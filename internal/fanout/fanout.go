// Package fanout implements the output envelope routing of spec.md
// §3.18: Private delivers to one connection, Broadcast to a room's
// immediate occupants, DeepBroadcast to every transitive occupant
// (walking internal/location.Descendants), each able to exclude one
// entity (the actor whose own command already echoed).
package fanout

import "ownworld/internal/world"
import "ownworld/internal/ids"

// Line is one output message bound for a connection's owner entity.
// The router resolves entity -> connection id; fanout only knows
// about entities.
type Line struct {
	To   ids.EntityID
	Text string
}

// Sink receives lines as fanout produces them; the transport
// implements this, mapping an entity back to a connection through the
// router's session table and queueing the line for that connection.
type Sink interface {
	Deliver(Line)
}

// Fanout routes output lines against the location graph.
type Fanout struct {
	w    *world.World
	sink Sink
}

// New returns a Fanout bound to w, delivering every line to sink.
func New(w *world.World, sink Sink) *Fanout {
	return &Fanout{w: w, sink: sink}
}

// Private sends text to exactly one entity.
func (f *Fanout) Private(to ids.EntityID, text string) {
	f.sink.Deliver(Line{To: to, Text: text})
}

// Broadcast sends text to every immediate child of room except the
// excluded entity (0 excludes nobody).
func (f *Fanout) Broadcast(room ids.EntityID, except ids.EntityID, text string) {
	for _, occupant := range f.w.Graph.Children(room) {
		if occupant == except {
			continue
		}
		f.sink.Deliver(Line{To: occupant, Text: text})
	}
}

// DeepBroadcast sends text to every transitive descendant of root
// except the excluded entity, used when an event inside a ship or
// container should reach everyone nested within it.
func (f *Fanout) DeepBroadcast(root ids.EntityID, except ids.EntityID, text string) {
	for _, occupant := range f.w.Graph.Descendants(root) {
		if occupant == except {
			continue
		}
		f.sink.Deliver(Line{To: occupant, Text: text})
	}
}
