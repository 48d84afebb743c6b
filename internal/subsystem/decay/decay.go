// Package decay implements item expiry (spec.md §4.13): items are
// scheduled onto the timer wheel when created with a decay deadline,
// and destroyed here when that deadline fires while they are still in
// a room.
package decay

import (
	"ownworld/internal/events"
	"ownworld/internal/fanout"
	"ownworld/internal/world"
)

// Run consumes every Decay event the timer wheel drained into bus
// this tick and destroys the matching item if it is still where the
// event expects it.
func Run(w *world.World, bus events.Listener, out *fanout.Fanout) {
	for _, ev := range w.Bus.Take(bus) {
		itemID := ev.Entity
		if !w.Items.Exists(itemID) {
			continue // already gone; the event is a hint, not a promise
		}
		room, hasParent := w.Graph.Parent(itemID)
		if !hasParent || !w.Rooms.Exists(room) {
			continue
		}

		label, _ := w.Labels.Get(itemID)
		w.RemoveEntity(itemID)
		if out != nil {
			name := label.Name
			if name == "" {
				name = "Something"
			}
			out.Broadcast(room, 0, name+" disappears.")
		}
	}
}
