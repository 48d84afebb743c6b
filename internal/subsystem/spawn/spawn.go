// Package spawn implements the population-control rule of spec.md
// §4.8: each Spawn component schedules timer-driven instantiation of
// a prefab, capped by how many instances it currently owns.
package spawn

import (
	"ownworld/internal/events"
	"ownworld/internal/ids"
	"ownworld/internal/obslog"
	"ownworld/internal/prefab"
	"ownworld/internal/world"
)

// Run schedules any unset Spawn and instantiates on every Spawn event
// the timer wheel has drained into bus since the last call.
func Run(w *world.World, cat *prefab.Catalog, bus events.Listener, now world.Time, log *obslog.Logger) {
	for _, spawnID := range w.Spawns.Ids() {
		s, ok := w.Spawns.Get(spawnID)
		if !ok || s.NextScheduled != nil {
			continue
		}
		delay := w.RNG.FloatRange(float64(s.DelayMin), float64(s.DelayMax))
		at := now + world.Time(delay)
		s.NextScheduled = &at
		w.Spawns.Update(spawnID, s)
		w.Wheel.Schedule(at, events.KindSpawn, events.Event{Entity: spawnID, At: at})
	}

	for _, ev := range w.Bus.Take(bus) {
		fire(w, cat, ev.Entity, now, log)
	}
}

func fire(w *world.World, cat *prefab.Catalog, spawnID ids.EntityID, now world.Time, log *obslog.Logger) {
	s, ok := w.Spawns.Get(spawnID)
	if !ok {
		return
	}

	parent, hasParent := w.Graph.Parent(spawnID)
	if !hasParent {
		parent = spawnID
	}
	validParent := w.Rooms.Exists(parent)
	if !validParent {
		if item, ok := w.Items.Get(parent); ok && item.InventoryCapable {
			validParent = true
		}
	}
	if !validParent {
		log.Subsystem("spawn", uint64(spawnID)).Warn().Msg("spawn parent location is neither a room nor an inventory-capable item")
		reschedule(w, spawnID, s, now)
		return
	}

	if w.CountOwnedBy(spawnID) < s.Max {
		newID, err := cat.Instantiate(s.Prefab, parent, w)
		if err != nil {
			log.Subsystem("spawn", uint64(spawnID)).Warn().Err(err).Msg("spawn instantiate failed")
		} else {
			w.SetOwner(newID, spawnID)
		}
	}

	reschedule(w, spawnID, s, now)
}

func reschedule(w *world.World, spawnID ids.EntityID, s world.Spawn, now world.Time) {
	delay := w.RNG.FloatRange(float64(s.DelayMin), float64(s.DelayMax))
	at := now + world.Time(delay)
	s.NextScheduled = &at
	w.Spawns.Update(spawnID, s)
	w.Wheel.Schedule(at, events.KindSpawn, events.Event{Entity: spawnID, At: at})
}
