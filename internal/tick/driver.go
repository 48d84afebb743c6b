// Package tick implements the fixed-order driver of spec.md §4.7: per
// Δt, drain the timer wheel into the event bus, run every subsystem in
// the order spawn → ai → combat → ship → rest → decay → inventory,
// then GC the bus.
package tick

import (
	"time"

	"ownworld/internal/events"
	"ownworld/internal/fanout"
	"ownworld/internal/ids"
	"ownworld/internal/metrics"
	"ownworld/internal/obslog"
	"ownworld/internal/prefab"
	"ownworld/internal/subsystem/ai"
	"ownworld/internal/subsystem/combat"
	"ownworld/internal/subsystem/decay"
	"ownworld/internal/subsystem/inventory"
	"ownworld/internal/subsystem/rest"
	"ownworld/internal/subsystem/ship"
	"ownworld/internal/subsystem/spawn"
	"ownworld/internal/world"
)

// Driver owns the bus listeners the subsystems that consume drained
// timer events need, so they persist across ticks rather than being
// re-registered (which would make them miss the retained backlog).
type Driver struct {
	w           *world.World
	cat         *prefab.Catalog
	out         *fanout.Fanout
	log         *obslog.Logger
	metrics     *metrics.Collectors
	spawnBus    events.Listener
	decayBus    events.Listener
	corpseTTL   world.Time
	respawnRoom ids.EntityID
}

// New wires a Driver over w. respawnRoom is where a killed avatar
// reappears; corpseTTL is how long a fresh corpse lasts before decay.
// mc may be nil, in which case no metrics are recorded.
func New(w *world.World, cat *prefab.Catalog, out *fanout.Fanout, log *obslog.Logger, mc *metrics.Collectors, respawnRoom ids.EntityID, corpseTTL world.Time) *Driver {
	return &Driver{
		w:           w,
		cat:         cat,
		out:         out,
		log:         log,
		metrics:     mc,
		spawnBus:    w.Bus.Register(events.KindSpawn),
		decayBus:    w.Bus.Register(events.KindDecay),
		corpseTTL:   corpseTTL,
		respawnRoom: respawnRoom,
	}
}

// Advance runs exactly one tick of dt.
func (d *Driver) Advance(dt world.Time) {
	start := time.Now()
	w := d.w
	w.Clock += dt
	w.TickCount++
	now := w.Clock

	for _, fired := range w.Wheel.AdvanceTo(now) {
		w.Bus.Push(fired.Kind, fired.Event)
	}

	d.log.Tick(w.TickCount).Debug().Msg("tick advanced")

	spawn.Run(w, d.cat, d.spawnBus, now, d.log)
	ai.Run(w, d.cat, now)
	combat.Run(w, now, d.corpseTTL, d.respawnRoom, d.log)
	ship.Run(w, now)
	rest.Run(w, now, d.out)
	decay.Run(w, d.decayBus, d.out)
	inventory.Tick(w)

	w.Bus.GC()

	if d.metrics != nil {
		d.metrics.TickDuration.Observe(time.Since(start).Seconds())
		d.metrics.EntityCount.Set(float64(entityCount(w)))
		d.metrics.EventDepth.Set(float64(w.Bus.Len()))
	}
}

// entityCount sums the sizes of the labels, rooms, mobs, items, ships,
// astro bodies, sectors, spawns, players and random-zone repositories
// (the other component repositories are not counted); an entity with
// more than one component is counted once per component it carries,
// which is good enough for a trend gauge and avoids needing a
// separate "all entity ids" index.
func entityCount(w *world.World) int {
	return w.Labels.Len() + w.Rooms.Len() + w.Mobs.Len() + w.Items.Len() +
		w.Ships.Len() + w.AstroBodies.Len() + w.Sectors.Len() + w.Spawns.Len() +
		w.Players.Len() + w.RandomZones.Len()
}
