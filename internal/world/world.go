package world

import (
	"ownworld/internal/ecs"
	"ownworld/internal/events"
	"ownworld/internal/ids"
	"ownworld/internal/location"
	"ownworld/internal/rng"
	"ownworld/internal/timer"
)

// World aggregates every component repository, the location graph,
// the event bus, the timer wheel, the id allocator and the shared RNG
// into the one engine instance the tick driver advances (spec §5: "all
// state lives in one engine instance").
type World struct {
	Allocator *ids.Allocator
	Graph     *location.Graph
	Bus       *events.EntityBus
	Wheel     *timer.Wheel
	RNG       *rng.Source

	Clock     Time
	TickCount int64

	Labels         *ecs.Repository[Label]
	Rooms          *ecs.Repository[Room]
	Mobs           *ecs.Repository[Mob]
	Items          *ecs.Repository[Item]
	InventoryCaps  *ecs.Repository[InventoryCap]
	Equips         *ecs.Repository[Equip]
	Ships          *ecs.Repository[Ship]
	AstroBodies    *ecs.Repository[AstroBody]
	Sectors        *ecs.Repository[Sector]
	Positions      *ecs.Repository[Position]
	Spawns         *ecs.Repository[Spawn]
	Vendors        *ecs.Repository[Vendor]
	Prices         *ecs.Repository[Price]
	AIs            *ecs.Repository[AI]
	Hires          *ecs.Repository[Hire]
	Players        *ecs.Repository[Player]
	RandomZones    *ecs.Repository[RandomRoomZone]

	owners   map[ids.EntityID]ids.EntityID              // owned -> owner
	ownedBy  map[ids.EntityID]map[ids.EntityID]struct{} // owner -> owned set
}

// New returns an empty world seeded with seed for its shared RNG.
func New(seed uint64) *World {
	return &World{
		Allocator:     ids.NewAllocator(),
		Graph:         location.New(),
		Bus:           events.NewEntityBus(),
		Wheel:         timer.New(),
		RNG:           rng.New(seed),
		Labels:        ecs.NewRepository[Label](),
		Rooms:         ecs.NewRepository[Room](),
		Mobs:          ecs.NewRepository[Mob](),
		Items:         ecs.NewRepository[Item](),
		InventoryCaps: ecs.NewRepository[InventoryCap](),
		Equips:        ecs.NewRepository[Equip](),
		Ships:         ecs.NewRepository[Ship](),
		AstroBodies:   ecs.NewRepository[AstroBody](),
		Sectors:       ecs.NewRepository[Sector](),
		Positions:     ecs.NewRepository[Position](),
		Spawns:        ecs.NewRepository[Spawn](),
		Vendors:       ecs.NewRepository[Vendor](),
		Prices:        ecs.NewRepository[Price](),
		AIs:           ecs.NewRepository[AI](),
		Hires:         ecs.NewRepository[Hire](),
		Players:       ecs.NewRepository[Player](),
		RandomZones:   ecs.NewRepository[RandomRoomZone](),
		owners:        make(map[ids.EntityID]ids.EntityID),
		ownedBy:       make(map[ids.EntityID]map[ids.EntityID]struct{}),
	}
}

// SetOwner records that owned is owned by owner, maintaining the
// inverse index (spec §3: "Ownership is many-to-one on owned entity").
// A prior ownership edge for owned, if any, is replaced.
func (w *World) SetOwner(owned, owner ids.EntityID) {
	w.ClearOwner(owned)
	w.owners[owned] = owner
	set, ok := w.ownedBy[owner]
	if !ok {
		set = make(map[ids.EntityID]struct{})
		w.ownedBy[owner] = set
	}
	set[owned] = struct{}{}
}

// ClearOwner removes owned's ownership edge, if any.
func (w *World) ClearOwner(owned ids.EntityID) {
	owner, ok := w.owners[owned]
	if !ok {
		return
	}
	delete(w.owners, owned)
	if set, ok := w.ownedBy[owner]; ok {
		delete(set, owned)
		if len(set) == 0 {
			delete(w.ownedBy, owner)
		}
	}
}

// Owner returns who owns owned, if anyone.
func (w *World) Owner(owned ids.EntityID) (ids.EntityID, bool) {
	o, ok := w.owners[owned]
	return o, ok
}

// OwnedBy returns every entity owned by owner.
func (w *World) OwnedBy(owner ids.EntityID) []ids.EntityID {
	set := w.ownedBy[owner]
	out := make([]ids.EntityID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// CountOwnedBy returns how many entities owner currently owns, used
// by the spawn subsystem's concurrency cap check (spec §4.8).
func (w *World) CountOwnedBy(owner ids.EntityID) int {
	return len(w.ownedBy[owner])
}

// Exists reports whether id carries any component at all (it may
// still be "known" only as a location-graph node with no components,
// which the engine treats as nonexistent).
func (w *World) Exists(id ids.EntityID) bool {
	return w.Labels.Exists(id) || w.Rooms.Exists(id) || w.Mobs.Exists(id) ||
		w.Items.Exists(id) || w.Ships.Exists(id) || w.AstroBodies.Exists(id) ||
		w.Sectors.Exists(id) || w.Spawns.Exists(id) || w.Players.Exists(id) ||
		w.RandomZones.Exists(id) || w.InventoryCaps.Exists(id) || w.Equips.Exists(id) ||
		w.Positions.Exists(id) || w.Vendors.Exists(id) || w.Prices.Exists(id) ||
		w.AIs.Exists(id) || w.Hires.Exists(id)
}

// RemoveEntity atomically clears every component, the location edge,
// and every ownership edge for id, and orphans (not destroys) any
// remaining children so Location never dangles (spec §3 "Lifecycle").
func (w *World) RemoveEntity(id ids.EntityID) {
	for _, child := range w.Graph.Children(id) {
		w.Graph.Clear(child)
	}
	w.Graph.Clear(id)

	w.Labels.Remove(id)
	w.Rooms.Remove(id)
	w.Mobs.Remove(id)
	w.Items.Remove(id)
	w.InventoryCaps.Remove(id)
	w.Equips.Remove(id)
	w.Ships.Remove(id)
	w.AstroBodies.Remove(id)
	w.Sectors.Remove(id)
	w.Positions.Remove(id)
	w.Spawns.Remove(id)
	w.Vendors.Remove(id)
	w.Prices.Remove(id)
	w.AIs.Remove(id)
	w.Hires.Remove(id)
	w.Players.Remove(id)
	w.RandomZones.Remove(id)

	w.ClearOwner(id)
	for _, owned := range w.OwnedBy(id) {
		w.ClearOwner(owned)
	}

	w.Equips.Each(func(mobID ids.EntityID, eq Equip) {
		filtered := eq.Items[:0:0]
		changed := false
		for _, it := range eq.Items {
			if it == id {
				changed = true
				continue
			}
			filtered = append(filtered, it)
		}
		if changed {
			w.Equips.Update(mobID, Equip{Items: filtered})
		}
	})
}

// CurrentWeight sums, over every Item component in the transitive
// Location-descendants of container, the item's weight times its
// amount (an amount of 0 counts as 1), so a stack weighs per unit
// (spec §3: "current_weight = sum of item.weight over all items in
// transitive descendants").
func (w *World) CurrentWeight(container ids.EntityID) float64 {
	total := 0.0
	for _, d := range w.Graph.Descendants(container) {
		if it, ok := w.Items.Get(d); ok {
			total += it.Weight * float64(max(it.Amount, 1))
		}
	}
	return total
}
