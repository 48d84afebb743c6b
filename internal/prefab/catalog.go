package prefab

import (
	"ownworld/internal/errs"
	"ownworld/internal/events"
	"ownworld/internal/ids"
	"ownworld/internal/world"
)

// Catalog is a merged, validated, normalized set of prefab records
// keyed by static id.
type Catalog struct {
	records map[ids.EntityID]Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[ids.EntityID]Record)}
}

// Merge folds each document's records into the catalog, rejecting
// duplicate static ids across documents (spec.md §4.6 step 1).
func (c *Catalog) Merge(docs ...Document) error {
	for _, doc := range docs {
		for _, rec := range doc.Records {
			if _, exists := c.records[rec.ID]; exists {
				return errs.Conflictf("prefab: duplicate static id %d", rec.ID)
			}
			c.records[rec.ID] = rec.clone()
		}
	}
	return nil
}

// Get returns a copy of the catalog record for id.
func (c *Catalog) Get(id ids.EntityID) (Record, bool) {
	r, ok := c.records[id]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int { return len(c.records) }

// Each calls fn for every record in the catalog, in unspecified order.
func (c *Catalog) Each(fn func(id ids.EntityID, rec Record)) {
	for id, rec := range c.records {
		fn(id, rec)
	}
}

// Validate checks that every parent and child reference resolves to a
// catalog entry (spec.md §4.6 step 2). It does not require parent and
// children to already agree; that is Normalize's job.
func (c *Catalog) Validate() error {
	for id, rec := range c.records {
		if rec.ID != id {
			return errs.InvalidStatef("prefab: record stored under %d but carries id %d", id, rec.ID)
		}
		if rec.Parent != 0 {
			if _, ok := c.records[rec.Parent]; !ok {
				return errs.NotFoundf("prefab %d: parent %d not in catalog", id, rec.Parent)
			}
		}
		for _, child := range rec.Children {
			if _, ok := c.records[child]; !ok {
				return errs.NotFoundf("prefab %d: child %d not in catalog", id, child)
			}
		}
	}
	return nil
}

// Normalize fills in whichever side of the parent/children relation is
// missing and fails if both sides disagree (spec.md §4.6 step 3).
func (c *Catalog) Normalize() error {
	for id, rec := range c.records {
		for _, child := range rec.Children {
			childRec := c.records[child]
			switch {
			case childRec.Parent == 0:
				childRec.Parent = id
				c.records[child] = childRec
			case childRec.Parent != id:
				return errs.InvalidStatef("prefab %d: child %d already has parent %d", id, child, childRec.Parent)
			}
		}
	}
	for id, rec := range c.records {
		if rec.Parent == 0 {
			continue
		}
		parent := c.records[rec.Parent]
		found := false
		for _, child := range parent.Children {
			if child == id {
				found = true
				break
			}
		}
		if !found {
			parent.Children = append(parent.Children, id)
			c.records[rec.Parent] = parent
		}
	}
	return nil
}

// Instantiate clones the subtree rooted at staticID, minting fresh
// runtime ids for every entity in the subtree, remapping internal room
// exit references, and attaching the root to parentEntity. It is
// depth-first: an instantiated ship also instantiates its internal
// rooms, since those are just the ship record's children (spec.md
// §4.6 step 4).
func (c *Catalog) Instantiate(staticID, parentEntity ids.EntityID, w *world.World) (ids.EntityID, error) {
	root, ok := c.records[staticID]
	if !ok {
		return 0, errs.NotFoundf("prefab: no static id %d", staticID)
	}

	mapping := make(map[ids.EntityID]ids.EntityID)
	var subtree []ids.EntityID
	var collect func(ids.EntityID)
	collect = func(id ids.EntityID) {
		subtree = append(subtree, id)
		mapping[id] = w.Allocator.Fresh()
		for _, child := range c.records[id].Children {
			collect(child)
		}
	}
	collect(staticID)

	for _, staticEntityID := range subtree {
		rec := c.records[staticEntityID].clone()
		runtimeID := mapping[staticEntityID]
		materialize(w, runtimeID, rec, mapping)

		parent := parentEntity
		if staticEntityID != staticID {
			parent = mapping[rec.Parent]
		}
		w.Graph.Set(runtimeID, parent)
	}

	_ = root
	return mapping[staticID], nil
}

// materialize installs rec's components onto runtimeID in w, remapping
// any cross-reference that resolves inside mapping.
func materialize(w *world.World, runtimeID ids.EntityID, rec Record, mapping map[ids.EntityID]ids.EntityID) {
	if rec.Label != nil {
		w.Labels.Add(runtimeID, *rec.Label)
	}
	if rec.Room != nil {
		room := *rec.Room
		room.Exits = append([]world.RoomExit(nil), rec.Room.Exits...)
		remapRoomExits(&room, mapping)
		w.Rooms.Add(runtimeID, room)
	}
	if rec.Mob != nil {
		w.Mobs.Add(runtimeID, *rec.Mob)
	}
	if rec.Item != nil {
		w.Items.Add(runtimeID, *rec.Item)
		if rec.Item.DecayDeadline != nil {
			deadline := *rec.Item.DecayDeadline
			w.Wheel.Schedule(deadline, events.KindDecay, events.Event{Entity: runtimeID, At: deadline})
		}
	}
	if rec.InventoryCap != nil {
		w.InventoryCaps.Add(runtimeID, *rec.InventoryCap)
	}
	if rec.Equip != nil {
		eq := *rec.Equip
		eq.Items = append([]ids.EntityID(nil), rec.Equip.Items...)
		for i, it := range eq.Items {
			if mapped, ok := mapping[it]; ok {
				eq.Items[i] = mapped
			}
		}
		w.Equips.Add(runtimeID, eq)
	}
	if rec.Ship != nil {
		w.Ships.Add(runtimeID, *rec.Ship)
	}
	if rec.AstroBody != nil {
		body := *rec.AstroBody
		if body.JumpTarget != nil {
			if mapped, ok := mapping[*body.JumpTarget]; ok {
				t := mapped
				body.JumpTarget = &t
			}
		}
		w.AstroBodies.Add(runtimeID, body)
	}
	if rec.Sector != nil {
		w.Sectors.Add(runtimeID, *rec.Sector)
	}
	if rec.Position != nil {
		w.Positions.Add(runtimeID, *rec.Position)
	}
	if rec.Spawn != nil {
		w.Spawns.Add(runtimeID, *rec.Spawn)
	}
	if rec.Vendor != nil {
		w.Vendors.Add(runtimeID, *rec.Vendor)
	}
	if rec.Price != nil {
		w.Prices.Add(runtimeID, *rec.Price)
	}
	if rec.AI != nil {
		w.AIs.Add(runtimeID, *rec.AI)
	}
	if rec.Hire != nil {
		w.Hires.Add(runtimeID, *rec.Hire)
	}
	if rec.Player != nil {
		w.Players.Add(runtimeID, *rec.Player)
	}
	if rec.RandomRoomZone != nil {
		w.RandomZones.Add(runtimeID, *rec.RandomRoomZone)
	}
	if rec.Owner != 0 {
		owner := rec.Owner
		if mapped, ok := mapping[rec.Owner]; ok {
			owner = mapped
		}
		w.SetOwner(runtimeID, owner)
	}
}

// Load binds every record in doc directly onto the ids it already
// carries — no remapping, no fresh allocation — used to materialize a
// snapshot or a catalog of permanent, never-cloned world content
// (spec.md §4.6 step 5). Static ids are reserved; runtime ids bump the
// allocator's floor so it never reissues one already in use.
func Load(doc Document, w *world.World) error {
	identity := make(map[ids.EntityID]ids.EntityID, len(doc.Records))
	for _, rec := range doc.Records {
		identity[rec.ID] = rec.ID
	}
	for _, rec := range doc.Records {
		id := rec.ID
		if id.IsStatic() {
			if err := w.Allocator.Reserve(id); err != nil && errs.KindOf(err) != errs.Conflict {
				return err
			}
		} else if id >= w.Allocator.NextRuntime() {
			w.Allocator.RestoreNextRuntime(id + 1)
		}
		materialize(w, id, rec, identity)
		if rec.Parent != 0 {
			w.Graph.Set(id, rec.Parent)
		}
	}
	return nil
}

// Snapshot walks every component repository in w and aggregates the
// present components per entity into one Document (spec.md §4.6 step
// 5, reused by internal/snapshot for the entity-record portion of a
// full world snapshot).
func Snapshot(w *world.World) Document {
	out := make(map[ids.EntityID]*Record)
	get := func(id ids.EntityID) *Record {
		rec, ok := out[id]
		if !ok {
			rec = &Record{ID: id}
			out[id] = rec
		}
		return rec
	}

	w.Labels.Each(func(id ids.EntityID, v world.Label) { get(id).Label = &v })
	w.Rooms.Each(func(id ids.EntityID, v world.Room) { get(id).Room = &v })
	w.Mobs.Each(func(id ids.EntityID, v world.Mob) { get(id).Mob = &v })
	w.Items.Each(func(id ids.EntityID, v world.Item) { get(id).Item = &v })
	w.InventoryCaps.Each(func(id ids.EntityID, v world.InventoryCap) { get(id).InventoryCap = &v })
	w.Equips.Each(func(id ids.EntityID, v world.Equip) { get(id).Equip = &v })
	w.Ships.Each(func(id ids.EntityID, v world.Ship) { get(id).Ship = &v })
	w.AstroBodies.Each(func(id ids.EntityID, v world.AstroBody) { get(id).AstroBody = &v })
	w.Sectors.Each(func(id ids.EntityID, v world.Sector) { get(id).Sector = &v })
	w.Positions.Each(func(id ids.EntityID, v world.Position) { get(id).Position = &v })
	w.Spawns.Each(func(id ids.EntityID, v world.Spawn) { get(id).Spawn = &v })
	w.Vendors.Each(func(id ids.EntityID, v world.Vendor) { get(id).Vendor = &v })
	w.Prices.Each(func(id ids.EntityID, v world.Price) { get(id).Price = &v })
	w.AIs.Each(func(id ids.EntityID, v world.AI) { get(id).AI = &v })
	w.Hires.Each(func(id ids.EntityID, v world.Hire) { get(id).Hire = &v })
	w.Players.Each(func(id ids.EntityID, v world.Player) { get(id).Player = &v })
	w.RandomZones.Each(func(id ids.EntityID, v world.RandomRoomZone) { get(id).RandomRoomZone = &v })

	for id, rec := range out {
		if parent, ok := w.Graph.Parent(id); ok {
			rec.Parent = parent
		}
		if owner, ok := w.Owner(id); ok {
			rec.Owner = owner
		}
	}

	doc := Document{Records: make([]Record, 0, len(out))}
	for _, rec := range out {
		doc.Records = append(doc.Records, *rec)
	}
	return doc
}
