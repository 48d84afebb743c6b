// Package prefab implements the catalog & loader of spec.md §4.6: a
// prefab is the same record shape as an entity snapshot but addressed
// by a static id, merged from one or more documents, validated,
// normalized, and either instantiated (cloned with fresh runtime ids)
// or loaded in place (bound to the ids the document already carries).
package prefab

import "ownworld/internal/world"
import "ownworld/internal/ids"

// Record is one entity's full component set, aggregated the same way
// as an internal/snapshot entity record (spec.md §4.15), plus the
// parent/children edges the loader needs before the world has a
// location graph entry for this id at all.
type Record struct {
	ID       ids.EntityID   `json:"id"`
	Parent   ids.EntityID   `json:"parent,omitempty"`
	Children []ids.EntityID `json:"children,omitempty"`
	Owner    ids.EntityID   `json:"owner,omitempty"`

	Label          *world.Label          `json:"label,omitempty"`
	Room           *world.Room           `json:"room,omitempty"`
	Mob            *world.Mob            `json:"mob,omitempty"`
	Item           *world.Item           `json:"item,omitempty"`
	InventoryCap   *world.InventoryCap   `json:"inventory_cap,omitempty"`
	Equip          *world.Equip          `json:"equip,omitempty"`
	Ship           *world.Ship           `json:"ship,omitempty"`
	AstroBody      *world.AstroBody      `json:"astro_body,omitempty"`
	Sector         *world.Sector         `json:"sector,omitempty"`
	Position       *world.Position       `json:"position,omitempty"`
	Spawn          *world.Spawn          `json:"spawn,omitempty"`
	Vendor         *world.Vendor         `json:"vendor,omitempty"`
	Price          *world.Price          `json:"price,omitempty"`
	AI             *world.AI             `json:"ai,omitempty"`
	Hire           *world.Hire           `json:"hire,omitempty"`
	Player         *world.Player         `json:"player,omitempty"`
	RandomRoomZone *world.RandomRoomZone `json:"random_room_zone,omitempty"`
}

// Document is a set of records sharing no particular order; it is the
// on-disk shape of both a prefab file (header-less, static ids) and a
// snapshot (header records live alongside it, see internal/snapshot).
type Document struct {
	Records []Record `json:"records"`
}

// clone deep-copies r so the catalog's own copy is never aliased by an
// instantiated or loaded entity's component values.
func (r Record) clone() Record {
	c := r
	c.Children = append([]ids.EntityID(nil), r.Children...)
	if r.Label != nil {
		v := *r.Label
		c.Label = &v
	}
	if r.Room != nil {
		v := *r.Room
		v.Exits = append([]world.RoomExit(nil), r.Room.Exits...)
		c.Room = &v
	}
	if r.Mob != nil {
		v := *r.Mob
		v.Command.Target = r.Mob.Command.Target
		v.Followers = append([]ids.EntityID(nil), r.Mob.Followers...)
		c.Mob = &v
	}
	if r.Item != nil {
		v := *r.Item
		if r.Item.DecayDeadline != nil {
			d := *r.Item.DecayDeadline
			v.DecayDeadline = &d
		}
		if r.Item.Weapon != nil {
			w := *r.Item.Weapon
			v.Weapon = &w
		}
		if r.Item.Armor != nil {
			a := *r.Item.Armor
			v.Armor = &a
		}
		c.Item = &v
	}
	if r.InventoryCap != nil {
		v := *r.InventoryCap
		c.InventoryCap = &v
	}
	if r.Equip != nil {
		v := *r.Equip
		v.Items = append([]ids.EntityID(nil), r.Equip.Items...)
		c.Equip = &v
	}
	if r.Ship != nil {
		v := *r.Ship
		c.Ship = &v
	}
	if r.AstroBody != nil {
		v := *r.AstroBody
		if r.AstroBody.JumpTarget != nil {
			t := *r.AstroBody.JumpTarget
			v.JumpTarget = &t
		}
		c.AstroBody = &v
	}
	if r.Sector != nil {
		v := *r.Sector
		c.Sector = &v
	}
	if r.Position != nil {
		v := *r.Position
		c.Position = &v
	}
	if r.Spawn != nil {
		v := *r.Spawn
		if r.Spawn.NextScheduled != nil {
			t := *r.Spawn.NextScheduled
			v.NextScheduled = &t
		}
		c.Spawn = &v
	}
	if r.Vendor != nil {
		v := *r.Vendor
		c.Vendor = &v
	}
	if r.Price != nil {
		v := world.Price{Entries: make(map[ids.EntityID]world.PriceEntry, len(r.Price.Entries))}
		for k, val := range r.Price.Entries {
			v.Entries[k] = val
		}
		c.Price = &v
	}
	if r.AI != nil {
		v := *r.AI
		c.AI = &v
	}
	if r.Hire != nil {
		v := *r.Hire
		c.Hire = &v
	}
	if r.Player != nil {
		v := *r.Player
		c.Player = &v
	}
	if r.RandomRoomZone != nil {
		v := *r.RandomRoomZone
		c.RandomRoomZone = &v
	}
	return c
}

// remapRoomExits rewrites every exit whose target appears in mapping
// to the mapped id, used while instantiating a self-contained subtree
// (spec.md §4.6: "remapping internal references").
func remapRoomExits(room *world.Room, mapping map[ids.EntityID]ids.EntityID) {
	for i, e := range room.Exits {
		if mapped, ok := mapping[e.RoomID]; ok {
			room.Exits[i].RoomID = mapped
		}
	}
}
