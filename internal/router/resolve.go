package router

import (
	"strings"

	"ownworld/internal/ids"
	"ownworld/internal/prefab"
)

// resolveItem finds an item directly inside container (an avatar's
// inventory, or a room for get) whose Label.Code or Name matches the
// joined args, case-insensitively (spec.md §6's "get/drop <item>"
// takes a free-text noun, not an id).
func (r *Router) resolveItem(container ids.EntityID, args []string) (ids.EntityID, bool) {
	if len(args) == 0 {
		return 0, false
	}
	needle := strings.ToLower(strings.Join(args, " "))
	for _, child := range r.w.Graph.Children(container) {
		if !r.w.Items.Exists(child) {
			continue
		}
		if r.matchesLabel(child, needle) {
			return child, true
		}
	}
	return 0, false
}

// resolveTarget finds a mob in avatar's current room matching the
// joined args, for kill/hire.
func (r *Router) resolveTarget(avatar ids.EntityID, args []string) (ids.EntityID, bool) {
	if len(args) == 0 {
		return 0, false
	}
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return 0, false
	}
	needle := strings.ToLower(strings.Join(args, " "))
	for _, sibling := range r.w.Graph.Children(room) {
		if sibling == avatar || !r.w.Mobs.Exists(sibling) {
			continue
		}
		if r.matchesLabel(sibling, needle) {
			return sibling, true
		}
	}
	return 0, false
}

// resolveVendor finds a Vendor entity in avatar's current room.
func (r *Router) resolveVendor(avatar ids.EntityID) (ids.EntityID, bool) {
	room, ok := r.w.Graph.Parent(avatar)
	if !ok {
		return 0, false
	}
	for _, sibling := range r.w.Graph.Children(room) {
		if r.w.Vendors.Exists(sibling) {
			return sibling, true
		}
	}
	if r.w.Vendors.Exists(room) {
		return room, true
	}
	return 0, false
}

// resolveBodyByName finds an astro body anywhere in the world matching
// the joined args, for move.
func (r *Router) resolveBodyByName(args []string) (ids.EntityID, bool) {
	if len(args) == 0 {
		return 0, false
	}
	needle := strings.ToLower(strings.Join(args, " "))
	for _, id := range r.w.AstroBodies.Ids() {
		if r.matchesLabel(id, needle) {
			return id, true
		}
	}
	return 0, false
}

// resolveRoomByName finds a room matching name, for admin teleport and
// ship landing.
func (r *Router) resolveRoomByName(name string) (ids.EntityID, bool) {
	needle := strings.ToLower(name)
	for _, id := range r.w.Rooms.Ids() {
		if r.matchesLabel(id, needle) {
			return id, true
		}
	}
	return 0, false
}

// resolvePrefabByName finds a static prefab id in vendor's price list
// whose Label (looked up in the catalog) matches the joined args.
func (r *Router) resolvePrefabByName(vendor ids.EntityID, args []string) (ids.EntityID, bool) {
	if len(args) == 0 {
		return 0, false
	}
	needle := strings.ToLower(strings.Join(args, " "))
	price, ok := r.w.Prices.Get(vendor)
	if !ok {
		return 0, false
	}
	for prefabID := range price.Entries {
		rec, ok := r.cat.Get(prefabID)
		if !ok || rec.Label == nil {
			continue
		}
		if strings.ToLower(rec.Label.Code) == needle || strings.ToLower(rec.Label.Name) == needle {
			return prefabID, true
		}
	}
	return 0, false
}

// resolvePrefabByCode finds a static prefab id anywhere in the catalog
// by exact Label.Code, for admin spawn.
func (r *Router) resolvePrefabByCode(code string) (ids.EntityID, bool) {
	needle := strings.ToLower(code)
	var found ids.EntityID
	var ok bool
	r.cat.Each(func(id ids.EntityID, rec prefab.Record) {
		if ok || rec.Label == nil {
			return
		}
		if strings.ToLower(rec.Label.Code) == needle {
			found, ok = id, true
		}
	})
	return found, ok
}

// listVendor returns a ResultOK carrying the resolved vendor's price
// list for the renderer to format, or a refusal if none is present.
func (r *Router) listVendor(avatar ids.EntityID) Result {
	vendor, ok := r.resolveVendor(avatar)
	if !ok {
		return Result{Kind: ResultRefused}
	}
	price, _ := r.w.Prices.Get(vendor)
	return Result{Kind: ResultOK, Data: price}
}

func (r *Router) matchesLabel(id ids.EntityID, needle string) bool {
	label, ok := r.w.Labels.Get(id)
	if !ok {
		return false
	}
	return strings.ToLower(label.Code) == needle || strings.ToLower(label.Name) == needle
}
