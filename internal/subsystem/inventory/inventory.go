// Package inventory implements the weight-cap, money-merge, and
// equip-slot rules of spec.md §4.14, plus the vendor buy/sell and
// hire operations supplemented from original_source (see
// DESIGN.md/SPEC_FULL.md §4: these round out the canonical command
// surface's `buy`/`sell`/`hire` verbs, which spec.md lists without
// defining).
package inventory

import (
	"ownworld/internal/errs"
	"ownworld/internal/ids"
	"ownworld/internal/world"
)

// Tick is the inventory bookkeeping step of the fixed tick order
// (spec.md §4.7). Current weight is always derived from the location
// graph rather than cached (spec.md §3 invariant), so there is
// nothing to recompute here; the step exists so the order itself
// stays self-documenting and has a home for any future per-tick rule
// (money decay, rent, ...).
func Tick(w *world.World) {}

// Move relocates item into container, refusing if it would push
// container's current weight over its InventoryCap (spec.md §4.14).
// A container with no InventoryCap is treated as uncapped.
func Move(w *world.World, item, container ids.EntityID) error {
	if !w.Items.Exists(item) {
		return errs.NotFoundf("inventory: %d is not an item", item)
	}
	it, _ := w.Items.Get(item)
	if it.Stuck {
		return errs.InvalidStatef("inventory: %d is stuck and cannot be moved", item)
	}

	if invCap, ok := w.InventoryCaps.Get(container); ok {
		projected := w.CurrentWeight(container) + it.Weight*float64(max1(it.Amount))
		if projected > invCap.MaxWeight {
			return errs.Conflictf("inventory: moving %d into %d would exceed max weight %.2f", item, container, invCap.MaxWeight)
		}
	}

	if it.Money {
		if merged := mergeMoney(w, item, container, it); merged {
			return nil
		}
	}

	w.Graph.Set(item, container)
	return nil
}

func max1(amount int) int {
	if amount <= 0 {
		return 1
	}
	return amount
}

// mergeMoney folds item into an existing money item of the same
// denomination already inside container, destroying item (spec.md
// §4.14: "merge by summing amount and destroying the newly added
// item"). Denomination is identified by Label.Code.
func mergeMoney(w *world.World, item, container ids.EntityID, it world.Item) bool {
	label, _ := w.Labels.Get(item)
	for _, existing := range w.Graph.Children(container) {
		if existing == item {
			continue
		}
		existingItem, ok := w.Items.Get(existing)
		if !ok || !existingItem.Money {
			continue
		}
		existingLabel, _ := w.Labels.Get(existing)
		if existingLabel.Code != label.Code {
			continue
		}
		existingItem.Amount += it.Amount
		w.Items.Update(existing, existingItem)
		w.RemoveEntity(item)
		return true
	}
	return false
}

// Withdraw removes n units from a money item, destroying it once the
// amount reaches zero (spec.md §4.14).
func Withdraw(w *world.World, moneyItem ids.EntityID, n int) error {
	it, ok := w.Items.Get(moneyItem)
	if !ok || !it.Money {
		return errs.InvalidArgumentf("inventory: %d is not a money item", moneyItem)
	}
	if it.Amount < n {
		return errs.Conflictf("inventory: %d only has %d, asked for %d", moneyItem, it.Amount, n)
	}
	it.Amount -= n
	if it.Amount == 0 {
		w.RemoveEntity(moneyItem)
		return nil
	}
	w.Items.Update(moneyItem, it)
	return nil
}

// Equip attaches item to mob's Equip set; item must be something the
// mob already has in its own location (spec.md §3 invariant:
// `Equip[m] ⊆ { i : Location[i] = m and Item[i] exists }`).
func Equip(w *world.World, mob, item ids.EntityID) error {
	if !w.Items.Exists(item) {
		return errs.NotFoundf("inventory: %d is not an item", item)
	}
	parent, ok := w.Graph.Parent(item)
	if !ok || parent != mob {
		return errs.InvalidStatef("inventory: %d must be carried by %d before it can be equipped", item, mob)
	}
	eq, _ := w.Equips.Get(mob)
	for _, existing := range eq.Items {
		if existing == item {
			return nil
		}
	}
	eq.Items = append(eq.Items, item)
	w.Equips.Update(mob, eq)
	return nil
}

// Unequip removes item from mob's Equip set, if present.
func Unequip(w *world.World, mob, item ids.EntityID) error {
	eq, ok := w.Equips.Get(mob)
	if !ok {
		return nil
	}
	out := eq.Items[:0:0]
	for _, existing := range eq.Items {
		if existing != item {
			out = append(out, existing)
		}
	}
	eq.Items = out
	w.Equips.Update(mob, eq)
	return nil
}
