package inventory

import (
	"ownworld/internal/errs"
	"ownworld/internal/ids"
	"ownworld/internal/prefab"
	"ownworld/internal/world"
)

// moneyCode is the Label.Code denomination every buy/sell/hire price
// is quoted and paid in.
const moneyCode = "coin"

// Buy instantiates prefabID from vendor's price list into buyer's
// inventory, withdrawing the buy price from buyer's money (spec.md §6
// lists `buy` without defining it; supplemented from
// original_source's controller/input_handle_vendors.rs).
func Buy(w *world.World, cat *prefab.Catalog, buyer, vendor ids.EntityID, prefabID ids.EntityID) (ids.EntityID, error) {
	if !w.Vendors.Exists(vendor) {
		return 0, errs.InvalidArgumentf("trade: %d is not a vendor", vendor)
	}
	price, ok := w.Prices.Get(vendor)
	if !ok {
		return 0, errs.NotFoundf("trade: vendor %d has no price list", vendor)
	}
	entry, ok := price.Entries[prefabID]
	if !ok {
		return 0, errs.NotFoundf("trade: vendor %d does not sell %d", vendor, prefabID)
	}
	if err := payFrom(w, buyer, entry.Buy); err != nil {
		return 0, err
	}
	return cat.Instantiate(prefabID, buyer, w)
}

// Sell destroys item (which must be in seller's inventory and backed
// by a catalog static id matching one of vendor's price entries),
// crediting seller with the sell price.
func Sell(w *world.World, seller, vendor, item ids.EntityID, prefabID ids.EntityID) error {
	if !w.Vendors.Exists(vendor) {
		return errs.InvalidArgumentf("trade: %d is not a vendor", vendor)
	}
	parent, ok := w.Graph.Parent(item)
	if !ok || parent != seller {
		return errs.InvalidStatef("trade: %d is not carried by %d", item, seller)
	}
	price, ok := w.Prices.Get(vendor)
	if !ok {
		return errs.NotFoundf("trade: vendor %d has no price list", vendor)
	}
	entry, ok := price.Entries[prefabID]
	if !ok {
		return errs.NotFoundf("trade: vendor %d does not buy %d", vendor, prefabID)
	}
	w.RemoveEntity(item)
	creditTo(w, seller, entry.Sell)
	return nil
}

// Hire transfers ownership of a commandable AI mob to hirer, paying
// its Hire.Cost (spec.md's Hire component names the cost; the
// operation itself is supplemented from original_source's
// actions_hire.rs).
func Hire(w *world.World, hirer, target ids.EntityID) error {
	ai, ok := w.AIs.Get(target)
	if !ok || !ai.Commandable {
		return errs.InvalidStatef("trade: %d is not commandable", target)
	}
	hire, ok := w.Hires.Get(target)
	if !ok {
		return errs.NotFoundf("trade: %d has no hire price", target)
	}
	if err := payFrom(w, hirer, hire.Cost); err != nil {
		return err
	}
	ai.Command = world.AICommand{Kind: world.AIFollowProtect, Leader: hirer}
	w.AIs.Update(target, ai)
	w.SetOwner(target, hirer)
	return nil
}

func payFrom(w *world.World, payer ids.EntityID, amount int) error {
	if amount <= 0 {
		return nil
	}
	remaining := amount
	for _, child := range w.Graph.Children(payer) {
		if remaining == 0 {
			break
		}
		it, ok := w.Items.Get(child)
		if !ok || !it.Money {
			continue
		}
		label, _ := w.Labels.Get(child)
		if label.Code != moneyCode {
			continue
		}
		take := min(remaining, it.Amount)
		if err := Withdraw(w, child, take); err != nil {
			return err
		}
		remaining -= take
	}
	if remaining > 0 {
		return errs.Conflictf("trade: %d short by %d %s", payer, remaining, moneyCode)
	}
	return nil
}

func creditTo(w *world.World, payee ids.EntityID, amount int) {
	if amount <= 0 {
		return
	}
	for _, child := range w.Graph.Children(payee) {
		it, ok := w.Items.Get(child)
		if !ok || !it.Money {
			continue
		}
		label, _ := w.Labels.Get(child)
		if label.Code != moneyCode {
			continue
		}
		it.Amount += amount
		w.Items.Update(child, it)
		return
	}
	newID := w.Allocator.Fresh()
	w.Items.Add(newID, world.Item{Money: true, Amount: amount})
	w.Labels.Add(newID, world.Label{Name: "coins", Code: moneyCode})
	w.Graph.Set(newID, payee)
}
