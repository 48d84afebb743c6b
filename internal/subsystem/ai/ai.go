// Package ai implements the mob AI behaviors of spec.md §4.10:
// aggressive aggro-scan, follow-and-protect, the hauler state machine,
// and resource extraction. AI never overrides a Kill command a player
// already issued.
package ai

import (
	"ownworld/internal/ids"
	"ownworld/internal/prefab"
	"ownworld/internal/world"
)

// Run advances every AI-controlled mob one tick.
func Run(w *world.World, cat *prefab.Catalog, now world.Time) {
	for _, mobID := range w.AIs.Ids() {
		aiComp, ok := w.AIs.Get(mobID)
		if !ok {
			continue
		}
		mob, ok := w.Mobs.Get(mobID)
		if !ok {
			continue
		}
		if mob.Command.Kind == world.MobKill {
			continue // never override a Kill already issued
		}

		switch aiComp.Command.Kind {
		case world.AIAggressive:
			runAggressive(w, mobID, mob)
		case world.AIFollowProtect:
			runFollowProtect(w, mobID, mob, aiComp.Command.Leader)
		case world.AIHauler:
			runHauler(w, cat, mobID, &aiComp)
		case world.AIExtract:
			runExtract(w, cat, mobID, &aiComp, now)
		case world.AIIdle, world.AIPassive:
			// no action
		}
		w.AIs.Update(mobID, aiComp)
	}
}

func isHostileTarget(w *world.World, selfID ids.EntityID, candidate ids.EntityID) bool {
	if candidate == selfID {
		return false
	}
	if !w.Mobs.Exists(candidate) {
		return false
	}
	selfOwner, selfHasOwner := w.Owner(selfID)
	candOwner, candHasOwner := w.Owner(candidate)
	if selfHasOwner && candHasOwner && selfOwner == candOwner {
		return false
	}
	return true
}

func runAggressive(w *world.World, mobID ids.EntityID, mob world.Mob) {
	if mob.Command.Kind != world.MobIdle {
		return
	}
	room, ok := w.Graph.Parent(mobID)
	if !ok {
		return
	}
	for _, other := range w.Graph.Children(room) {
		if isHostileTarget(w, mobID, other) {
			mob.Command = world.MobCommand{Kind: world.MobKill, Target: other}
			mob.Action = world.ActionCombat
			w.Mobs.Update(mobID, mob)
			return
		}
	}
}

func runFollowProtect(w *world.World, mobID ids.EntityID, mob world.Mob, leaderID ids.EntityID) {
	leader, ok := w.Mobs.Get(leaderID)
	if !ok {
		return
	}
	leaderRoom, okL := w.Graph.Parent(leaderID)
	selfRoom, okS := w.Graph.Parent(mobID)
	if okL && (!okS || selfRoom != leaderRoom) {
		w.Graph.Set(mobID, leaderRoom)
		return
	}
	if leader.Command.Kind == world.MobKill && mob.Command.Kind == world.MobIdle {
		mob.Command = world.MobCommand{Kind: world.MobKill, Target: leader.Command.Target}
		mob.Action = world.ActionCombat
		w.Mobs.Update(mobID, mob)
	}
}

func runHauler(w *world.World, cat *prefab.Catalog, mobID ids.EntityID, ai *world.AI) {
	switch ai.Command.HaulerState {
	case world.HaulerGoToFrom:
		if room, ok := w.Graph.Parent(mobID); ok && room == ai.Command.From {
			ai.Command.HaulerState = world.HaulerLoad
			return
		}
		w.Graph.Set(mobID, ai.Command.From)
	case world.HaulerLoad:
		if ai.Command.Carrying == 0 {
			for _, child := range w.Graph.Children(ai.Command.From) {
				if item, ok := w.Items.Get(child); ok && !item.Stuck {
					w.Graph.Set(child, mobID)
					ai.Command.Carrying = child
					break
				}
			}
		}
		ai.Command.HaulerState = world.HaulerGoToTo
	case world.HaulerGoToTo:
		if room, ok := w.Graph.Parent(mobID); ok && room == ai.Command.To {
			ai.Command.HaulerState = world.HaulerUnload
			return
		}
		w.Graph.Set(mobID, ai.Command.To)
	case world.HaulerUnload:
		if ai.Command.Carrying != 0 {
			w.Graph.Set(ai.Command.Carrying, ai.Command.To)
			ai.Command.Carrying = 0
		}
		ai.Command.HaulerState = world.HaulerGoToFrom
	}
}

// runExtract instantiates one unit of the command's ExtractYield prefab
// into the extractor per extract_rate interval, as long as the
// ExtractFrom source still exists (spec.md §4 "Supplemented
// features": the extraction state machine spec.md itself leaves
// undefined).
func runExtract(w *world.World, cat *prefab.Catalog, mobID ids.EntityID, ai *world.AI, now world.Time) {
	if now < ai.Command.NextExtract {
		return
	}
	if !w.Exists(ai.Command.ExtractFrom) {
		return
	}
	if _, err := cat.Instantiate(ai.Command.ExtractYield, mobID, w); err == nil {
		ai.Command.NextExtract = now + ai.Command.ExtractRate
	}
}
