// Package combat implements the attack/defense/death pipeline of
// spec.md §4.9, ported from original_source's
// mud-domain/src/game/combat.rs (tick_attack/execute_attack/
// return_attack): 2d6 dice against attack/defense bonuses, weapon
// cooldowns, corpse creation, and recursive follower retaliation.
package combat

import (
	"ownworld/internal/events"
	"ownworld/internal/ids"
	"ownworld/internal/obslog"
	"ownworld/internal/world"
)

// CorpseTTL is the default lifetime of a corpse item before the decay
// subsystem removes it, when the caller does not override it.
const CorpseTTL world.Time = 20_000_000_000 // 20s in nanoseconds, world.Time's unit

// Run advances combat for every mob currently under a Kill command.
// respawnRoom is where a killed avatar reappears.
func Run(w *world.World, now world.Time, corpseTTL world.Time, respawnRoom ids.EntityID, log *obslog.Logger) {
	for _, attackerID := range w.Mobs.Ids() {
		attacker, ok := w.Mobs.Get(attackerID)
		if !ok || attacker.Command.Kind != world.MobKill {
			continue
		}
		target := attacker.Command.Target

		targetMob, exists := w.Mobs.Get(target)
		if !exists || !sameRoom(w, attackerID, target) {
			attacker.Command = world.MobCommand{Kind: world.MobIdle}
			attacker.Action = world.ActionNone
			w.Mobs.Update(attackerID, attacker)
			continue
		}

		retaliate(w, target, attackerID)
		targetMob, _ = w.Mobs.Get(target)

		if now < attacker.NextAttackTime {
			continue
		}

		weapon, cooldown := equippedWeapon(w, attackerID, attacker)
		attackBonus := attacker.Attributes.Attack
		damageMin, damageMax := attacker.Attributes.DamageMin, attacker.Attributes.DamageMax
		if weapon != nil {
			attackBonus += weapon.AttackMod
			damageMin, damageMax = weapon.DamageMin, weapon.DamageMax
		}

		rd, defenseMod := equippedArmor(w, target)
		attackRoll := w.RNG.Dice2d6() + attackBonus
		defenseRoll := w.RNG.Dice2d6() + targetMob.Attributes.Defense + defenseMod

		attacker.NextAttackTime = now + cooldown
		w.Mobs.Update(attackerID, attacker)

		if attackRoll < defenseRoll {
			continue
		}

		damageTotal := w.RNG.IntRange(damageMin, damageMax)
		damageDelivered := damageTotal - rd
		if damageDelivered < 0 {
			damageDelivered = 0
		}
		targetMob.Attributes.HPCurrent -= damageDelivered
		w.Mobs.Update(target, targetMob)

		if targetMob.Attributes.HPCurrent >= 0 {
			continue
		}

		if targetMob.IsAvatar {
			respawn(w, target, targetMob, respawnRoom)
			continue
		}

		kill(w, attackerID, target, targetMob, now, corpseTTL, log)
	}
}

func sameRoom(w *world.World, a, b ids.EntityID) bool {
	roomA, okA := w.Graph.Parent(a)
	roomB, okB := w.Graph.Parent(b)
	return okA && okB && roomA == roomB
}

// retaliate switches target (and, recursively, its followers) from
// Idle to Kill(attacker) (spec.md §4.9: "any mob attacked while idle
// switches its command to Kill(attacker); its followers recursively
// do the same").
func retaliate(w *world.World, targetID, attackerID ids.EntityID) {
	target, ok := w.Mobs.Get(targetID)
	if !ok || target.Command.Kind != world.MobIdle {
		return
	}
	target.Command = world.MobCommand{Kind: world.MobKill, Target: attackerID}
	target.Action = world.ActionCombat
	w.Mobs.Update(targetID, target)
	for _, follower := range target.Followers {
		retaliate(w, follower, attackerID)
	}
}

func equippedWeapon(w *world.World, mobID ids.EntityID, mob world.Mob) (*world.Weapon, world.Time) {
	eq, ok := w.Equips.Get(mobID)
	if ok {
		for _, itemID := range eq.Items {
			if item, ok := w.Items.Get(itemID); ok && item.Weapon != nil {
				return item.Weapon, item.Weapon.Cooldown
			}
		}
	}
	return nil, mob.AttackCooldown
}

func equippedArmor(w *world.World, mobID ids.EntityID) (rd int, defenseMod int) {
	eq, ok := w.Equips.Get(mobID)
	if !ok {
		return 0, 0
	}
	for _, itemID := range eq.Items {
		if item, ok := w.Items.Get(itemID); ok && item.Armor != nil {
			rd += item.Armor.RD
			defenseMod += item.Armor.DefenseMod
		}
	}
	return rd, defenseMod
}

func respawn(w *world.World, avatarID ids.EntityID, avatar world.Mob, respawnRoom ids.EntityID) {
	avatar.Attributes.HPCurrent = 1
	avatar.Command = world.MobCommand{Kind: world.MobIdle}
	avatar.Action = world.ActionNone
	w.Mobs.Update(avatarID, avatar)
	w.Graph.Set(avatarID, respawnRoom)
	w.Bus.Push(events.KindRespawned, events.Event{Entity: avatarID, Target: respawnRoom})
}

func kill(w *world.World, attackerID, targetID ids.EntityID, target world.Mob, now, corpseTTL world.Time, log *obslog.Logger) {
	room, hasRoom := w.Graph.Parent(targetID)
	if !hasRoom {
		log.Error.Warn().Uint64("entity", uint64(targetID)).Msg("combat: killed mob had no room parent")
		w.RemoveEntity(targetID)
		return
	}

	if attacker, ok := w.Mobs.Get(attackerID); ok {
		attacker.XP += target.XP
		w.Mobs.Update(attackerID, attacker)
	}

	deadline := now + corpseTTL
	corpseID := w.Allocator.Fresh()
	w.Items.Add(corpseID, world.Item{Corpse: true, DecayDeadline: &deadline, InventoryCapable: true})
	w.Labels.Add(corpseID, world.Label{Name: "corpse", Code: "corpse", Description: "a lifeless body"})
	w.Graph.Set(corpseID, room)
	w.Wheel.Schedule(deadline, events.KindDecay, events.Event{Entity: corpseID, At: deadline})

	for _, carried := range w.Graph.Children(targetID) {
		w.Graph.Set(carried, corpseID)
	}

	w.Bus.Push(events.KindKilled, events.Event{Entity: targetID, Target: attackerID, At: now})
	w.RemoveEntity(targetID)
}
