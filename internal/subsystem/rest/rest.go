// Package rest implements periodic HP regeneration while a mob is
// resting (spec.md §4.12). Resting is cancelled elsewhere (combat
// sets Action back to ActionCombat/ActionNone); this subsystem only
// heals.
package rest

import (
	"ownworld/internal/events"
	"ownworld/internal/fanout"
	"ownworld/internal/world"
)

// Run heals every resting, damaged mob whose heal cooldown has
// elapsed, emitting a private notification per heal tick and a
// distinct one when the mob tops out (spec.md §8 scenario 2).
func Run(w *world.World, now world.Time, out *fanout.Fanout) {
	for _, mobID := range w.Mobs.Ids() {
		mob, ok := w.Mobs.Get(mobID)
		if !ok || mob.Action != world.ActionResting {
			continue
		}
		if mob.Attributes.HPCurrent >= mob.Attributes.HPMax {
			continue
		}
		if now < mob.NextHealTime {
			continue
		}

		mob.Attributes.HPCurrent++
		mob.NextHealTime = now + mob.HealRate
		fullyHealed := mob.Attributes.HPCurrent >= mob.Attributes.HPMax
		w.Mobs.Update(mobID, mob)
		w.Bus.Push(events.KindHealed, events.Event{Entity: mobID, At: now})

		if out != nil {
			out.Private(mobID, "You feel a little better.")
			if fullyHealed {
				out.Private(mobID, "You are fully healed.")
			}
		}
	}
}
