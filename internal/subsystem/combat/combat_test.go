package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/ids"
	"ownworld/internal/obslog"
	"ownworld/internal/world"
)

func twoMobsInRoom(w *world.World, attacker, target world.Mob) (attackerID, targetID, roomID ids.EntityID) {
	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{})

	a := w.Allocator.Fresh()
	w.Mobs.Add(a, attacker)
	w.Graph.Set(a, room)

	tg := w.Allocator.Fresh()
	w.Mobs.Add(tg, target)
	w.Graph.Set(tg, room)

	return a, tg, room
}

func TestRunKillsOverwhelmedMobAndLeavesCorpse(t *testing.T) {
	w := world.New(1)
	log := obslog.Default()

	aID, tID, roomID := twoMobsInRoom(w,
		world.Mob{Attributes: world.Attributes{Attack: 30, DamageMin: 999, DamageMax: 999}, Command: world.MobCommand{Kind: world.MobKill}},
		world.Mob{Attributes: world.Attributes{Defense: 0, HPCurrent: 5, HPMax: 5}},
	)
	attacker, _ := w.Mobs.Get(aID)
	attacker.Command.Target = tID
	w.Mobs.Update(aID, attacker)

	Run(w, 0, CorpseTTL, roomID, log)

	assert.False(t, w.Mobs.Exists(tID), "a mob reduced below zero HP must be removed")

	var corpses int
	w.Items.Each(func(_ ids.EntityID, it world.Item) {
		if it.Corpse {
			corpses++
		}
	})
	assert.Equal(t, 1, corpses)
}

func TestRunRespawnsAvatarInsteadOfKilling(t *testing.T) {
	w := world.New(1)
	log := obslog.Default()

	respawnRoom := w.Allocator.Fresh()
	w.Rooms.Add(respawnRoom, world.Room{})

	aID, tID, _ := twoMobsInRoom(w,
		world.Mob{Attributes: world.Attributes{Attack: 30, DamageMin: 999, DamageMax: 999}, Command: world.MobCommand{Kind: world.MobKill}},
		world.Mob{Attributes: world.Attributes{HPCurrent: 1, HPMax: 10}, IsAvatar: true},
	)
	attacker, _ := w.Mobs.Get(aID)
	attacker.Command.Target = tID
	w.Mobs.Update(aID, attacker)

	Run(w, 0, CorpseTTL, respawnRoom, log)

	require.True(t, w.Mobs.Exists(tID), "an avatar must never be removed on death")
	mob, _ := w.Mobs.Get(tID)
	assert.Equal(t, 1, mob.Attributes.HPCurrent)
	parent, ok := w.Graph.Parent(tID)
	require.True(t, ok)
	assert.Equal(t, respawnRoom, parent)
}

func TestRunIdleTargetRetaliates(t *testing.T) {
	w := world.New(1)
	log := obslog.Default()

	aID, tID, _ := twoMobsInRoom(w,
		world.Mob{Attributes: world.Attributes{Attack: -50, DamageMin: 0, DamageMax: 0}, Command: world.MobCommand{Kind: world.MobKill}},
		world.Mob{Attributes: world.Attributes{Defense: 50, HPCurrent: 100, HPMax: 100}, Command: world.MobCommand{Kind: world.MobIdle}},
	)
	attacker, _ := w.Mobs.Get(aID)
	attacker.Command.Target = tID
	w.Mobs.Update(aID, attacker)

	Run(w, 0, CorpseTTL, 0, log)

	target, _ := w.Mobs.Get(tID)
	assert.Equal(t, world.MobKill, target.Command.Kind)
	assert.Equal(t, aID, target.Command.Target)
}

func TestRunRetaliatesEvenWhileAttackerCooldownStillPending(t *testing.T) {
	w := world.New(1)
	log := obslog.Default()

	aID, tID, _ := twoMobsInRoom(w,
		world.Mob{Command: world.MobCommand{Kind: world.MobKill}, NextAttackTime: 100},
		world.Mob{Command: world.MobCommand{Kind: world.MobIdle}},
	)
	attacker, _ := w.Mobs.Get(aID)
	attacker.Command.Target = tID
	w.Mobs.Update(aID, attacker)

	Run(w, 5, CorpseTTL, 0, log)

	target, _ := w.Mobs.Get(tID)
	assert.Equal(t, world.MobKill, target.Command.Kind, "retaliation must not wait on the attacker's cooldown")
	assert.Equal(t, aID, target.Command.Target)
}

func TestRunDropsCommandWhenTargetLeavesRoom(t *testing.T) {
	w := world.New(1)
	log := obslog.Default()

	aID, tID, _ := twoMobsInRoom(w,
		world.Mob{Command: world.MobCommand{Kind: world.MobKill}},
		world.Mob{},
	)
	attacker, _ := w.Mobs.Get(aID)
	attacker.Command.Target = tID
	w.Mobs.Update(aID, attacker)

	otherRoom := w.Allocator.Fresh()
	w.Rooms.Add(otherRoom, world.Room{})
	w.Graph.Set(tID, otherRoom)

	Run(w, 0, CorpseTTL, 0, log)

	attacker, _ = w.Mobs.Get(aID)
	assert.Equal(t, world.MobIdle, attacker.Command.Kind)
}
