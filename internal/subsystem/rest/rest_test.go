package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ownworld/internal/events"
	"ownworld/internal/fanout"
	"ownworld/internal/world"
)

type recordingSink struct {
	lines []fanout.Line
}

func (s *recordingSink) Deliver(l fanout.Line) { s.lines = append(s.lines, l) }

func TestRunHealsOneHPWhenCooldownElapsed(t *testing.T) {
	w := world.New(1)
	mobID := w.Allocator.Fresh()
	w.Mobs.Add(mobID, world.Mob{
		Action:     world.ActionResting,
		Attributes: world.Attributes{HPCurrent: 5, HPMax: 10},
		HealRate:   3,
	})

	sink := &recordingSink{}
	out := fanout.New(w, sink)
	listener := w.Bus.Register(events.KindHealed)

	Run(w, 0, out)

	mob, _ := w.Mobs.Get(mobID)
	assert.Equal(t, 6, mob.Attributes.HPCurrent)
	assert.Equal(t, world.Time(3), mob.NextHealTime)
	assert.Len(t, w.Bus.Take(listener), 1)
	assert.Len(t, sink.lines, 1, "only the per-tick notification, not the fully-healed one")
}

func TestRunSendsFullyHealedNotificationAtCap(t *testing.T) {
	w := world.New(1)
	mobID := w.Allocator.Fresh()
	w.Mobs.Add(mobID, world.Mob{
		Action:     world.ActionResting,
		Attributes: world.Attributes{HPCurrent: 9, HPMax: 10},
	})

	sink := &recordingSink{}
	out := fanout.New(w, sink)

	Run(w, 0, out)

	assert.Len(t, sink.lines, 2)
	assert.Equal(t, "You are fully healed.", sink.lines[1].Text)
}

func TestRunSkipsNonRestingMobs(t *testing.T) {
	w := world.New(1)
	mobID := w.Allocator.Fresh()
	w.Mobs.Add(mobID, world.Mob{
		Action:     world.ActionNone,
		Attributes: world.Attributes{HPCurrent: 1, HPMax: 10},
	})

	Run(w, 0, nil)

	mob, _ := w.Mobs.Get(mobID)
	assert.Equal(t, 1, mob.Attributes.HPCurrent)
}

func TestRunSkipsMobsAlreadyAtFullHealth(t *testing.T) {
	w := world.New(1)
	mobID := w.Allocator.Fresh()
	w.Mobs.Add(mobID, world.Mob{
		Action:     world.ActionResting,
		Attributes: world.Attributes{HPCurrent: 10, HPMax: 10},
	})

	Run(w, 0, nil)

	mob, _ := w.Mobs.Get(mobID)
	assert.Equal(t, 10, mob.Attributes.HPCurrent)
}

func TestRunRespectsHealCooldown(t *testing.T) {
	w := world.New(1)
	mobID := w.Allocator.Fresh()
	w.Mobs.Add(mobID, world.Mob{
		Action:       world.ActionResting,
		Attributes:   world.Attributes{HPCurrent: 1, HPMax: 10},
		NextHealTime: 100,
	})

	Run(w, 5, nil)

	mob, _ := w.Mobs.Get(mobID)
	assert.Equal(t, 1, mob.Attributes.HPCurrent, "heal cooldown has not elapsed yet")
}
