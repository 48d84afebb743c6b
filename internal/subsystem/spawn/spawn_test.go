package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/events"
	"ownworld/internal/ids"
	"ownworld/internal/obslog"
	"ownworld/internal/prefab"
	"ownworld/internal/world"
)

func ratCatalog(t *testing.T, w *world.World) (*prefab.Catalog, ids.EntityID) {
	t.Helper()
	cat := prefab.NewCatalog()
	ratID := w.Allocator.Fresh()
	doc := prefab.Document{Records: []prefab.Record{
		{ID: ratID, Mob: &world.Mob{}},
	}}
	require.NoError(t, cat.Merge(doc))
	return cat, ratID
}

func TestRunSchedulesSpawnOnFirstPass(t *testing.T) {
	w := world.New(1)
	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{})

	cat, ratID := ratCatalog(t, w)

	spawnID := w.Allocator.Fresh()
	w.Spawns.Add(spawnID, world.Spawn{Prefab: ratID, Max: 1, DelayMin: 1, DelayMax: 1})
	w.Graph.Set(spawnID, room)

	listener := w.Bus.Register(events.KindSpawn)
	log := obslog.Default()

	Run(w, cat, listener, 0, log)

	s, _ := w.Spawns.Get(spawnID)
	require.NotNil(t, s.NextScheduled)
	assert.Equal(t, world.Time(1), *s.NextScheduled)
}

func TestRunInstantiatesWhenTimerFires(t *testing.T) {
	w := world.New(1)
	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{})

	cat, ratID := ratCatalog(t, w)

	spawnID := w.Allocator.Fresh()
	w.Spawns.Add(spawnID, world.Spawn{Prefab: ratID, Max: 1, DelayMin: 1, DelayMax: 1})
	w.Graph.Set(spawnID, room)

	listener := w.Bus.Register(events.KindSpawn)
	log := obslog.Default()

	Run(w, cat, listener, 0, log)
	fired := w.Wheel.AdvanceTo(1)
	for _, f := range fired {
		w.Bus.Push(f.Kind, f.Event)
	}

	Run(w, cat, listener, 1, log)

	assert.Equal(t, 1, w.CountOwnedBy(spawnID))
}

func TestRunRespectsMaxCap(t *testing.T) {
	w := world.New(1)
	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{})

	cat, ratID := ratCatalog(t, w)

	spawnID := w.Allocator.Fresh()
	w.Spawns.Add(spawnID, world.Spawn{Prefab: ratID, Max: 1, DelayMin: 1, DelayMax: 1, NextScheduled: new(world.Time)})
	w.Graph.Set(spawnID, room)

	existing := w.Allocator.Fresh()
	w.Mobs.Add(existing, world.Mob{})
	w.SetOwner(existing, spawnID)

	listener := w.Bus.Register(events.KindSpawn)
	w.Bus.Push(events.KindSpawn, events.Event{Entity: spawnID})

	log := obslog.Default()
	Run(w, cat, listener, 0, log)

	assert.Equal(t, 1, w.CountOwnedBy(spawnID), "must not exceed Max")
}
