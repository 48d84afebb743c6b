package zonegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/ids"
	"ownworld/internal/world"
)

func newEntranceFixture(w *world.World, width, height int, seed uint64, dir world.Direction) (zone, entrance ids.EntityID) {
	entrance = w.Allocator.Fresh()
	w.Rooms.Add(entrance, world.Room{CanExit: true})

	zone = w.Allocator.Fresh()
	w.RandomZones.Add(zone, world.RandomRoomZone{
		Seed:              seed,
		Width:             width,
		Height:            height,
		EntranceRoom:      entrance,
		EntranceDirection: dir,
	})
	return zone, entrance
}

func TestGenerateConnectsEveryCell(t *testing.T) {
	w := world.New(1)
	zone, entrance := newEntranceFixture(w, 4, 4, 99, world.East)

	require.NoError(t, Generate(w, zone))

	var rooms []ids.EntityID
	w.Rooms.Each(func(id ids.EntityID, _ world.Room) {
		if id != zone && id != entrance {
			rooms = append(rooms, id)
		}
	})
	assert.Len(t, rooms, 16)

	start := rooms[0]
	visited := map[ids.EntityID]bool{start: true}
	stack := []ids.EntityID{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		room, _ := w.Rooms.Get(cur)
		for _, e := range room.Exits {
			if e.RoomID == zone || e.RoomID == entrance {
				continue
			}
			if !visited[e.RoomID] {
				visited[e.RoomID] = true
				stack = append(stack, e.RoomID)
			}
		}
	}
	assert.Len(t, visited, 16, "every generated room must be reachable from any other")
}

func TestGenerateIsIdempotent(t *testing.T) {
	w := world.New(1)
	zone, _ := newEntranceFixture(w, 3, 3, 5, world.North)

	require.NoError(t, Generate(w, zone))
	before := w.Rooms.Len()

	require.NoError(t, Generate(w, zone))
	assert.Equal(t, before, w.Rooms.Len(), "a second Generate on an already-generated zone must be a no-op")
}

func TestGenerateRejectsNonPositiveDimensions(t *testing.T) {
	w := world.New(1)
	zone, _ := newEntranceFixture(w, 0, 3, 5, world.North)
	err := Generate(w, zone)
	require.Error(t, err)
}

func TestGenerateSameSeedProducesSameLayout(t *testing.T) {
	w1 := world.New(1)
	z1, _ := newEntranceFixture(w1, 3, 3, 777, world.South)
	require.NoError(t, Generate(w1, z1))

	w2 := world.New(1)
	z2, _ := newEntranceFixture(w2, 3, 3, 777, world.South)
	require.NoError(t, Generate(w2, z2))

	countExits := func(w *world.World) int {
		total := 0
		w.Rooms.Each(func(_ ids.EntityID, r world.Room) { total += len(r.Exits) })
		return total
	}
	assert.Equal(t, countExits(w1), countExits(w2))
}

func TestGenerateWiresEntranceBothWays(t *testing.T) {
	w := world.New(1)
	zone, entrance := newEntranceFixture(w, 2, 2, 3, world.East)
	require.NoError(t, Generate(w, zone))

	entranceRoom, ok := w.Rooms.Get(entrance)
	require.True(t, ok)
	target, found := entranceRoom.ExitTo(world.East)
	require.True(t, found)

	farRoom, ok := w.Rooms.Get(target)
	require.True(t, ok)
	back, found := farRoom.ExitTo(world.West)
	require.True(t, found)
	assert.Equal(t, entrance, back)
}
