package ship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/world"
)

func TestMoveToComputesArrivalWithinSameParent(t *testing.T) {
	w := world.New(1)
	sector := w.Allocator.Fresh()
	w.Sectors.Add(sector, world.Sector{})

	origin := w.Allocator.Fresh()
	w.AstroBodies.Add(origin, world.AstroBody{OrbitDistance: 0})
	w.Graph.Set(origin, sector)

	dest := w.Allocator.Fresh()
	w.AstroBodies.Add(dest, world.AstroBody{OrbitDistance: 10})
	w.Graph.Set(dest, sector)

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{Speed: 2})
	w.AstroBodies.Add(shipID, world.AstroBody{})
	w.Graph.Set(shipID, origin)

	require.NoError(t, MoveTo(w, 0, shipID, dest))

	s, _ := w.Ships.Get(shipID)
	assert.Equal(t, world.ShipMovingTo, s.Command.Kind)
	assert.Equal(t, world.Time(5), s.Command.Arrival)
}

func TestMoveToRejectsNonPositiveSpeed(t *testing.T) {
	w := world.New(1)
	sector := w.Allocator.Fresh()
	w.Sectors.Add(sector, world.Sector{})

	dest := w.Allocator.Fresh()
	w.AstroBodies.Add(dest, world.AstroBody{OrbitDistance: 10})
	w.Graph.Set(dest, sector)

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{Speed: 0})
	w.AstroBodies.Add(shipID, world.AstroBody{})
	w.Graph.Set(shipID, sector)

	err := MoveTo(w, 0, shipID, dest)
	require.Error(t, err)
}

func TestRunArrivesAtOrLowOrbit(t *testing.T) {
	w := world.New(1)
	dest := w.Allocator.Fresh()
	w.AstroBodies.Add(dest, world.AstroBody{OrbitDistance: 10})

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{Command: world.ShipCommand{Kind: world.ShipMovingTo, Target: dest, Arrival: 5}})
	w.AstroBodies.Add(shipID, world.AstroBody{})

	Run(w, 5)

	s, _ := w.Ships.Get(shipID)
	assert.Equal(t, world.ShipIdle, s.Command.Kind)
	parent, ok := w.Graph.Parent(shipID)
	require.True(t, ok)
	assert.Equal(t, dest, parent)

	body, _ := w.AstroBodies.Get(shipID)
	assert.Equal(t, world.LowOrbit, body.OrbitDistance)
}

func TestRunDoesNothingBeforeArrival(t *testing.T) {
	w := world.New(1)
	dest := w.Allocator.Fresh()
	w.AstroBodies.Add(dest, world.AstroBody{})

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{Command: world.ShipCommand{Kind: world.ShipMovingTo, Target: dest, Arrival: 100}})

	Run(w, 5)

	s, _ := w.Ships.Get(shipID)
	assert.Equal(t, world.ShipMovingTo, s.Command.Kind)
}

func TestLandRequiresCanExitRoomInsideCurrentBody(t *testing.T) {
	w := world.New(1)
	body := w.Allocator.Fresh()
	w.AstroBodies.Add(body, world.AstroBody{})

	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{CanExit: true})
	w.Graph.Set(room, body)

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{})
	w.Graph.Set(shipID, body)

	require.NoError(t, Land(w, shipID, room))
	parent, _ := w.Graph.Parent(shipID)
	assert.Equal(t, room, parent)
}

func TestLandRejectsRoomWithoutCanExit(t *testing.T) {
	w := world.New(1)
	body := w.Allocator.Fresh()
	w.AstroBodies.Add(body, world.AstroBody{})

	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{CanExit: false})
	w.Graph.Set(room, body)

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{})
	w.Graph.Set(shipID, body)

	err := Land(w, shipID, room)
	require.Error(t, err)
}

func TestLaunchReparentsToEnclosingBodyAtLowOrbit(t *testing.T) {
	w := world.New(1)
	body := w.Allocator.Fresh()
	w.AstroBodies.Add(body, world.AstroBody{})

	room := w.Allocator.Fresh()
	w.Rooms.Add(room, world.Room{CanExit: true})
	w.Graph.Set(room, body)

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{})
	w.AstroBodies.Add(shipID, world.AstroBody{OrbitDistance: 5})
	w.Graph.Set(shipID, room)

	require.NoError(t, Launch(w, shipID))

	parent, _ := w.Graph.Parent(shipID)
	assert.Equal(t, body, parent)
	shipBody, _ := w.AstroBodies.Get(shipID)
	assert.Equal(t, world.LowOrbit, shipBody.OrbitDistance)
}

func TestJumpMovesShipToPairedGateBody(t *testing.T) {
	w := world.New(1)

	farBody := w.Allocator.Fresh()
	w.AstroBodies.Add(farBody, world.AstroBody{})

	farGate := w.Allocator.Fresh()
	w.AstroBodies.Add(farGate, world.AstroBody{Kind: world.BodyJumpGate})
	w.Graph.Set(farGate, farBody)

	nearGate := w.Allocator.Fresh()
	w.AstroBodies.Add(nearGate, world.AstroBody{Kind: world.BodyJumpGate, JumpTarget: &farGate})

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{})
	w.AstroBodies.Add(shipID, world.AstroBody{})
	w.Graph.Set(shipID, nearGate)

	require.NoError(t, Jump(w, shipID))

	parent, _ := w.Graph.Parent(shipID)
	assert.Equal(t, farBody, parent)
	shipBody, _ := w.AstroBodies.Get(shipID)
	assert.Equal(t, world.LowOrbit, shipBody.OrbitDistance)
}

func TestJumpRejectsNonGateLocation(t *testing.T) {
	w := world.New(1)
	body := w.Allocator.Fresh()
	w.AstroBodies.Add(body, world.AstroBody{})

	shipID := w.Allocator.Fresh()
	w.Ships.Add(shipID, world.Ship{})
	w.Graph.Set(shipID, body)

	err := Jump(w, shipID)
	require.Error(t, err)
}
