// Package ship implements the move-to/land/launch/jump state machine
// of spec.md §4.11. Every operation fails cleanly via internal/errs
// with no partial mutation; Run only advances ships already mid
// MovingTo.
package ship

import (
	"math"

	"ownworld/internal/errs"
	"ownworld/internal/events"
	"ownworld/internal/ids"
	"ownworld/internal/world"
)

// Run completes any ship whose arrival time has passed.
func Run(w *world.World, now world.Time) {
	for _, shipID := range w.Ships.Ids() {
		s, ok := w.Ships.Get(shipID)
		if !ok || s.Command.Kind != world.ShipMovingTo {
			continue
		}
		if now < s.Command.Arrival {
			continue
		}

		target := s.Command.Target
		if !w.AstroBodies.Exists(target) {
			s.Command = world.ShipCommand{Kind: world.ShipIdle}
			w.Ships.Update(shipID, s)
			continue
		}

		w.Graph.Set(shipID, target)
		if shipBody, ok := w.AstroBodies.Get(shipID); ok {
			shipBody.OrbitDistance = world.LowOrbit
			w.AstroBodies.Update(shipID, shipBody)
		}

		s.Command = world.ShipCommand{Kind: world.ShipIdle}
		w.Ships.Update(shipID, s)

		w.Bus.Push(events.KindShipArrived, events.Event{Entity: shipID, Target: target, At: now})
	}
}

// MoveTo issues a MovingTo command for shipID toward target, computing
// arrival from the absolute orbital-distance delta when the two bodies
// share a parent sector, or — when they don't — the sum of each body's
// distance to their nearest common ancestor in the sector's body tree
// (spec.md §4.11).
func MoveTo(w *world.World, now world.Time, shipID, target ids.EntityID) error {
	ship, ok := w.Ships.Get(shipID)
	if !ok {
		return errs.NotFoundf("ship: %d has no Ship component", shipID)
	}
	if _, ok := w.AstroBodies.Get(target); !ok {
		return errs.NotFoundf("ship: target %d is not an astro body", target)
	}
	distance, err := distanceBetween(w, shipID, target)
	if err != nil {
		return err
	}
	if ship.Speed <= 0 {
		return errs.InvalidStatef("ship: %d has non-positive speed", shipID)
	}
	arrival := now + world.Time(distance/ship.Speed)
	ship.Command = world.ShipCommand{Kind: world.ShipMovingTo, Target: target, Arrival: arrival}
	w.Ships.Update(shipID, ship)
	return nil
}

func distanceBetween(w *world.World, a, b ids.EntityID) (float64, error) {
	bodyA, okA := w.AstroBodies.Get(a)
	bodyB, okB := w.AstroBodies.Get(b)
	if !okA || !okB {
		return 0, errs.InvalidArgumentf("ship: both endpoints must be astro bodies")
	}
	parentA, hasA := w.Graph.Parent(a)
	parentB, hasB := w.Graph.Parent(b)
	if hasA && hasB && parentA == parentB {
		return math.Abs(bodyA.OrbitDistance - bodyB.OrbitDistance), nil
	}
	ancestorsA := append([]ids.EntityID{a}, w.Graph.Ancestors(a)...)
	ancestorsB := append([]ids.EntityID{b}, w.Graph.Ancestors(b)...)
	indexB := make(map[ids.EntityID]int, len(ancestorsB))
	for i, id := range ancestorsB {
		indexB[id] = i
	}
	for i, id := range ancestorsA {
		if j, ok := indexB[id]; ok {
			distA := pathDistance(w, ancestorsA[:i+1])
			distB := pathDistance(w, ancestorsB[:j+1])
			return distA + distB, nil
		}
	}
	return 0, errs.InvalidStatef("ship: %d and %d share no common ancestor in any sector tree", a, b)
}

func pathDistance(w *world.World, chain []ids.EntityID) float64 {
	total := 0.0
	for i := 0; i+1 < len(chain); i++ {
		bi, _ := w.AstroBodies.Get(chain[i])
		bj, _ := w.AstroBodies.Get(chain[i+1])
		total += math.Abs(bi.OrbitDistance - bj.OrbitDistance)
	}
	return total
}

// Land requires the ship's current parent to be an astro body and room
// to be a can-exit room inside that body.
func Land(w *world.World, shipID, room ids.EntityID) error {
	parent, ok := w.Graph.Parent(shipID)
	if !ok {
		return errs.InvalidStatef("ship: %d has no current location", shipID)
	}
	if _, ok := w.AstroBodies.Get(parent); !ok {
		return errs.InvalidStatef("ship: %d is not in orbit of an astro body", shipID)
	}
	r, ok := w.Rooms.Get(room)
	if !ok || !r.CanExit {
		return errs.InvalidArgumentf("ship: %d is not a can-exit room", room)
	}
	roomParent, ok := w.Graph.Parent(room)
	if !ok || roomParent != parent {
		return errs.InvalidArgumentf("ship: room %d is not inside body %d", room, parent)
	}
	w.Graph.Set(shipID, room)
	return nil
}

// Launch requires the ship's current parent to be a can-exit room; it
// reparents the ship to the enclosing astro body at low orbit.
func Launch(w *world.World, shipID ids.EntityID) error {
	room, ok := w.Graph.Parent(shipID)
	if !ok {
		return errs.InvalidStatef("ship: %d has no current location", shipID)
	}
	r, ok := w.Rooms.Get(room)
	if !ok || !r.CanExit {
		return errs.InvalidStatef("ship: %d is not docked in a can-exit room", shipID)
	}
	body, ok := w.Graph.Parent(room)
	if !ok {
		return errs.InvalidStatef("ship: room %d has no enclosing body", room)
	}
	w.Graph.Set(shipID, body)
	if shipBody, ok := w.AstroBodies.Get(shipID); ok {
		shipBody.OrbitDistance = world.LowOrbit
		w.AstroBodies.Update(shipID, shipBody)
	}
	return nil
}

// Jump requires the ship's current parent to be a jump gate; it
// reparents the ship to the gate's paired gate's astro body, at low
// orbit.
func Jump(w *world.World, shipID ids.EntityID) error {
	parent, ok := w.Graph.Parent(shipID)
	if !ok {
		return errs.InvalidStatef("ship: %d has no current location", shipID)
	}
	gate, ok := w.AstroBodies.Get(parent)
	if !ok || gate.Kind != world.BodyJumpGate || gate.JumpTarget == nil {
		return errs.InvalidStatef("ship: %d is not near a jump gate", shipID)
	}
	if !w.AstroBodies.Exists(*gate.JumpTarget) {
		return errs.InvalidStatef("ship: paired gate %d does not exist", *gate.JumpTarget)
	}
	destination, ok := w.Graph.Parent(*gate.JumpTarget)
	if !ok {
		destination = *gate.JumpTarget
	}
	w.Graph.Set(shipID, destination)
	if shipBody, ok := w.AstroBodies.Get(shipID); ok {
		shipBody.OrbitDistance = world.LowOrbit
		w.AstroBodies.Update(shipID, shipBody)
	}
	return nil
}
