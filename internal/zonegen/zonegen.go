// Package zonegen implements the seeded random-room zone generator of
// spec.md §4.16: a connected grid of rooms generated once per zone,
// from its own seed rather than the world's shared RNG, so that
// regenerating (or testing) one zone never perturbs any other
// stochastic subsystem's draw sequence.
package zonegen

import (
	"ownworld/internal/errs"
	"ownworld/internal/ids"
	"ownworld/internal/rng"
	"ownworld/internal/world"
)

// PortalProbability is the independent per-wall chance of a portal
// before the connectivity-repair pass runs.
const PortalProbability = 0.45

type cellPos struct{ x, y int }

func (c cellPos) index(width int) int { return c.y*width + c.x }

// Generate instantiates zoneEntity's RandomRoomZone, if it has not
// already run (the generated-flag makes this idempotent across
// ticks). It creates one Room entity per grid cell, parented to
// zoneEntity, wires interior portals, guarantees every cell is
// reachable, and connects the chosen entrance cell to entranceRoom via
// the zone's configured direction.
func Generate(w *world.World, zoneEntity ids.EntityID) error {
	zone, ok := w.RandomZones.Get(zoneEntity)
	if !ok {
		return errs.NotFoundf("zonegen: %d has no RandomRoomZone", zoneEntity)
	}
	if zone.Generated {
		return nil
	}
	if zone.Width <= 0 || zone.Height <= 0 {
		return errs.InvalidArgumentf("zonegen: zone %d has non-positive dimensions %dx%d", zoneEntity, zone.Width, zone.Height)
	}

	r := rng.New(zone.Seed)
	width, height := zone.Width, zone.Height
	n := width * height

	horizontalWall := make([][]bool, height)
	verticalWall := make([][]bool, height)
	for y := 0; y < height; y++ {
		horizontalWall[y] = make([]bool, width)
		verticalWall[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x < width-1 {
				horizontalWall[y][x] = r.Bool(PortalProbability)
			}
			if y < height-1 {
				verticalWall[y][x] = r.Bool(PortalProbability)
			}
		}
	}

	portalEast := func(x, y int) bool { return x < width-1 && horizontalWall[y][x] }
	portalSouth := func(x, y int) bool { return y < height-1 && verticalWall[y][x] }

	visited := make([]bool, n)
	visited[0] = true
	frontier := []cellPos{{0, 0}}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		neighbors := []cellPos{}
		if cur.x > 0 {
			neighbors = append(neighbors, cellPos{cur.x - 1, cur.y})
		}
		if cur.x < width-1 {
			neighbors = append(neighbors, cellPos{cur.x + 1, cur.y})
		}
		if cur.y > 0 {
			neighbors = append(neighbors, cellPos{cur.x, cur.y - 1})
		}
		if cur.y < height-1 {
			neighbors = append(neighbors, cellPos{cur.x, cur.y + 1})
		}
		for _, nb := range neighbors {
			if visited[nb.index(width)] {
				continue
			}
			visited[nb.index(width)] = true
			connect(horizontalWall, verticalWall, cur, nb)
			frontier = append(frontier, nb)
		}
	}
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		cell := cellPos{i % width, i / width}
		neighbor, ok := anyVisitedNeighbor(visited, width, height, cell)
		if !ok {
			return errs.InvalidStatef("zonegen: cell %d has no grid neighbour at all", i)
		}
		visited[i] = true
		connect(horizontalWall, verticalWall, cell, neighbor)
	}

	roomIDs := make([]ids.EntityID, n)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := w.Allocator.Fresh()
			roomIDs[cellPos{x, y}.index(width)] = id
			w.Rooms.Add(id, world.Room{CanExit: true})
			w.Labels.Add(id, world.Label{Name: "Room", Code: "room"})
			w.Graph.Set(id, zoneEntity)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			here := roomIDs[cellPos{x, y}.index(width)]
			if portalEast(x, y) {
				there := roomIDs[cellPos{x + 1, y}.index(width)]
				addExit(w, here, world.East, there)
				addExit(w, there, world.West, here)
			}
			if portalSouth(x, y) {
				there := roomIDs[cellPos{x, y + 1}.index(width)]
				addExit(w, here, world.South, there)
				addExit(w, there, world.North, here)
			}
		}
	}

	entranceCell := entranceCellFor(zone.EntranceDirection, width, height)
	entranceCellRoom := roomIDs[entranceCell.index(width)]
	addExit(w, zone.EntranceRoom, zone.EntranceDirection, entranceCellRoom)
	addExit(w, entranceCellRoom, opposite(zone.EntranceDirection), zone.EntranceRoom)

	zone.Generated = true
	w.RandomZones.Update(zoneEntity, zone)
	return nil
}

func connect(horizontalWall, verticalWall [][]bool, a, b cellPos) {
	if a.y == b.y {
		x := a.x
		if b.x < a.x {
			x = b.x
		}
		horizontalWall[a.y][x] = true
		return
	}
	y := a.y
	if b.y < a.y {
		y = b.y
	}
	verticalWall[y][a.x] = true
}

func anyVisitedNeighbor(visited []bool, width, height int, cell cellPos) (cellPos, bool) {
	candidates := []cellPos{
		{cell.x - 1, cell.y}, {cell.x + 1, cell.y},
		{cell.x, cell.y - 1}, {cell.x, cell.y + 1},
	}
	for _, c := range candidates {
		if c.x < 0 || c.x >= width || c.y < 0 || c.y >= height {
			continue
		}
		if visited[c.index(width)] {
			return c, true
		}
	}
	return cellPos{}, false
}

func addExit(w *world.World, from ids.EntityID, dir world.Direction, to ids.EntityID) {
	room, ok := w.Rooms.Get(from)
	if !ok {
		return
	}
	room.Exits = append(room.Exits, world.RoomExit{Direction: dir, RoomID: to})
	w.Rooms.Update(from, room)
}

func opposite(dir world.Direction) world.Direction {
	switch dir {
	case world.North:
		return world.South
	case world.South:
		return world.North
	case world.East:
		return world.West
	case world.West:
		return world.East
	case world.Up:
		return world.Down
	case world.Down:
		return world.Up
	default:
		return dir
	}
}

// entranceCellFor resolves the open "column 0 vs. cell 0" phrasing of
// spec.md §4.16 step 5 as: the entrance always sits in column 0, at
// the row matching its direction (row 0 for East, vertical midpoint
// for North/South/other), since both of the spec's own examples place
// it at x=0 (see DESIGN.md Open Question O5).
func entranceCellFor(dir world.Direction, width, height int) cellPos {
	switch dir {
	case world.East:
		return cellPos{0, 0}
	default:
		return cellPos{0, height / 2}
	}
}
