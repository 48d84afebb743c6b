// Package world wires every component repository, the location graph,
// the event bus, the timer wheel, the id allocator and the shared RNG
// into one World, and owns entity removal (spec §3 "Lifecycle").
package world

import (
	"time"

	"ownworld/internal/ids"
)

// Time is world-simulation time: a duration since the world's epoch.
// Using a duration instead of a wall-clock timestamp keeps the engine
// fully deterministic and trivially serializable (spec §5: the engine
// has its own monotonic clock, independent of wall time).
type Time = time.Duration

// Direction is one of the canonical movement directions of spec §6.
type Direction string

const (
	North Direction = "n"
	South Direction = "s"
	East  Direction = "e"
	West  Direction = "w"
	Up    Direction = "u"
	Down  Direction = "d"
)

// Label is the short name + code token + long description every mob,
// item, ship and room must carry (spec §3).
type Label struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// RoomExit is one directed edge out of a room.
type RoomExit struct {
	Direction Direction      `json:"direction"`
	RoomID    ids.EntityID   `json:"room_id"`
}

// Room lists a room's exits and whether it is legal to leave the
// containing vehicle from it (spec §3).
type Room struct {
	Exits   []RoomExit `json:"exits"`
	CanExit bool       `json:"can_exit"`
}

// ExitTo returns the neighbour room id for a direction, if one exists.
func (r Room) ExitTo(dir Direction) (ids.EntityID, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e.RoomID, true
		}
	}
	return 0, false
}

// MobCommandKind is the player/AI-issued high-level order a mob is
// currently under.
type MobCommandKind int

const (
	MobIdle MobCommandKind = iota
	MobKill
)

// MobCommand is a mob's current order.
type MobCommand struct {
	Kind   MobCommandKind `json:"kind"`
	Target ids.EntityID   `json:"target,omitempty"`
}

// ActionState is a mob's current activity, distinct from its command
// (spec §3: "action state (none | combat | resting)").
type ActionState int

const (
	ActionNone ActionState = iota
	ActionCombat
	ActionResting
)

// Attributes is the dice-relevant stat block of a mob (spec §3).
type Attributes struct {
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	DamageMin      int `json:"damage_min"`
	DamageMax      int `json:"damage_max"`
	HPCurrent      int `json:"hp_current"`
	HPMax          int `json:"hp_max"`
	DamageReduction int `json:"damage_reduction"`
}

// Mob is the full combat/AI-relevant state of a non-player or avatar
// creature (spec §3).
type Mob struct {
	Attributes       Attributes     `json:"attributes"`
	XP               int            `json:"xp"`
	IsAvatar         bool           `json:"is_avatar"`
	Command          MobCommand     `json:"command"`
	Action           ActionState    `json:"action"`
	NextAttackTime   Time           `json:"next_attack_time"`
	NextHealTime     Time           `json:"next_heal_time"`
	HealRate         Time           `json:"heal_rate"`
	AttackCooldown   Time           `json:"attack_cooldown"`
	Followers        []ids.EntityID `json:"followers,omitempty"`
}

// IsReadyToAttack reports whether enough time has passed since the
// last attack for mob to attack again.
func (m Mob) IsReadyToAttack(now Time) bool { return now >= m.NextAttackTime }

// Weapon is an item's combat bonus when equipped (spec §3).
type Weapon struct {
	DamageMin  int  `json:"damage_min"`
	DamageMax  int  `json:"damage_max"`
	AttackMod  int  `json:"attack_mod"`
	Cooldown   Time `json:"cooldown"`
}

// Armor is an item's defensive bonus when equipped (spec §3).
type Armor struct {
	RD        int `json:"rd"`
	DefenseMod int `json:"defense_mod"`
}

// Item is the full state of a world object that can be carried,
// equipped, traded, or decayed (spec §3).
type Item struct {
	DecayDeadline    *Time   `json:"decay_deadline,omitempty"`
	Amount           int     `json:"amount"`
	Weapon           *Weapon `json:"weapon,omitempty"`
	Armor            *Armor  `json:"armor,omitempty"`
	Weight           float64 `json:"weight"`
	Money            bool    `json:"money"`
	InventoryCapable bool    `json:"inventory_capable"`
	Stuck            bool    `json:"stuck"`
	Corpse           bool    `json:"corpse"`
}

// InventoryCap is the maximum carry-weight of a container entity; the
// current weight is always derived, never stored (spec §3 invariant).
type InventoryCap struct {
	MaxWeight float64 `json:"max_weight"`
}

// Equip is the set of item ids a mob currently has equipped.
type Equip struct {
	Items []ids.EntityID `json:"items,omitempty"`
}

// ShipCommandKind is a ship's current state-machine state (spec §4.11).
type ShipCommandKind int

const (
	ShipIdle ShipCommandKind = iota
	ShipMovingTo
)

// ShipCommand is a ship's movement order.
type ShipCommand struct {
	Kind    ShipCommandKind `json:"kind"`
	Target  ids.EntityID    `json:"target,omitempty"`
	Arrival Time            `json:"arrival,omitempty"`
}

// Ship is a ship's movement state (spec §3).
type Ship struct {
	Command ShipCommand `json:"command"`
	Speed   float64     `json:"speed"`
}

// AstroBodyKind enumerates the kinds of celestial/artificial bodies a
// sector tree can contain (spec §3).
type AstroBodyKind int

const (
	BodyStar AstroBodyKind = iota
	BodyPlanet
	BodyMoon
	BodyJumpGate
	BodyAsteroidField
	BodyShip
	BodyStation
)

// AstroBody places an entity in a sector's 1D orbital-distance tree.
type AstroBody struct {
	Kind          AstroBodyKind `json:"kind"`
	OrbitDistance float64       `json:"orbit_distance"`
	JumpTarget    *ids.EntityID `json:"jump_target,omitempty"`
}

// LowOrbit is the fixed orbital distance a ship is placed at when it
// arrives at or launches to a body, mirroring the original's
// AstroBody::get_low_orbit.
const LowOrbit = 0.1

// Sector marks the root of a star-system body tree.
type Sector struct{}

// Position is a 2D coordinate used only for sector-level map display
// (spec §3; spec explicitly scopes out spatial physics beyond this).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Spawn is a population-control rule: instantiate Prefab at this
// entity's location whenever fewer than Max instances are owned by it.
type Spawn struct {
	Prefab        ids.EntityID `json:"prefab"`
	Max           int          `json:"max"`
	DelayMin      Time         `json:"delay_min"`
	DelayMax      Time         `json:"delay_max"`
	NextScheduled *Time        `json:"next_scheduled,omitempty"`
}

// Vendor marks an entity as able to buy/sell via Price.
type Vendor struct{}

// PriceEntry is one prefab's buy/sell price at a vendor.
type PriceEntry struct {
	Buy  int `json:"buy"`
	Sell int `json:"sell"`
}

// Price is a vendor's price list, keyed by prefab static id.
type Price struct {
	Entries map[ids.EntityID]PriceEntry `json:"entries"`
}

// AICommandKind enumerates the behaviors an AI-controlled mob can run
// (spec §4.10).
type AICommandKind int

const (
	AIIdle AICommandKind = iota
	AIAggressive
	AIPassive
	AIFollowProtect
	AIHauler
	AIExtract
)

// HaulerState is the Hauler AI's sub-state machine (spec §4.10).
type HaulerState int

const (
	HaulerGoToFrom HaulerState = iota
	HaulerLoad
	HaulerGoToTo
	HaulerUnload
)

// AICommand is the behavior an AI-controlled mob currently runs.
type AICommand struct {
	Kind         AICommandKind `json:"kind"`
	Leader       ids.EntityID  `json:"leader,omitempty"`
	From         ids.EntityID  `json:"from,omitempty"`
	To           ids.EntityID  `json:"to,omitempty"`
	HaulerState  HaulerState   `json:"hauler_state,omitempty"`
	Carrying     ids.EntityID  `json:"carrying,omitempty"`
	ExtractFrom  ids.EntityID  `json:"extract_from,omitempty"`
	ExtractRate  Time          `json:"extract_rate,omitempty"`
	NextExtract  Time          `json:"next_extract,omitempty"`
	ExtractYield ids.EntityID  `json:"extract_yield,omitempty"`
}

// AI is the AI command plus whether an owner may change it.
type AI struct {
	Command     AICommand `json:"command"`
	Commandable bool      `json:"commandable"`
}

// Hire is the cost in money units to recruit a commandable AI mob.
type Hire struct {
	Cost int `json:"cost"`
}

// Player binds a login string to the avatar mob it controls.
type Player struct {
	Login  string       `json:"login"`
	Avatar ids.EntityID `json:"avatar"`
}

// RandomRoomZone is a declarative request to generate a connected grid
// of rooms the first time the zone is instantiated (spec §4.16).
type RandomRoomZone struct {
	Seed              uint64       `json:"seed"`
	Width             int          `json:"width"`
	Height            int          `json:"height"`
	EntranceRoom      ids.EntityID `json:"entrance_room"`
	EntranceDirection Direction    `json:"entrance_direction"`
	Generated         bool         `json:"generated"`
}
