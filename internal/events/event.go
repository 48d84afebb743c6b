package events

import (
	"time"

	"ownworld/internal/ids"
)

// Event is the one event shape every Kind uses (spec §8: "every timer
// event targets a Kind with a consistent event shape"). Entity is the
// primary subject (the spawn rule, the mob that died, the item that
// decayed, the ship that moved); Target is a secondary entity when the
// kind needs one (the killer, the arrival body). A handler must
// re-check that Entity still has the matching command/state when the
// event fires — the event is a hint, never a promise (spec §9).
type Event struct {
	Entity ids.EntityID
	Target ids.EntityID
	At     time.Duration
}

// EntityBus is the event bus instance shared by the whole engine.
type EntityBus = Bus[Event]

// NewEntityBus returns an empty EntityBus.
func NewEntityBus() *EntityBus { return New[Event]() }
