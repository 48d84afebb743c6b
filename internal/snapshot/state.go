package snapshot

import (
	"encoding/json"

	"ownworld/internal/errs"
	"ownworld/internal/ids"
	"ownworld/internal/prefab"
	"ownworld/internal/world"
)

const (
	headerClock     = "clock"
	headerTick      = "tick"
	headerNextRunID = "next_runtime_id"
)

// Build assembles the full set of headers and the entity-record
// document for w, ready for Encode.
func Build(w *world.World) ([]Header, prefab.Document) {
	clockJSON, _ := json.Marshal(w.Clock)
	tickJSON, _ := json.Marshal(w.TickCount)
	nextIDJSON, _ := json.Marshal(w.Allocator.NextRuntime())

	headers := []Header{
		{Name: headerClock, Value: clockJSON},
		{Name: headerTick, Value: tickJSON},
		{Name: headerNextRunID, Value: nextIDJSON},
	}
	return headers, prefab.Snapshot(w)
}

// Save returns the encoded byte stream for w (spec.md §4.15).
func Save(w *world.World) ([]byte, error) {
	headers, doc := Build(w)
	return Encode(headers, doc)
}

// Restore decodes data and applies it to w: headers first (clock,
// tick, id-allocator floor), then every entity record via prefab.Load.
// w should be freshly constructed; Restore does not clear existing
// state first.
func Restore(data []byte, w *world.World) error {
	headers, doc, err := Decode(data)
	if err != nil {
		return err
	}
	for _, h := range headers {
		switch h.Name {
		case headerClock:
			var clock world.Time
			if err := json.Unmarshal(h.Value, &clock); err != nil {
				return errs.InvalidStatef("snapshot: bad clock header: %v", err)
			}
			w.Clock = clock
		case headerTick:
			var tick int64
			if err := json.Unmarshal(h.Value, &tick); err != nil {
				return errs.InvalidStatef("snapshot: bad tick header: %v", err)
			}
			w.TickCount = tick
		case headerNextRunID:
			var next ids.EntityID
			if err := json.Unmarshal(h.Value, &next); err != nil {
				return errs.InvalidStatef("snapshot: bad next-id header: %v", err)
			}
			w.Allocator.RestoreNextRuntime(next)
		}
	}
	return prefab.Load(doc, w)
}
