// Package events implements the kinded event/trigger bus of spec
// §4.4, a direct port of original_source's commons/src/trigger.rs
// (Trigger<T>): per-(kind, listener) cursors, GC to the minimum
// cursor, and events retained for kinds with zero listeners.
package events

// Kind tags the subject matter of an event (Decay, Killed, Spawn, ...).
type Kind int

const (
	KindSpawn Kind = iota
	KindKilled
	KindDecay
	KindShipArrived
	KindHealed
	KindRespawned
)

// Listener is an opaque handle returned by Register.
type Listener struct {
	id uint32
}

// Bus is a generic event queue: producers Push a value under a Kind,
// each registered Listener Takes every value posted to its Kind since
// its last Take, in insertion order.
type Bus[T any] struct {
	nextListener   uint32
	listenerKind   map[uint32]Kind
	cursors        map[Kind]map[uint32]int
	events         map[Kind][]T
}

// New returns an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{
		listenerKind: make(map[uint32]Kind),
		cursors:      make(map[Kind]map[uint32]int),
		events:       make(map[Kind][]T),
	}
}

// Register subscribes a new listener to kind and returns its handle.
// A listener registered mid-tick sees only events pushed after this
// call, never ones already pushed (spec §4.4).
func (b *Bus[T]) Register(kind Kind) Listener {
	l := b.nextListener
	b.nextListener++
	b.listenerKind[l] = kind
	cursors, ok := b.cursors[kind]
	if !ok {
		cursors = make(map[uint32]int)
		b.cursors[kind] = cursors
	}
	cursors[l] = len(b.events[kind])
	return Listener{id: l}
}

// Push appends event under kind. Kinds with no listeners still retain
// their events (spec §4.4), so a listener registered later sees
// nothing it missed, but GC can eventually drop them — see GC.
func (b *Bus[T]) Push(kind Kind, event T) {
	b.events[kind] = append(b.events[kind], event)
}

// Take returns every event of the listener's kind posted since its
// last Take (or Register), in insertion order, and advances its
// cursor. No event is ever delivered twice to the same listener.
func (b *Bus[T]) Take(l Listener) []T {
	kind, ok := b.listenerKind[l.id]
	if !ok {
		return nil
	}
	all := b.events[kind]
	cur := b.cursors[kind][l.id]
	if cur >= len(all) {
		return nil
	}
	out := append([]T(nil), all[cur:]...)
	b.cursors[kind][l.id] = len(all)
	return out
}

// Len returns the number of unconsumed-by-someone events across all
// kinds, used by internal/metrics as a queue-depth gauge.
func (b *Bus[T]) Len() int {
	total := 0
	for _, evs := range b.events {
		total += len(evs)
	}
	return total
}

// LenByKind returns how many events of kind are currently retained.
func (b *Bus[T]) LenByKind(kind Kind) int {
	return len(b.events[kind])
}

// GC drops events every registered listener of a kind has already
// taken, advancing the kind's retained slice to start at the minimum
// cursor across its listeners. Kinds with zero listeners are left
// untouched (nothing to advance to) so a late-registered listener
// still observes nothing new, per spec §4.4.
func (b *Bus[T]) GC() {
	for kind, evs := range b.events {
		cursors, ok := b.cursors[kind]
		if !ok || len(cursors) == 0 {
			continue
		}
		min := len(evs)
		for _, c := range cursors {
			if c < min {
				min = c
			}
		}
		if min == 0 {
			continue
		}
		b.events[kind] = append([]T(nil), evs[min:]...)
		for id, c := range cursors {
			cursors[id] = c - min
		}
	}
}
