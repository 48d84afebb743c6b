// Package timer implements the min-heap timer wheel of spec §4.5:
// future-dated events keyed by the world's monotonic clock, drained
// into the event bus at the start of each tick that reaches them.
package timer

import (
	"container/heap"
	"time"

	"ownworld/internal/events"
)

type entry struct {
	deadline time.Duration
	seq      uint64 // insertion order, breaks deadline ties FIFO
	event    events.Event
	kind     events.Kind
}

type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Wheel is a min-heap of (deadline, event) entries.
type Wheel struct {
	h       entryHeap
	nextSeq uint64
}

// New returns an empty timer wheel.
func New() *Wheel {
	w := &Wheel{}
	heap.Init(&w.h)
	return w
}

// Schedule enqueues event under kind to fire at deadline, an absolute
// world time. Deadlines are not required to be in clock order at call
// time; the wheel sorts them.
func (w *Wheel) Schedule(deadline time.Duration, kind events.Kind, event events.Event) {
	heap.Push(&w.h, entry{deadline: deadline, seq: w.nextSeq, event: event, kind: kind})
	w.nextSeq++
}

// Fired is one drained timer entry, paired with the Kind it should
// post to on the event bus.
type Fired struct {
	Kind  events.Kind
	Event events.Event
}

// AdvanceTo removes and returns, in deadline order (ties broken FIFO
// by schedule order), every entry with deadline <= now.
func (w *Wheel) AdvanceTo(now time.Duration) []Fired {
	var out []Fired
	for w.h.Len() > 0 && w.h[0].deadline <= now {
		e := heap.Pop(&w.h).(entry)
		out = append(out, Fired{Kind: e.kind, Event: e.event})
	}
	return out
}

// Peek returns the next deadline, if any entry is scheduled.
func (w *Wheel) Peek() (time.Duration, bool) {
	if w.h.Len() == 0 {
		return 0, false
	}
	return w.h[0].deadline, true
}

// Len returns the number of entries still scheduled.
func (w *Wheel) Len() int { return w.h.Len() }
