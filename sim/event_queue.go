package sim

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"
)

// eventHeap implements heap.Interface and orders events by (Time, Seq).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Seq < h[j].Seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = Event{}
	*h = old[:n-1]
	return item
}

// EventQueue holds the simulation clock and the pending wake-ups.
// The clock only moves forward: PopNext advances it to the popped event's
// time, and the scheduler moves it to the run horizon when Run returns.
//
// Thread-safety: NOT thread-safe. Owned by a single Simulator.
type EventQueue struct {
	now    float64
	seq    uint64
	events eventHeap
}

// NewEventQueue creates an empty queue with the clock at zero.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Now returns the current simulation time.
func (q *EventQueue) Now() float64 {
	return q.now
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}

// Schedule inserts a wake-up for target at now+delay. A zero delay is legal and
// runs after every event already queued for the current time.
func (q *EventQueue) Schedule(delay float64, target *Process, sig signal) error {
	if delay < 0 || math.IsNaN(delay) {
		return errors.Wrapf(ErrInvalidDelay, "delay %v", delay)
	}
	q.seq++
	heap.Push(&q.events, Event{
		Time:   q.now + delay,
		Seq:    q.seq,
		target: target,
		signal: sig,
	})
	return nil
}

// PeekNextTime returns the earliest scheduled time, or false if the queue is empty.
func (q *EventQueue) PeekNextTime() (float64, bool) {
	if q.events.Len() == 0 {
		return 0, false
	}
	return q.events[0].Time, true
}

// PopNext removes the earliest event and advances the clock to its time.
func (q *EventQueue) PopNext() (Event, bool) {
	if q.events.Len() == 0 {
		return Event{}, false
	}
	ev := heap.Pop(&q.events).(Event)
	if ev.Time > q.now {
		q.now = ev.Time
	}
	return ev, true
}

// advanceTo moves the clock forward to t. Earlier values are ignored.
func (q *EventQueue) advanceTo(t float64) {
	if t > q.now {
		q.now = t
	}
}

// clear drops every pending event. The clock is unchanged.
func (q *EventQueue) clear() {
	q.events = q.events[:0]
}
