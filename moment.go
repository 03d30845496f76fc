package notify

import "github.com/google/uuid"

// EventData is the payload a [Callback] receives, shared across every
// callback invoked for one moment (spec §4.4). Handled is sticky: once any
// callback sets it true, it is never reset to false for the remainder of
// the moment (spec §4.6).
type EventData struct {
	Source   any
	Name     string
	Notifier *Event
	Data     any
	Pool     *Arena
	Handled  bool
}

// ResultCallback is invoked once after every eligible binding of a moment's
// event has run, with the final aggregated Handled value (spec §4.4, §4.6).
type ResultCallback func(ed *EventData, handled bool, arg any)

// Moment is the trigger record of spec §3/§4.4: a pre-allocated bundle
// carrying the payload and the optional result callback/arg, existing so
// triggering can avoid allocating at the call site when the caller used
// [Dispatcher.PrepareTrigger]. The per-trigger handled flag is not stored
// here; it lives on the [EventData] built when the moment is dispatched.
type Moment struct {
	id       uuid.UUID
	event    *Event
	data     any
	resultCB ResultCallback
	resultA  any
	record   []byte // backing allocation from the installed MemoryFunctions
	prepared bool   // true if this record came from PrepareTrigger, surfaced in dispatch logs
}

// momentQueue is the FIFO of pending moments described in spec §4.4: moments
// enqueued during a dispatch are appended, and the active dispatch loop
// drains the queue strictly in enqueue order (the "breadth-first property").
// It is a slice with a read cursor rather than a linked list, since nothing
// outside the queue needs a stable pointer to a queued (as opposed to
// in-flight) moment; WithQueueCapacityHint pre-sizes the backing slice.
type momentQueue struct {
	items []*Moment
	head  int
}

func newMomentQueue(capacityHint int) momentQueue {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return momentQueue{items: make([]*Moment, 0, capacityHint)}
}

func (q *momentQueue) push(m *Moment) {
	q.items = append(q.items, m)
}

func (q *momentQueue) pop() *Moment {
	if q.head >= len(q.items) {
		return nil
	}
	m := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return m
}

func (q *momentQueue) empty() bool {
	return q.head >= len(q.items)
}
