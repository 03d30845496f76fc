package notify

import (
	"github.com/google/uuid"
)

// Dispatcher is the per-source coordinator owning events and the moment
// queue (spec §3). A Dispatcher is not safe for concurrent use from
// multiple goroutines; it is safe, by design, for reentrant use from
// callbacks it is itself currently invoking (spec §5).
type Dispatcher struct {
	id     uuid.UUID
	source any

	index nameIndex
	queue momentQueue

	running        bool
	destroyPending bool
	destroyed      bool

	// currentMoment is the moment the dispatch loop is presently walking,
	// used by Bind/Unbind to detect the "is this event being dispatched
	// right now" condition of spec §4.2/§4.3.
	currentMoment *Moment

	logger *Logger
}

// New creates a dispatcher bound to source, an opaque caller-supplied
// identity (spec §3, §6 dispatcher_create). source is compared only by ==
// for identity, never dereferenced by this package.
func New(source any, opts ...Option) *Dispatcher {
	cfg := resolveOptions(opts)
	d := &Dispatcher{
		id:     uuid.New(),
		source: source,
		index:  newNameIndex(),
		queue:  newMomentQueue(cfg.queueCapacityHint),
		logger: cfg.logger,
	}
	d.log().Trace().Str("dispatcher", d.id.String()).Log("dispatcher created")
	return d
}

func (d *Dispatcher) log() *Logger {
	if d.logger != nil {
		return d.logger
	}
	return globalLogger()
}

// Source returns the dispatcher's source identity (spec §6 get_source).
func (d *Dispatcher) Source() any {
	return d.source
}

// isDispatching reports whether e is the event the dispatch loop is
// presently walking -- the condition spec §4.2/§4.3 calls "the event is
// currently being dispatched". It is false once the loop has moved on to
// cleanup or to the next moment in the queue.
func (d *Dispatcher) isDispatching(e *Event) bool {
	return d.currentMoment != nil && d.currentMoment.event == e
}

// CreateEvent declares a new named event under the dispatcher (spec §6
// create_event). Event names are compared case-insensitively but stored
// verbatim; declaring a duplicate folded name fails with
// [ErrDuplicateEventName], and an empty name fails with [ErrEmptyEventName].
// Neither failure mutates the dispatcher.
func (d *Dispatcher) CreateEvent(name string) (*Event, error) {
	if d.destroyed {
		return nil, ErrDispatcherDestroyed
	}
	if name == "" {
		return nil, ErrEmptyEventName
	}
	if _, exists := d.index.get(name); exists {
		return nil, ErrDuplicateEventName
	}
	buf, err := allocRecord(eventNameRecordSize, "create_event: allocate owned name storage")
	if err != nil {
		return nil, err
	}
	e := &Event{name: name, nameBuf: buf, dispatcher: d}
	if !d.index.putIfAbsent(name, e) {
		// lost a race against itself: the get() above already observed
		// "absent", so putIfAbsent can only fail here if called twice with
		// the same folded key, which get() already ruled out.
		freeRecord(buf)
		return nil, ErrDuplicateEventName
	}
	d.log().Debug().Str("dispatcher", d.id.String()).Str("event", name).Log("event declared")
	return e, nil
}

// GetEvent looks up a previously declared event by name, case-insensitively
// (spec §6 get_event).
func (d *Dispatcher) GetEvent(name string) (*Event, bool) {
	return d.index.get(name)
}

// Bind attaches cb to event with the given user arg (spec §6 bind). Binding
// an already-live callback is a no-op: it does not move the binding's
// position in the list and does not update arg (spec §3, §8).
func (d *Dispatcher) Bind(event *Event, cb Callback, arg any) error {
	if d.destroyed {
		return ErrDispatcherDestroyed
	}
	return event.appendBinding(cb, arg)
}

// Unbind detaches cb from event (spec §6 unbind). It is a silent no-op if
// cb was never bound, or was already unbound (spec §4.7).
func (d *Dispatcher) Unbind(event *Event, cb Callback) {
	event.markUnbind(cb)
}

// PrepareTrigger allocates a reusable trigger record up front, for callers
// that must later trigger under conditions where allocation is intolerable
// (spec §6 prepare_trigger).
func (d *Dispatcher) PrepareTrigger() (*Moment, error) {
	buf, err := allocRecord(momentRecordSize, "prepare_trigger: allocate moment record")
	if err != nil {
		return nil, err
	}
	return &Moment{id: uuid.New(), prepared: true, record: buf}, nil
}

// UnprepareTrigger releases a prepared moment that was never enqueued (spec
// §6 unprepare_trigger). Calling it on a moment that was already triggered
// is a programmer error; this package does not attempt to detect it.
func (d *Dispatcher) UnprepareTrigger(m *Moment) {
	if m == nil {
		return
	}
	freeRecord(m.record)
	m.record = nil
}

// Trigger enqueues a moment for event with the given payload and optional
// result callback, then drains the dispatcher's moment queue breadth-first
// if it was not already draining (spec §4.4 trigger). If the dispatcher is
// already running -- i.e. this call originated from within a callback --
// Trigger only enqueues; the outer drain loop processes it in turn.
func (d *Dispatcher) Trigger(event *Event, data any, resultCB ResultCallback, resultArg any) error {
	if d.destroyed {
		return ErrDispatcherDestroyed
	}
	buf, err := allocRecord(momentRecordSize, "trigger: allocate moment record")
	if err != nil {
		return err
	}
	m := &Moment{id: uuid.New(), event: event, data: data, resultCB: resultCB, resultA: resultArg, record: buf}
	d.enqueueAndMaybeDrain(m)
	return nil
}

// TriggerPrepared is identical to Trigger but reuses a moment allocated by
// [Dispatcher.PrepareTrigger] (spec §6 trigger_prepared): it never fails.
// Ownership of the record returns to the caller once the result callback
// (if any) has run, but the record is single-use -- it must not be
// triggered a second time.
func (d *Dispatcher) TriggerPrepared(event *Event, data any, resultCB ResultCallback, resultArg any, m *Moment) {
	if d.destroyed {
		return
	}
	m.event = event
	m.data = data
	m.resultCB = resultCB
	m.resultA = resultArg
	d.enqueueAndMaybeDrain(m)
}

func (d *Dispatcher) enqueueAndMaybeDrain(m *Moment) {
	d.queue.push(m)
	d.log().Trace().
		Str("dispatcher", d.id.String()).
		Str("event", m.event.name).
		Str("moment", m.id.String()).
		Log("moment enqueued")
	if d.running {
		return
	}
	d.drain()
}

// drain is the breadth-first dispatch loop of spec §4.4: while the queue is
// non-empty, pop the head moment, walk a snapshot of its event's binding
// list (spec §4.3), run the cleanup pass, invoke the result callback, then
// free the moment. Moments enqueued by a callback during this loop (by a
// nested Trigger call) are appended to the same queue and drained after the
// moment currently being walked finishes -- never recursed into -- which is
// what gives outer-before-inner breadth-first ordering across events.
func (d *Dispatcher) drain() {
	d.running = true
	runningDispatchers.Add(1)
	defer func() {
		runningDispatchers.Add(-1)
		d.running = false
		d.currentMoment = nil
		if d.destroyPending {
			d.destroyNow()
		}
	}()

	for !d.queue.empty() {
		d.dispatchMoment(d.queue.pop())
	}
}

func (d *Dispatcher) dispatchMoment(m *Moment) {
	d.currentMoment = m

	arena := acquireArena()
	ed := &EventData{
		Source:   d.source,
		Name:     m.event.name,
		Notifier: m.event,
		Data:     m.data,
		Pool:     arena,
	}

	for n := m.event.bindings.head; n != nil; n = n.next {
		// pendingRemove is deliberately not checked here: a node marked
		// pendingRemove mid-walk is exactly a later peer that a still-running
		// callback unbound (spec §9). It must still fire this dispatch;
		// cleanup removes it afterward. pendingRemove is never observed on a
		// node before a walk starts -- cleanup unlinks those between
		// dispatches, and appendBinding clears the flag on rebind.
		if n.pendingAdd {
			continue
		}
		n.cb(ed, n.arg)
	}
	d.currentMoment = nil

	m.event.bindings.cleanup()

	d.log().Debug().
		Str("dispatcher", d.id.String()).
		Str("event", m.event.name).
		Str("moment", m.id.String()).
		Bool("prepared", m.prepared).
		Any("handled", ed.Handled).
		Log("moment dispatched")

	if m.resultCB != nil {
		m.resultCB(ed, ed.Handled, m.resultA)
	}

	releaseArena(arena)
	freeRecord(m.record)
	m.record = nil
}

// Destroy releases the dispatcher's events, bindings, and moment queue
// (spec §4.5). If called from outside any callback, destruction happens
// immediately. If called reentrantly, from within a callback the
// dispatcher is itself currently invoking, destruction is deferred until
// the outermost Trigger call's drain loop returns (spec §5's "Deferred
// destroy" rule); the dispatcher must not be used again after Destroy
// returns, even though the underlying state may not yet be freed.
func (d *Dispatcher) Destroy() {
	if d.destroyed || d.destroyPending {
		return
	}
	if d.running {
		d.destroyPending = true
		d.log().Trace().Str("dispatcher", d.id.String()).Log("destroy deferred: dispatcher mid-trigger")
		return
	}
	d.destroyNow()
}

func (d *Dispatcher) destroyNow() {
	for _, e := range d.index.byFoldedName {
		e.bindings.freeAll()
		freeRecord(e.nameBuf)
		e.nameBuf = nil
	}
	for m := d.queue.pop(); m != nil; m = d.queue.pop() {
		freeRecord(m.record)
	}
	d.index = nameIndex{}
	d.queue = momentQueue{}
	d.destroyPending = false
	d.destroyed = true
	d.log().Debug().Str("dispatcher", d.id.String()).Log("dispatcher destroyed")
}

// Stats is a read-only observability snapshot (SPEC_FULL.md E.4). It is
// ambient, not part of the original spec's API surface, and never affects
// dispatch ordering.
type Stats struct {
	EventCount int
	QueueDepth int
	Running    bool
}

// Stats returns a snapshot of the dispatcher's current state.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		EventCount: len(d.index.byFoldedName),
		QueueDepth: len(d.queue.items) - d.queue.head,
		Running:    d.running,
	}
}
