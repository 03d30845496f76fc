package notify

// Event is a named attachment point for callbacks under one [Dispatcher]
// (spec §3). An Event never outlives its dispatcher: it is created by
// [Dispatcher.CreateEvent] and destroyed only by [Dispatcher.Destroy].
type Event struct {
	name       string
	nameBuf    []byte // backing allocation from the installed MemoryFunctions
	dispatcher *Dispatcher
	bindings   bindingList
}

// Name returns the event's name, in its original case (spec §4.2's get_name).
func (e *Event) Name() string {
	return e.name
}

// Source returns the identity of the dispatcher's source, by indirection
// through the owning dispatcher (spec §4.2's get_source).
func (e *Event) Source() any {
	return e.dispatcher.Source()
}

// appendBinding implements spec §4.2's append_binding: binding on an
// already-live callback is a no-op (position and arg unchanged); rebinding
// a callback that is pendingRemove clears the flag rather than appending a
// duplicate (spec §9); otherwise a fresh binding is appended, marked
// pendingAdd if this event is currently mid-dispatch, so the in-progress
// walk does not invoke it.
func (e *Event) appendBinding(cb Callback, arg any) error {
	id := callbackID(cb)
	if n := e.bindings.find(id); n != nil {
		if n.pendingRemove {
			n.pendingRemove = false
		}
		return nil
	}
	buf, err := allocRecord(bindingRecordSize, "bind: allocate binding record")
	if err != nil {
		return err
	}
	n := &binding{
		id:         id,
		cb:         cb,
		arg:        arg,
		record:     buf,
		pendingAdd: e.dispatcher.isDispatching(e),
	}
	e.bindings.append(n)
	return nil
}

// markUnbind implements spec §4.2's mark_unbind: a live binding is either
// flagged pendingRemove (if this event is currently mid-dispatch, so
// cleanup removes it after the walk) or unlinked immediately. Double-unbind
// and unbind of an unknown callback are silent no-ops (spec §4.7).
func (e *Event) markUnbind(cb Callback) {
	id := callbackID(cb)
	n := e.bindings.find(id)
	if n == nil || n.pendingRemove {
		return
	}
	if e.dispatcher.isDispatching(e) {
		n.pendingRemove = true
		return
	}
	e.bindings.unlink(id)
}
