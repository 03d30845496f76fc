package notify

import "unsafe"

// Callback is attached to an [Event] via [Dispatcher.Bind]. It receives the
// shared per-moment [EventData] and the user arg it was bound with.
type Callback func(ed *EventData, arg any)

// callbackID returns the identity of cb, used as the uniqueness key for a
// binding (spec §9: "the uniqueness key is the callback pointer, not a
// tuple of (callback, arg)"). Go function values are not comparable with
// ==, so the pointer held by the func value itself (its closure object) is
// used instead, not the shared code pointer. This deliberately means the
// same callback value bound twice compares equal, and distinct closures over
// the same literal do not: a direct analogue of C function-pointer identity.
func callbackID(cb Callback) uintptr {
	return *(*uintptr)(unsafe.Pointer(&cb))
}

// binding is one (callback, user-arg) record in an event's binding list
// (spec §3). pendingRemove/pendingAdd are the staged-mutation flags that
// let a dispatch in progress observe a consistent view of the list it
// started walking (spec §9).
type binding struct {
	id            uintptr
	cb            Callback
	arg           any
	record        []byte // backing allocation from the installed MemoryFunctions
	pendingRemove bool
	pendingAdd    bool
	next          *binding
}

// bindingList is the singly linked, insertion-ordered binding list of spec
// §3/§4.3. It is intentionally a plain linked list rather than a slice: a
// slice reallocation or shift would invalidate the pointer stability a
// concurrent walk-in-progress depends on.
type bindingList struct {
	head *binding
	tail *binding
}

func (l *bindingList) append(n *binding) {
	n.next = nil
	if l.tail == nil {
		l.head = n
		l.tail = n
		return
	}
	l.tail.next = n
	l.tail = n
}

// find returns the node with the given callback identity, live or not.
func (l *bindingList) find(id uintptr) *binding {
	for n := l.head; n != nil; n = n.next {
		if n.id == id {
			return n
		}
	}
	return nil
}

// unlink removes the node with the given id immediately. Reports whether a
// node was found and removed.
func (l *bindingList) unlink(id uintptr) bool {
	var prev *binding
	for n := l.head; n != nil; n = n.next {
		if n.id == id {
			if prev == nil {
				l.head = n.next
			} else {
				prev.next = n.next
			}
			if n == l.tail {
				l.tail = prev
			}
			n.next = nil
			freeRecord(n.record)
			return true
		}
		prev = n
	}
	return false
}

// cleanup is the post-walk pass of spec §4.3: unlink every node flagged
// pendingRemove, and clear pendingAdd on every node that survives, so the
// next dispatch of this event sees a fully live list.
func (l *bindingList) cleanup() {
	var prev *binding
	n := l.head
	for n != nil {
		next := n.next
		if n.pendingRemove {
			if prev == nil {
				l.head = next
			} else {
				prev.next = next
			}
			if n == l.tail {
				l.tail = prev
			}
			n.next = nil
			freeRecord(n.record)
			n = next
			continue
		}
		n.pendingAdd = false
		prev = n
		n = next
	}
}

// freeAll releases every remaining node's backing allocation, used when the
// owning event is destroyed along with its dispatcher (spec §4.5).
func (l *bindingList) freeAll() {
	for n := l.head; n != nil; n = n.next {
		freeRecord(n.record)
	}
	l.head = nil
	l.tail = nil
}
