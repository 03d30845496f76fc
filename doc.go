// Package notify provides a named-event dispatcher supporting reentrant,
// breadth-first event triggering with safe mutation of the binding set from
// within callbacks.
//
// # Architecture
//
// A caller owns a source (an opaque identity), creates a [Dispatcher] bound
// to that source, declares named [Event]s under the dispatcher, attaches
// callbacks to events via [Dispatcher.Bind], and triggers events with
// per-invocation payload data via [Dispatcher.Trigger]. Callbacks may, while
// executing, freely bind new callbacks, unbind callbacks (including
// themselves and peers), trigger further events, and even destroy the
// dispatcher, without corrupting iteration or producing use-after-free.
//
// # Reentrancy model
//
// This is a concurrent-looking but strictly single-threaded, cooperative,
// reentrant system. Mutations requested during an active dispatch (binds,
// unbinds) are staged on the affected binding node and applied only once the
// dispatch loop finishes walking the snapshot it started with. New triggers
// produced during a dispatch are appended to a FIFO moment queue rather than
// recursed into, giving breadth-first ordering: all callbacks of the event
// currently being walked complete before any callback of an event triggered
// from one of them runs. Destruction requested from inside a callback is
// deferred until the outermost dispatch returns.
//
// # Thread safety
//
// A [Dispatcher] is not safe for concurrent use from multiple goroutines.
// All operations, including reentrant ones driven from callbacks, must occur
// on the goroutine that owns the dispatcher. This is a deliberate match to
// the single-threaded reentrancy model described above, not an oversight.
package notify
