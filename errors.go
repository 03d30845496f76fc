package notify

import (
	"errors"
	"fmt"
)

// Kind classifies a dispatcher failure, matching the status enum consumed by
// the embedding API (spec §6/§7).
type Kind int

const (
	// NoMemory indicates any allocation failure anywhere below the API.
	NoMemory Kind = iota
	// InvalidArg indicates a malformed caller argument, e.g. an empty event name.
	InvalidArg
	// InvalidState indicates an operation that conflicts with current state,
	// e.g. declaring a duplicate event name.
	InvalidState
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case NoMemory:
		return "no_memory"
	case InvalidArg:
		return "invalid_arg"
	case InvalidState:
		return "invalid_state"
	default:
		return "unknown"
	}
}

// Error is the error value a fallible operation returns. It carries a [Kind]
// and an optional wrapped cause, in the style of [eventloop]'s TypeError/
// RangeError/TimeoutError cause-chain errors.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message == "":
		return "notify: " + e.Kind.String()
	case e.Cause != nil:
		return fmt.Sprintf("notify: %s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("notify: %s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the wrapped cause, if any, for use with [errors.Is] and [errors.As].
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements the bare-probe matching form errors.Is(err, &Error{Kind:
// NoMemory}) — target matches any error of the same Kind, but only when
// target carries no Message of its own. Named sentinels (ErrEmptyEventName,
// ErrDuplicateEventName, ErrDispatcherDestroyed, ...) are not collapsed into
// each other by this method: errors.Is already matches those by pointer
// identity before ever consulting Is, so giving Kind alone the power to
// match here would make every InvalidState sentinel indistinguishable from
// every other.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || other.Message != "" {
		return false
	}
	return other.Kind == e.Kind
}

// newError constructs an *Error, optionally wrapping cause.
func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

var (
	// ErrEmptyEventName is returned by [Dispatcher.CreateEvent] for an empty name (§4.1, §7).
	ErrEmptyEventName = &Error{Kind: InvalidArg, Message: "event name must not be empty"}

	// ErrDuplicateEventName is returned by [Dispatcher.CreateEvent] for a name
	// already present under case-insensitive folding (§4.1, §7).
	ErrDuplicateEventName = &Error{Kind: InvalidState, Message: "event name already declared"}

	// ErrDispatcherDestroyed is returned by [Dispatcher.CreateEvent],
	// [Dispatcher.Bind] and [Dispatcher.Trigger] when called after
	// [Dispatcher.Destroy] has fully released the dispatcher's state.
	ErrDispatcherDestroyed = &Error{Kind: InvalidState, Message: "dispatcher has been destroyed"}
)

// KindOf extracts the Kind from err, if err is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
