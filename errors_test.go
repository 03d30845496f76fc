package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := newError(NoMemory, "allocate thing", nil)
	assert.Equal(t, "notify: no_memory: allocate thing", err.Error())

	wrapped := newError(NoMemory, "allocate thing", errors.New("out of pages"))
	assert.Equal(t, "notify: no_memory: allocate thing: out of pages", wrapped.Error())

	bare := &Error{Kind: InvalidArg}
	assert.Equal(t, "notify: invalid_arg", bare.Error())
}

func TestError_IsMatchesBareProbeByKindOnly(t *testing.T) {
	a := newError(InvalidState, "first", nil)
	assert.True(t, errors.Is(a, &Error{Kind: InvalidState}))
	assert.False(t, errors.Is(a, &Error{Kind: NoMemory}))
}

func TestError_IsDoesNotCollapseDistinctNamedSentinels(t *testing.T) {
	// both InvalidState, but distinct named sentinels: one must never
	// satisfy errors.Is for the other.
	assert.False(t, errors.Is(ErrDuplicateEventName, ErrDispatcherDestroyed))
	assert.False(t, errors.Is(ErrDispatcherDestroyed, ErrDuplicateEventName))
	assert.True(t, errors.Is(ErrDuplicateEventName, ErrDuplicateEventName))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := newError(NoMemory, "wrap", cause)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf(ErrDuplicateEventName)
	require.True(t, ok)
	assert.Equal(t, InvalidState, k)

	_, ok = KindOf(errors.New("not ours"))
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "no_memory", NoMemory.String())
	assert.Equal(t, "invalid_arg", InvalidArg.String())
	assert.Equal(t, "invalid_state", InvalidState.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
