package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocRecord_DefaultSucceeds(t *testing.T) {
	buf, err := allocRecord(bindingRecordSize, "test")
	require.NoError(t, err)
	assert.Len(t, buf, bindingRecordSize)
	freeRecord(buf)
}

func TestSetMemoryFunctions_InjectsFailure(t *testing.T) {
	t.Cleanup(ResetMemoryFunctions)

	injected := 0
	SetMemoryFunctions(MemoryFunctions{
		Alloc: func(size int) ([]byte, error) {
			injected++
			return nil, assertError{}
		},
	})

	_, err := allocRecord(momentRecordSize, "trigger: allocate moment record")
	require.Error(t, err)
	k, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, NoMemory, k)
	assert.Equal(t, 1, injected)
}

func TestSetMemoryFunctions_ZeroValueResetsDefaults(t *testing.T) {
	t.Cleanup(ResetMemoryFunctions)

	SetMemoryFunctions(MemoryFunctions{
		Alloc: func(size int) ([]byte, error) { return nil, assertError{} },
	})
	SetMemoryFunctions(MemoryFunctions{})

	buf, err := allocRecord(bindingRecordSize, "test")
	require.NoError(t, err)
	assert.Len(t, buf, bindingRecordSize)
}

func TestSetMemoryFunctions_PanicsWhileDispatcherRunning(t *testing.T) {
	t.Cleanup(ResetMemoryFunctions)
	runningDispatchers.Add(1)
	defer runningDispatchers.Add(-1)

	assert.Panics(t, func() {
		SetMemoryFunctions(MemoryFunctions{})
	})
}

func TestFreeRecord_NilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		freeRecord(nil)
	})
}

func TestAllocRecord_FailurePreventsEnqueue(t *testing.T) {
	t.Cleanup(ResetMemoryFunctions)

	d := New(nil)
	e, err := d.CreateEvent("Ready")
	require.NoError(t, err)

	SetMemoryFunctions(MemoryFunctions{
		Alloc: func(size int) ([]byte, error) { return nil, assertError{} },
	})

	err = d.Trigger(e, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, d.Stats().QueueDepth == 0, "a failed allocation must not enqueue a moment")
}
