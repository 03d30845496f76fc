package notify

import (
	"sync"
	"sync/atomic"
)

// MemoryFunctions models the pluggable global alloc/realloc/free triple
// described in spec §6. Unlike the C original, Go allocation cannot itself
// fail, so Alloc/Realloc return an error to model OOM injection for testing
// out-of-memory paths (§1's "pluggable global memory-function triple used to
// stress test out-of-memory paths").
type MemoryFunctions struct {
	Alloc   func(size int) ([]byte, error)
	Realloc func(buf []byte, size int) ([]byte, error)
	Free    func(buf []byte)
}

func defaultMemoryFunctions() MemoryFunctions {
	return MemoryFunctions{
		Alloc: func(size int) ([]byte, error) {
			return make([]byte, size), nil
		},
		Realloc: func(buf []byte, size int) ([]byte, error) {
			out := make([]byte, size)
			copy(out, buf)
			return out, nil
		},
		Free: func([]byte) {},
	}
}

var (
	memFnsMu           sync.RWMutex
	memFns             = defaultMemoryFunctions()
	runningDispatchers atomic.Int64
)

// SetMemoryFunctions installs a process-wide alloc/realloc/free triple, for
// OOM-injection and arena experiments (§6). Installing a zero-value
// MemoryFunctions (all three fields nil) restores the defaults.
//
// Installation is only safe when no dispatcher is mid-trigger (§9): calling
// this while any [Dispatcher] is draining its moment queue panics, mirroring
// the package-level-global guard design used throughout the teacher package
// for process-wide state ("installation is only safe when no dispatcher is
// mid-trigger").
func SetMemoryFunctions(fns MemoryFunctions) {
	if runningDispatchers.Load() != 0 {
		panic("notify: SetMemoryFunctions called while a dispatcher is mid-trigger")
	}
	memFnsMu.Lock()
	defer memFnsMu.Unlock()
	if fns.Alloc == nil && fns.Realloc == nil && fns.Free == nil {
		memFns = defaultMemoryFunctions()
		return
	}
	if fns.Alloc == nil {
		fns.Alloc = defaultMemoryFunctions().Alloc
	}
	if fns.Realloc == nil {
		fns.Realloc = defaultMemoryFunctions().Realloc
	}
	if fns.Free == nil {
		fns.Free = func([]byte) {}
	}
	memFns = fns
}

// ResetMemoryFunctions restores the default allocator triple.
func ResetMemoryFunctions() {
	SetMemoryFunctions(MemoryFunctions{})
}

func currentMemoryFunctions() MemoryFunctions {
	memFnsMu.RLock()
	defer memFnsMu.RUnlock()
	return memFns
}

// Nominal record sizes passed to the installed Alloc function when
// allocating the records spec §3 describes: the event's owned name
// storage, a binding node, and a trigger (moment) record. The sizes
// themselves are not load-bearing -- only whether Alloc succeeds or fails
// matters -- but are kept distinct and plausible so an injected allocator
// that fails above a size threshold behaves meaningfully.
const (
	eventNameRecordSize = 32
	bindingRecordSize   = 48
	momentRecordSize    = 64
)

// allocRecord routes one of the nominal allocations above through the
// installed [MemoryFunctions], wrapping any failure as a [NoMemory] [Error]
// (spec §4.7: "all allocation attempts propagate an out-of-memory signal to
// the caller").
func allocRecord(size int, op string) ([]byte, error) {
	buf, err := currentMemoryFunctions().Alloc(size)
	if err != nil {
		return nil, newError(NoMemory, op, err)
	}
	return buf, nil
}

func freeRecord(buf []byte) {
	if buf == nil {
		return
	}
	currentMemoryFunctions().Free(buf)
}
