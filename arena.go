package notify

import "sync"

// Arena is the per-moment pool allocator described by the pool contract
// consumed in spec §6: Malloc and Strdup, both signalling out-of-memory via
// the installed [MemoryFunctions]. Storage held by an Arena is released when
// its owning moment is freed, mirroring the object-pool reuse pattern used
// throughout the teacher package (e.g. its timer pool) rather than leaving
// per-dispatch garbage for the collector.
type Arena struct {
	bufs [][]byte
}

var arenaPool = sync.Pool{New: func() any { return new(Arena) }}

func acquireArena() *Arena {
	a := arenaPool.Get().(*Arena)
	a.bufs = a.bufs[:0]
	return a
}

func releaseArena(a *Arena) {
	fns := currentMemoryFunctions()
	for _, b := range a.bufs {
		fns.Free(b)
	}
	a.bufs = a.bufs[:0]
	arenaPool.Put(a)
}

// Malloc allocates size bytes from the arena. The returned slice is owned by
// the arena and must not be retained past the lifetime of the moment it was
// allocated for.
func (a *Arena) Malloc(size int) ([]byte, error) {
	if a == nil {
		return nil, newError(InvalidState, "malloc on a nil arena", nil)
	}
	buf, err := currentMemoryFunctions().Alloc(size)
	if err != nil {
		return nil, newError(NoMemory, "arena malloc failed", err)
	}
	a.bufs = append(a.bufs, buf)
	return buf, nil
}

// Strdup copies src into arena-owned storage and returns the copy.
func (a *Arena) Strdup(src string) (string, error) {
	buf, err := a.Malloc(len(src))
	if err != nil {
		return "", err
	}
	copy(buf, src)
	return string(buf), nil
}
