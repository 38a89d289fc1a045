package pworker

import (
	"sync"
	"sync/atomic"
)

// MaxWorkers is the compile-time bound on live worker ids.
const MaxWorkers = 128

var (
	nextID   atomic.Int32
	idByGID  sync.Map // int64 goroutine id -> int worker id
	overflow atomic.Bool
)

// MyID returns the calling goroutine's dense worker id in [0, MaxWorkers),
// assigning a fresh one on first call from a given goroutine. Ids are never
// reclaimed, so it panics once more than MaxWorkers distinct goroutines
// have called it over the process lifetime, whether or not they are still
// running, matching the spec's "MAX_WORKERS is a compile-time bound"
// invariant.
func MyID() int {
	gid := goroutineID()

	if v, ok := idByGID.Load(gid); ok {
		return v.(int)
	}

	id := int(nextID.Add(1) - 1)
	if id >= MaxWorkers {
		overflow.Store(true)
		panic("pworker: exceeded MaxWorkers live workers")
	}

	actual, _ := idByGID.LoadOrStore(gid, id)
	return actual.(int)
}

// resetForTest clears the worker-id table. Only intended for use by this
// package's own tests, which otherwise leak ids across runs within the
// same test binary.
func resetForTest() {
	nextID.Store(0)
	idByGID.Range(func(k, _ any) bool {
		idByGID.Delete(k)
		return true
	})
	overflow.Store(false)
}
