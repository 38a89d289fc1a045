package sptl

import (
	"sync"

	"github.com/deepsea-inria/sptl/internal/forkjoin"
	"github.com/deepsea-inria/sptl/internal/granularity"
	"github.com/deepsea-inria/sptl/internal/lifecycle"
)

var (
	runtimeMu sync.RWMutex
	ctrl      = granularity.NewController(forkjoin.Sequential{}, 100, 1.2, nil)
)

// callbacks is the process-lifetime lifecycle registry: a singleton, so
// that RegisterCallback calls made from package-level init() (before any
// Launch runs) are not lost.
var callbacks = lifecycle.NewRegistry()

func current() *granularity.Controller {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	return ctrl
}

// Controller returns the bootstrapped granularity controller, for
// passing into parallelfor.Run, reduce.Reduce*, scan.Scan, and
// pack.Pack/Filter/Sum/Max (each of those packages declares its own
// structurally-equivalent Runtime interface, satisfied by the returned
// value without this package's caller needing to name its concrete
// type).
func Controller() *granularity.Controller {
	return current()
}

func setController(c *granularity.Controller) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	ctrl = c
}

// RegisterCallback adds an {init, output, destroy} triple to the
// process-lifetime lifecycle registry. init and output run, if
// non-nil, in registration order around Launch's body; destroy runs, if
// non-nil, in reverse registration order during teardown. Any of the
// three may be nil.
//
// Returns an error, rather than panicking, once the fixed-capacity
// (2048) registry is full: spec.md §7 treats this as an invariant
// violation to fail fast on, and a diagnostic error return is this
// library's fail-fast mechanism for a condition a long-running host
// must still be able to observe and report.
func RegisterCallback(init, output, destroy func()) error {
	return callbacks.TryRegister(lifecycle.Callback{Init: init, Output: output, Destroy: destroy})
}
