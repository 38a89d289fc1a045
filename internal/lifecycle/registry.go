package lifecycle

import (
	"fmt"
	"sync"
)

// Capacity is the fixed upper bound on registered callback triples.
const Capacity = 2048

// Callback is one {init, output, destroy} triple. Any field may be nil,
// treated as a no-op.
type Callback struct {
	Init    func()
	Output  func()
	Destroy func()
}

// Registry holds a bounded, append-only set of registered callbacks.
type Registry struct {
	mu    sync.Mutex
	items []Callback
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make([]Callback, 0, Capacity)}
}

// Register appends cb to the registry, in the order Init/Output will
// run at RunInit/RunOutput, and Destroy will run (in reverse) at
// RunDestroy. It panics if the registry is already at Capacity: this is
// an invariant violation (spec.md §7), not a recoverable condition.
func (r *Registry) Register(cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) >= Capacity {
		panic(fmt.Sprintf("lifecycle: exceeded registry capacity (%d)", Capacity))
	}
	r.items = append(r.items, cb)
}

// TryRegister is Register without the panic: it reports a capacity
// overflow as an error instead, for callers (sptl.RegisterCallback) that
// treat a full registry as a runtime-user-facing diagnostic rather than
// a programmer bug to crash on.
func (r *Registry) TryRegister(cb Callback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) >= Capacity {
		return fmt.Errorf("lifecycle: registry at capacity (%d)", Capacity)
	}
	r.items = append(r.items, cb)
	return nil
}

// RunInit invokes every registered Init, in registration order.
func (r *Registry) RunInit() {
	r.mu.Lock()
	items := append([]Callback(nil), r.items...)
	r.mu.Unlock()

	for _, cb := range items {
		if cb.Init != nil {
			cb.Init()
		}
	}
}

// RunOutput invokes every registered Output, in registration order.
func (r *Registry) RunOutput() {
	r.mu.Lock()
	items := append([]Callback(nil), r.items...)
	r.mu.Unlock()

	for _, cb := range items {
		if cb.Output != nil {
			cb.Output()
		}
	}
}

// RunDestroy invokes every registered Destroy, in reverse registration
// order (last registered, first torn down).
func (r *Registry) RunDestroy() {
	r.mu.Lock()
	items := append([]Callback(nil), r.items...)
	r.mu.Unlock()

	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Destroy != nil {
			items[i].Destroy()
		}
	}
}

// Len reports the number of registered callback triples.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
