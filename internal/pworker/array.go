package pworker

import (
	"golang.org/x/sys/cpu"
)

// paddedSlot wraps a value with a trailing cache-line pad, so that two
// adjacent slots in an Array's backing slice never share a cache line.
type paddedSlot[T any] struct {
	value T
	_     cpu.CacheLinePad
}

// Array is a fixed-capacity, cache-line-padded table indexed by worker id.
// The zero value is not usable; construct with NewArray.
type Array[T any] struct {
	slots []paddedSlot[T]
}

// NewArray allocates an Array with MaxWorkers slots.
func NewArray[T any]() *Array[T] {
	return &Array[T]{slots: make([]paddedSlot[T], MaxWorkers)}
}

// Mine returns a pointer to the calling goroutine's slot.
func (a *Array[T]) Mine() *T {
	return &a.slots[MyID()].value
}

// Slot returns a pointer to the slot for worker id i.
func (a *Array[T]) Slot(i int) *T {
	return &a.slots[i].value
}

// ForEach calls f for every slot in [0, n), where n is the number of
// worker ids ever handed out. It is intended for shutdown-time
// aggregation (log flush, diagnostics), never the hot path.
func (a *Array[T]) ForEach(f func(id int, v *T)) {
	n := int(nextID.Load())
	if n > MaxWorkers {
		n = MaxWorkers
	}
	for i := 0; i < n; i++ {
		f(i, &a.slots[i].value)
	}
}
