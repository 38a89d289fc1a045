package granularity

import "fmt"

// InvariantError is the panic value raised when this package detects a
// condition that can only follow from a bug in the runtime itself (an
// unbalanced mode-stack pop), never from a caller's input. A worker-id
// table overflow is not reported through it: pworker.MyID panics with a
// plain string. Per spec.md §7, invariant violations are not recovered by the
// runtime; they unwind like any other panic, restoring per-worker state
// via the same deferred cleanup along the way.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("granularity: invariant violation in %s: %s", e.Op, e.Msg)
}
