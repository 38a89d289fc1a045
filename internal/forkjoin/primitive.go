package forkjoin

// Primitive runs two bodies "in parallel": both complete before Fork2
// returns, with no ordering guarantee between them, and no guarantee
// about which goroutine either runs on.
type Primitive interface {
	Fork2(left, right func())
}

// Sequential is the trivial fallback substrate: it runs left then right
// on the calling goroutine. It is deterministic and is used by the
// runtime's own property tests (tree-shape determinism, fork-join
// accounting under "no migration") and as the zero-value-safe default.
type Sequential struct{}

func (Sequential) Fork2(left, right func()) {
	left()
	right()
}
