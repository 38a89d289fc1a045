package sptl

import (
	"golang.org/x/exp/constraints"
)

// Number is the complexity-estimate constraint SPGuard accepts: any
// integer or floating-point type, converted to float64 before it
// reaches the granularity controller's estimator.
type Number interface {
	constraints.Integer | constraints.Float
}

// SPGuard is spguard (spec.md §4.4): it runs parallel or sequential at
// site, depending on the call site's learned cost model and the calling
// worker's current execution mode. complexity is only ever called if
// the calling worker is not already inside a classified-small subtree
// (spec.md §4.4 step 1), so a caller may put arbitrarily expensive
// complexity estimation inside it without paying for it on the common,
// already-small path.
func SPGuard[C Number](site *Site, complexity func() C, parallel, sequential func()) {
	current().Guard(site.cell, func() float64 { return float64(complexity()) }, sequential, parallel)
}

// SPGuardUnary is SPGuard for a caller whose complexity estimate is
// already a plain float64, sparing it the generic form's closure
// wrapping (the estimate itself is still read lazily by Guard, behind
// the is_small short-circuit).
func SPGuardUnary(site *Site, complexity float64, parallel, sequential func()) {
	current().Guard(site.cell, func() float64 { return complexity }, sequential, parallel)
}

// Fork2 is fork2 (spec.md §4.5): it runs left and right through the
// bootstrapped fork-join substrate, closing the calling worker's
// accounting window around the pair.
func Fork2(left, right func()) {
	current().Fork2(left, right)
}
