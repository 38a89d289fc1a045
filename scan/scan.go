// Package scan implements the two-pass block scan skeleton of
// spec.md §4.8: partial-reduce each block, scan the block partials,
// then sweep each block sequentially seeded with its partial's prefix.
package scan

import (
	"github.com/deepsea-inria/sptl/internal/estimator"
	"github.com/deepsea-inria/sptl/internal/granularity"
)

// Runtime is the subset of the bootstrapped runtime a skeleton needs.
type Runtime interface {
	Guard(cell *estimator.Cell, complexity func() float64, seqBody, parBody func())
	Fork2(left, right func())
}

var _ Runtime = (*granularity.Controller)(nil)

// K is the default branching factor: the number of elements per block.
const K = 2048

// Orientation selects the scan's direction and inclusivity.
type Orientation int

const (
	ForwardExclusive Orientation = iota
	ForwardInclusive
	BackwardExclusive
	BackwardInclusive
)

func (o Orientation) backward() bool {
	return o == BackwardExclusive || o == BackwardInclusive
}

func (o Orientation) inclusive() bool {
	return o == ForwardInclusive || o == BackwardInclusive
}

// Options configures a Scan call.
type Options[D any] struct {
	Site        string
	Orientation Orientation
	// K overrides the default block size (spec.md §4.8 default 2048).
	K int
}

// Scan computes, for input in and an associative combine over identity,
// the (inclusive or exclusive, forward or backward) prefix of in into
// out. in and out may overlap: the sequential leaf carries its own
// per-element temporary to stay correct in that case.
func Scan[D any](rt Runtime, opts Options[D], in []D, identity D, combine func(a, b D) D, out []D) {
	if opts.Site == "" {
		panic("scan: Options.Site must be set")
	}
	if len(in) != len(out) {
		panic("scan: in and out must have equal length")
	}
	k := opts.K
	if k <= 0 {
		k = K
	}
	n := len(in)
	if n == 0 {
		return
	}

	cell := estimator.Site(opts.Site)
	blockCell := estimator.Site(opts.Site + ".block")
	m := (n + k - 1) / k

	partials := make([]D, m)
	rt.Guard(cell, func() float64 { return float64(n) },
		func() { sequentialScan(opts.Orientation, in, identity, combine, out) },
		func() {
			reducePartials(rt, blockCell, opts.Orientation, in, identity, combine, k, m, partials)
			scans := make([]D, m)
			scanPartials(partials, identity, combine, scans)
			sweepBlocks(rt, blockCell, opts.Orientation, in, identity, combine, k, m, scans, out)
		},
	)
}

func blockBounds(orientation Orientation, n, k, m, i int) (lo, hi int) {
	if orientation.backward() {
		// block 0 holds the trailing elements, so iterating block indices
		// upward walks the slice from its end toward its start, matching
		// the scan's logical direction.
		hi = n - i*k
		lo = hi - k
		if lo < 0 {
			lo = 0
		}
		return
	}
	lo = i * k
	hi = lo + k
	if hi > n {
		hi = n
	}
	return
}

func reducePartials[D any](rt Runtime, cell *estimator.Cell, orientation Orientation, in []D, identity D, combine func(a, b D) D, k, m int, partials []D) {
	fold := func(i int) {
		lo, hi := blockBounds(orientation, len(in), k, m, i)
		acc := identity
		if orientation.backward() {
			for j := hi - 1; j >= lo; j-- {
				acc = combine(acc, in[j])
			}
		} else {
			for j := lo; j < hi; j++ {
				acc = combine(acc, in[j])
			}
		}
		partials[i] = acc
	}
	forBlocks(rt, cell, m, fold)
}

func forBlocks(rt Runtime, cell *estimator.Cell, m int, body func(i int)) {
	var rec func(lo, hi int)
	rec = func(lo, hi int) {
		n := hi - lo
		if n == 0 {
			return
		}
		if n == 1 {
			body(lo)
			return
		}
		mid := lo + n/2
		rt.Guard(cell, func() float64 { return float64(n) },
			func() {
				for i := lo; i < hi; i++ {
					body(i)
				}
			},
			func() {
				rt.Fork2(
					func() { rec(lo, mid) },
					func() { rec(mid, hi) },
				)
			},
		)
	}
	rec(0, m)
}

// scanPartials computes the exclusive prefix of partials into scans,
// sequentially: m is expected to be small relative to n (n/K), so this
// pass is not itself guarded.
func scanPartials[D any](partials []D, identity D, combine func(a, b D) D, scans []D) {
	// block index order already encodes scan direction (blockBounds maps
	// block 0 to the first block processed, trailing-first for a
	// backward scan), so a single forward pass over the partials
	// suffices regardless of orientation.
	acc := identity
	for i, p := range partials {
		scans[i] = acc
		acc = combine(acc, p)
	}
}

func sweepBlocks[D any](rt Runtime, cell *estimator.Cell, orientation Orientation, in []D, identity D, combine func(a, b D) D, k, m int, scans []D, out []D) {
	sweep := func(i int) {
		lo, hi := blockBounds(orientation, len(in), k, m, i)
		sequentialScanRange(orientation, in, scans[i], combine, out, lo, hi)
	}
	forBlocks(rt, cell, m, sweep)
}

func sequentialScan[D any](orientation Orientation, in []D, identity D, combine func(a, b D) D, out []D) {
	sequentialScanRange(orientation, in, identity, combine, out, 0, len(in))
}

// sequentialScanRange scans in[lo:hi] into out[lo:hi], seeded with seed.
// It writes through a temporary carry value rather than reading
// directly out of out, so that in and out may safely overlap (including
// being the same slice).
func sequentialScanRange[D any](orientation Orientation, in []D, seed D, combine func(a, b D) D, out []D, lo, hi int) {
	carry := seed
	if orientation.backward() {
		for i := hi - 1; i >= lo; i-- {
			v := in[i]
			if orientation.inclusive() {
				carry = combine(carry, v)
				out[i] = carry
			} else {
				out[i] = carry
				carry = combine(carry, v)
			}
		}
		return
	}
	for i := lo; i < hi; i++ {
		v := in[i]
		if orientation.inclusive() {
			carry = combine(carry, v)
			out[i] = carry
		} else {
			out[i] = carry
			carry = combine(carry, v)
		}
	}
}
