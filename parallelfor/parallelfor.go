// Package parallelfor implements the parallel-for skeleton: recursive
// binary halving over an integer range, guarded at every level by the
// granularity controller's spguard/fork2 decision.
package parallelfor

import (
	"github.com/deepsea-inria/sptl/internal/estimator"
	"github.com/deepsea-inria/sptl/internal/granularity"
)

// Runtime is the subset of the bootstrapped runtime a skeleton needs:
// the granularity controller driving spguard/fork2 decisions.
type Runtime interface {
	Guard(cell *estimator.Cell, complexity func() float64, seqBody, parBody func())
	Fork2(left, right func())
}

var _ Runtime = (*granularity.Controller)(nil)

// Options configures a For call. Site names the call site's cost
// estimator and log records; CompRng overrides the default range-size
// complexity function; SeqBody overrides the synthesized straight loop
// used once a subrange is classified small.
type Options struct {
	Site    string
	CompRng func(lo, hi int) float64
	SeqBody func(lo, hi int, body func(i int))
}

func defaultCompRng(lo, hi int) float64 { return float64(hi - lo) }

func defaultSeqBody(lo, hi int, body func(i int)) {
	for i := lo; i < hi; i++ {
		body(i)
	}
}

// Run executes body(i) for every i in [lo, hi), choosing per spec.md §4.6
// between a straight sequential loop and recursive binary halving
// through fork2, under rt's estimator at opts.Site.
func Run(rt Runtime, opts Options, lo, hi int, body func(i int)) {
	if opts.Site == "" {
		panic("parallelfor: Options.Site must be set")
	}
	compRng := opts.CompRng
	if compRng == nil {
		compRng = defaultCompRng
	}
	seqBody := opts.SeqBody
	if seqBody == nil {
		seqBody = defaultSeqBody
	}

	cell := estimator.Site(opts.Site)

	rt.Guard(cell, func() float64 { return compRng(lo, hi) },
		func() { seqBody(lo, hi, body) },
		func() { parallelRec(rt, cell, compRng, seqBody, lo, hi, body) },
	)
}

func parallelRec(rt Runtime, cell *estimator.Cell, compRng func(lo, hi int) float64, seqBody func(lo, hi int, body func(i int)), lo, hi int, body func(i int)) {
	n := hi - lo
	if n == 0 {
		return
	}
	if n == 1 {
		body(lo)
		return
	}
	mid := lo + n/2
	guarded := func(lo, hi int) {
		rt.Guard(cell, func() float64 { return compRng(lo, hi) },
			func() { seqBody(lo, hi, body) },
			func() { parallelRec(rt, cell, compRng, seqBody, lo, hi, body) },
		)
	}
	rt.Fork2(
		func() { guarded(lo, mid) },
		func() { guarded(mid, hi) },
	)
}
