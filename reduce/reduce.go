// Package reduce implements the layered reduction skeleton of spec.md
// §4.7: a fully general level-4 primitive over an abstract splittable
// input and mergeable output, with levels 3 down to 0 specializing it
// for increasingly concrete element and accumulator shapes.
package reduce

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

// Input is the level-4 abstract input: a splittable range of unknown
// internal shape.
type Input[D any] interface {
	// Size reports a size hint used by the default complexity function.
	Size() int
	// CanSplit reports whether Split can still divide this input.
	CanSplit() bool
	// Split divides the receiver in place into its first half, and
	// returns a new Input representing the second half.
	Split() Input[D]
}

// Output is the level-4 abstract accumulator: it can be zero-valued and
// merged.
type Output[D any] interface {
	// Init returns a new zero accumulator.
	Init() D
	// Merge folds src into dst, returning the combined accumulator.
	Merge(src, dst D) D
}

// ReduceGeneric runs the fully general reduce/merge recursion over in,
// guarded by rt's estimator at site. convertReduce handles an
// unsplittable leaf in the parallel branch; seqConvertReduce handles the
// sequential branch, which Guard takes for an input classified small. compFn estimates the
// complexity of reducing in; if nil, Input.Size is used.
func ReduceGeneric[D any](
	rt Runtime,
	site string,
	in Input[D],
	out Output[D],
	dst D,
	compFn func(Input[D]) float64,
	convertReduce func(Input[D], D) D,
	seqConvertReduce func(Input[D], D) D,
) D {
	if compFn == nil {
		compFn = func(in Input[D]) float64 { return float64(in.Size()) }
	}
	cell := estimator.Site(site)

	var result D
	rt.Guard(cell, func() float64 { return compFn(in) },
		func() {
			result = seqConvertReduce(in, dst)
		},
		func() {
			if !in.CanSplit() {
				result = convertReduce(in, dst)
				return
			}
			in2 := in.Split()
			dst2 := out.Init()

			var left, right D
			rt.Fork2(
				func() {
					left = ReduceGeneric(rt, site, in, out, dst, compFn, convertReduce, seqConvertReduce)
				},
				func() {
					right = ReduceGeneric(rt, site, in2, out, dst2, compFn, convertReduce, seqConvertReduce)
				},
			)
			result = out.Merge(right, left)
		},
	)
	return result
}
