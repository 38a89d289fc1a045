package reduce

// rangeInput is the level-3 adapter: a random-access index range
// [lo, hi) wrapped as a level-4 Input[D]. Splitting halves the range;
// the receiver shrinks to its first half and the returned Input covers
// the second half.
type rangeInput[D any] struct {
	lo, hi int
}

func (r *rangeInput[D]) Size() int      { return r.hi - r.lo }
func (r *rangeInput[D]) CanSplit() bool { return r.hi-r.lo > 1 }

func (r *rangeInput[D]) Split() Input[D] {
	mid := r.lo + (r.hi-r.lo)/2
	other := &rangeInput[D]{lo: mid, hi: r.hi}
	r.hi = mid
	return other
}

// ReduceIter specializes ReduceGeneric to a random-access index range [lo, hi),
// leaving convertRange/seqConvertRange to reduce a (sub)range directly
// by index rather than through the abstract Input interface. out still
// carries the full level-4 merge contract: level 3 fixes the input
// shape only, not how partial results combine.
func ReduceIter[D any](
	rt Runtime,
	site string,
	lo, hi int,
	out Output[D],
	dst D,
	compFn func(lo, hi int) float64,
	convertRange func(lo, hi int, dst D) D,
	seqConvertRange func(lo, hi int, dst D) D,
) D {
	in := &rangeInput[D]{lo: lo, hi: hi}

	var cf func(Input[D]) float64
	if compFn != nil {
		cf = func(in Input[D]) float64 {
			r := in.(*rangeInput[D])
			return compFn(r.lo, r.hi)
		}
	}

	return ReduceGeneric(rt, site, in, out, dst,
		cf,
		func(in Input[D], dst D) D {
			r := in.(*rangeInput[D])
			return convertRange(r.lo, r.hi, dst)
		},
		func(in Input[D], dst D) D {
			r := in.(*rangeInput[D])
			return seqConvertRange(r.lo, r.hi, dst)
		},
	)
}
