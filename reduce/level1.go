package reduce

// ReduceRange specializes ReduceSlice to a concrete element slice: each element
// is transformed by lift before folding with combine.
func ReduceRange[E, D any](
	rt Runtime,
	site string,
	items []E,
	identity D,
	combine func(a, b D) D,
	lift func(e E) D,
) D {
	compFn := func(lo, hi int) float64 { return float64(hi - lo) }
	liftIdx := func(i int) D { return lift(items[i]) }
	return ReduceSlice(rt, site, 0, len(items), identity, compFn, combine, liftIdx)
}

// Reduce degenerates ReduceRange to the plain case: the elements are
// already of the accumulator type, so lift is the identity function.
func Reduce[D any](
	rt Runtime,
	site string,
	items []D,
	identity D,
	combine func(a, b D) D,
) D {
	return ReduceRange(rt, site, items, identity, combine, func(d D) D { return d })
}
