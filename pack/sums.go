package pack

import (
	"golang.org/x/exp/constraints"

	"github.com/deepsea-inria/sptl/reduce"
)

// Sum reduces items with add, seeded at identity (spec.md §4.9's
// "sums").
func Sum[D any](rt Runtime, site string, items []D, identity D, add func(a, b D) D) D {
	return reduce.Reduce(rt, site, items, identity, add)
}

// Max returns the maximum element of items per less, seeded at lowest
// (the caller-supplied sentinel strictly less than every real element).
// Panics if items is empty.
func Max[D any](rt Runtime, site string, items []D, lowest D, less func(a, b D) bool) D {
	if len(items) == 0 {
		panic("pack: Max on an empty slice")
	}
	return reduce.Reduce(rt, site, items, lowest, func(a, b D) D {
		if less(a, b) {
			return b
		}
		return a
	})
}

// MaxIndex returns the index of a maximum element of items per less
// (ties may resolve to any maximal index, per spec.md's S6). Panics if
// items is empty.
func MaxIndex[D any](rt Runtime, site string, items []D, lowest D, less func(a, b D) bool) int {
	if len(items) == 0 {
		panic("pack: MaxIndex on an empty slice")
	}
	type indexed struct {
		idx int
		val D
	}
	idxItems := make([]indexed, len(items))
	for i, v := range items {
		idxItems[i] = indexed{idx: i, val: v}
	}
	identity := indexed{idx: -1, val: lowest}
	result := reduce.Reduce(rt, site, idxItems, identity, func(a, b indexed) indexed {
		if a.idx == -1 {
			return b
		}
		if b.idx == -1 {
			return a
		}
		if less(a.val, b.val) {
			return b
		}
		return a
	})
	return result.idx
}

// SumOrdered is Sum specialized to an ordered numeric or string type,
// using the type's own zero value as the additive identity and + as
// add.
func SumOrdered[D constraints.Ordered](rt Runtime, site string, items []D) D {
	var identity D
	return Sum(rt, site, items, identity, func(a, b D) D { return a + b })
}

// MaxOrdered is Max specialized to an ordered type, using < directly
// instead of a caller-supplied less function. Panics if items is empty.
func MaxOrdered[D constraints.Ordered](rt Runtime, site string, items []D, lowest D) D {
	return Max(rt, site, items, lowest, func(a, b D) bool { return a < b })
}
