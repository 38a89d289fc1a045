// Package pack implements the pack/filter skeleton of spec.md §4.9:
// given an input range and a same-length boolean flag range, produce a
// dense output of the flagged elements, computing offsets via a
// parallel popcount-then-exclusive-scan when the input is large enough
// to be worth splitting.
package pack

import (
	"math/bits"

	"github.com/deepsea-inria/sptl/internal/estimator"
	"github.com/deepsea-inria/sptl/internal/granularity"
)

// Runtime is the subset of the bootstrapped runtime a skeleton needs.
type Runtime interface {
	Guard(cell *estimator.Cell, complexity func() float64, seqBody, parBody func())
	Fork2(left, right func())
}

var _ Runtime = (*granularity.Controller)(nil)

// LeafThreshold is the size at or below which Pack processes the whole input
// as a single sequential block (spec.md §4.9).
const LeafThreshold = 2048

// K is the block size used to partition larger inputs.
const K = 2048

// Pack returns the elements of items whose corresponding flags entry is
// true, preserving order.
func Pack[T any](rt Runtime, site string, items []T, flags []bool) []T {
	if len(items) != len(flags) {
		panic("pack: items and flags must have equal length")
	}
	offsets, total := computeOffsets(rt, site, flags)
	out := make([]T, total)
	fillPacked(rt, estimator.Site(site+".fill"), items, flags, offsets, out)
	return out
}

// Filter is Pack for the predicate-over-elements use case: it computes
// flags[i] = p(items[i]) itself, then packs items by those flags
// (spec.md's filter(p) is Pack applied to a derived flag range).
func Filter[T any](rt Runtime, site string, items []T, p func(T) bool) []T {
	flags := make([]bool, len(items))
	for i, v := range items {
		flags[i] = p(v)
	}
	return Pack(rt, site, items, flags)
}

// FilterIndex returns the indices i for which p(items[i]) holds.
func FilterIndex[T any](rt Runtime, site string, items []T, p func(T) bool) []int {
	flags := make([]bool, len(items))
	for i, v := range items {
		flags[i] = p(v)
	}
	return PackIndex(rt, site, flags)
}

// PackIndex returns the source indices of the flagged positions, in
// order (spec.md §4.9: "pack_index returns offsets rather than
// values") — e.g. flags [T,F,T,F,T] yields [0,2,4].
func PackIndex(rt Runtime, site string, flags []bool) []int {
	idx := make([]int, len(flags))
	for i := range idx {
		idx[i] = i
	}
	return Pack(rt, site, idx, flags)
}

func computeOffsets(rt Runtime, site string, flags []bool) ([]int, int) {
	n := len(flags)
	offsets := make([]int, n)
	if n == 0 {
		return offsets, 0
	}

	cell := estimator.Site(site)
	var total int

	rt.Guard(cell, func() float64 { return float64(n) },
		func() {
			total = sequentialOffsets(flags, offsets, 0)
		},
		func() {
			if n <= LeafThreshold {
				total = sequentialOffsets(flags, offsets, 0)
				return
			}
			total = blockedOffsets(rt, estimator.Site(site+".block"), flags, offsets)
		},
	)
	return offsets, total
}

// sequentialOffsets fills offsets[i] with the exclusive rank of flags[i]
// among true flags so far (starting from base), returning the final
// count.
func sequentialOffsets(flags []bool, offsets []int, base int) int {
	count := base
	for i, f := range flags {
		offsets[i] = count
		if f {
			count++
		}
	}
	return count
}

func blockedOffsets(rt Runtime, blockCell *estimator.Cell, flags []bool, offsets []int) int {
	n := len(flags)
	k := K
	m := (n + k - 1) / k

	counts := make([]int, m)
	forBlocks(rt, blockCell, m, func(i int) {
		lo, hi := i*k, min((i+1)*k, n)
		counts[i] = popcountRange(flags[lo:hi])
	})

	bases := make([]int, m)
	total := 0
	for i, c := range counts {
		bases[i] = total
		total += c
	}

	forBlocks(rt, blockCell, m, func(i int) {
		lo, hi := i*k, min((i+1)*k, n)
		sequentialOffsets(flags[lo:hi], offsets[lo:hi], bases[i])
	})

	return total
}

// popcountRange counts true flags in r four at a time: each group of 4
// flags is packed into one uint32 (one 0x00/0x01 byte per flag) and
// counted with math/bits.OnesCount32; a trailing group of fewer than 4
// flags is counted one by one (spec.md §4.9's word-packed fast path,
// applied to any length of bool slice).
func popcountRange(r []bool) int {
	count := 0
	i := 0
	for ; i+4 <= len(r); i += 4 {
		var word uint32
		for j := 0; j < 4; j++ {
			if r[i+j] {
				word |= 1 << (8 * j)
			}
		}
		count += bits.OnesCount32(word)
	}
	for ; i < len(r); i++ {
		if r[i] {
			count++
		}
	}
	return count
}

func fillPacked[T any](rt Runtime, cell *estimator.Cell, items []T, flags []bool, offsets []int, out []T) {
	forBlocks(rt, cell, len(items), func(i int) {
		if flags[i] {
			out[offsets[i]] = items[i]
		}
	})
}

func forBlocks(rt Runtime, cell *estimator.Cell, n int, body func(i int)) {
	var rec func(lo, hi int)
	rec = func(lo, hi int) {
		size := hi - lo
		if size == 0 {
			return
		}
		if size == 1 {
			body(lo)
			return
		}
		mid := lo + size/2
		rt.Guard(cell, func() float64 { return float64(size) },
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
	rec(0, n)
}
