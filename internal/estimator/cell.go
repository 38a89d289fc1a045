package estimator

import (
	"math"
	"sync/atomic"

	"github.com/deepsea-inria/sptl/internal/cycles"
)

// Logger receives a notification each time a Cell successfully publishes
// a new (cst, nmax) pair. Implementations must not block.
type Logger interface {
	EstimatorPublished(name string, cst, nmax float32, complexity, elapsedUsec float64)
}

// Cell is a single call site's learned cost model: a cost-per-unit
// constant (cst, microseconds) and the largest complexity ever observed
// to execute within kappa microseconds (nmax). The zero value is
// undefined (state == 0).
type Cell struct {
	_     [128]byte
	state atomic.Uint64
	_     [128]byte

	name   string
	logger Logger
}

// NewCell constructs an undefined cell tagged with name. logger may be
// nil.
func NewCell(name string, logger Logger) *Cell {
	return &Cell{name: name, logger: logger}
}

// Name returns the cell's human-readable tag.
func (c *Cell) Name() string { return c.name }

func pack(cst, nmax float32) uint64 {
	return uint64(math.Float32bits(cst))<<32 | uint64(math.Float32bits(nmax))
}

func unpack(state uint64) (cst, nmax float32) {
	cst = math.Float32frombits(uint32(state >> 32))
	nmax = math.Float32frombits(uint32(state))
	return
}

// CostPerUnit returns the cell's current cst, for persistence. It is
// meaningless on an undefined cell (callers should check IsDefined).
func (c *Cell) CostPerUnit() float32 {
	cst, _ := unpack(c.state.Load())
	return cst
}

// IsDefined reports whether the cell has ever received a publishable
// report.
func (c *Cell) IsDefined() bool {
	return c.state.Load() != 0
}

// IsUndefined is the negation of IsDefined.
func (c *Cell) IsUndefined() bool {
	return !c.IsDefined()
}

// IsSmall reports whether a request of the given complexity is expected
// to run within the kappa budget, per spec: undefined cells are
// pessimistic (false, letting the parallel path run and learn); defined
// cells admit c <= nmax, or c <= alpha*nmax when the predicted cost
// (c*cst) still fits within alpha*kappa.
func (c *Cell) IsSmall(complexity, alpha, kappaUsec float64) bool {
	state := c.state.Load()
	if state == 0 {
		return false
	}
	cst, nmax := unpack(state)

	if complexity <= float64(nmax) {
		return true
	}
	return complexity <= alpha*float64(nmax) && complexity*float64(cst) <= alpha*kappaUsec
}

// Seed warms the cell from a previously persisted per-unit cost,
// without any corresponding nmax observation. nmax is set to the
// largest representable float32 so that IsSmall's first clause never
// gates the decision: the persisted constant alone governs, via
// IsSmall's predicted-cost clause (c*cst <= alpha*kappa), until a real
// Report supersedes it. Seed never lowers an already-defined cell's
// cst below a value a real measurement established.
func (c *Cell) Seed(cst float32) {
	newState := pack(cst, math.MaxFloat32)
	for {
		old := c.state.Load()
		if old != 0 {
			return
		}
		if c.state.CompareAndSwap(old, newState) {
			return
		}
	}
}

// Report records one measurement: complexity c took elapsed cycles.
// Reports whose converted time exceeds kappaUsec are dropped (too
// coarse to inform the small/large decision). A successful publish is
// monotone in nmax and retries under contention via CAS-with-backoff.
func (c *Cell) Report(complexity float64, elapsed uint64, kappaUsec float64) {
	u := cycles.Microseconds(elapsed)
	if u > kappaUsec {
		return
	}

	denom := complexity
	if denom < 1 {
		denom = 1
	}
	newCst := float32(u / denom)

	for {
		old := c.state.Load()
		_, oldNmax := unpack(old)
		if complexity <= float64(oldNmax) {
			return
		}

		newState := pack(newCst, float32(complexity))
		if cycles.CASWithBackoff(&c.state, old, newState, cycles.MinBackoffCycles) {
			if c.logger != nil {
				c.logger.EstimatorPublished(c.name, newCst, float32(complexity), complexity, u)
			}
			return
		}
		// CAS failed: reread and retry, unless a concurrent writer has
		// already pushed nmax past our complexity.
	}
}
