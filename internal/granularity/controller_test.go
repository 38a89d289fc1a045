package granularity

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/deepsea-inria/sptl/internal/estimator"
	"github.com/deepsea-inria/sptl/internal/forkjoin"
)

func newTestController() *Controller {
	return NewController(forkjoin.Sequential{}, 100, 2.0, nil)
}

func TestGuard_UndefinedCellRunsParallelBranch(t *testing.T) {
	c := newTestController()
	cell := estimator.NewCell("undefined-site", nil)

	var ranSeq, ranPar bool
	c.Guard(cell, func() float64 { return 1000 }, func() { ranSeq = true }, func() { ranPar = true })

	if ranSeq || !ranPar {
		t.Fatalf("expected parallel branch on an undefined cell, got seq=%v par=%v", ranSeq, ranPar)
	}
	if cell.IsUndefined() {
		t.Fatal("expected Guard to report into the cell after a measured run")
	}
}

func TestGuard_SmallSubtreeShortCircuit(t *testing.T) {
	c := newTestController()
	cell := estimator.NewCell("idempotent-site", nil)
	// prime the cell so IsSmall(1, ...) reports true for the outer call.
	cell.Report(1, 0, 100)

	var innerRanSeq bool
	c.Guard(cell, func() float64 { return 1 }, func() {
		// nested guard call while already inside a sequential region:
		// must stay sequential regardless of what its own (undefined)
		// cell would otherwise decide.
		inner := estimator.NewCell("inner-site", nil)
		c.Guard(inner, func() float64 { return 1_000_000 }, func() { innerRanSeq = true }, func() {
			t.Fatal("nested Guard took the parallel branch inside a sequential region")
		})
	}, func() {
		t.Fatal("outer Guard unexpectedly took the parallel branch")
	})

	if !innerRanSeq {
		t.Fatal("expected nested Guard to run its sequential branch")
	}
}

func TestGuard_MonotoneLearning(t *testing.T) {
	c := newTestController()
	cell := estimator.NewCell("monotone-site", nil)

	for _, complexity := range []float64{10, 100, 1000} {
		complexity := complexity
		c.Guard(cell, func() float64 { return complexity }, func() {}, func() {})
	}
	if cell.IsUndefined() {
		t.Fatal("expected cell to be defined after measured runs")
	}
}

func TestFork2_AccountingNonNegativeAfterJoin(t *testing.T) {
	c := newTestController()
	ws := c.mine()
	before := ws.total

	c.Fork2(func() {}, func() {})

	after := c.mine()
	if after.total < before {
		t.Fatalf("expected monotone non-decreasing total, got before=%d after=%d", before, after.total)
	}
}

func TestFork2_BothSidesRun(t *testing.T) {
	c := newTestController()
	var l, r atomic.Bool
	c.Fork2(func() { l.Store(true) }, func() { r.Store(true) })
	if !l.Load() || !r.Load() {
		t.Fatal("expected both sides of Fork2 to run")
	}
}

func TestFork2_WithGoroutinePoolSubstrate(t *testing.T) {
	pool := forkjoin.NewGoroutinePool(4)
	defer pool.Close()
	c := NewController(pool, 100, 2.0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var l, r atomic.Bool
			c.Fork2(func() { l.Store(true) }, func() { r.Store(true) })
			if !l.Load() || !r.Load() {
				t.Error("expected both sides of Fork2 to run under the pool substrate")
			}
		}()
	}
	wg.Wait()
}

type recordingLogger struct {
	mu  sync.Mutex
	seq []string
	par []string
}

func (r *recordingLogger) SequentialRun(name string, complexity float64, elapsedCycles uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq = append(r.seq, name)
}

func (r *recordingLogger) MeasuredRun(name string, complexity float64, elapsedCycles uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.par = append(r.par, name)
}

func TestGuard_LogsRun(t *testing.T) {
	logger := &recordingLogger{}
	c := NewController(forkjoin.Sequential{}, 100, 2.0, logger)

	cell := estimator.NewCell("logged-site", nil)
	c.Guard(cell, func() float64 { return 1 }, func() {}, func() {})

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.seq) == 0 && len(logger.par) == 0 {
		t.Fatal("expected Guard to log at least one run")
	}
}
