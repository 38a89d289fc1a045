package granularity

import (
	"github.com/deepsea-inria/sptl/internal/cycles"
	"github.com/deepsea-inria/sptl/internal/estimator"
	"github.com/deepsea-inria/sptl/internal/forkjoin"
	"github.com/deepsea-inria/sptl/internal/pworker"
)

// RunLogger receives a record of every guarded call site decision,
// independent of (and in addition to) the estimator's own
// cost-cell-published notifications.
type RunLogger interface {
	SequentialRun(name string, complexity float64, elapsedCycles uint64)
	MeasuredRun(name string, complexity float64, elapsedCycles uint64)
}

// Controller owns the per-worker accounting state and the estimator and
// substrate it drives. It is the realization of spguard and fork2.
type Controller struct {
	states    *pworker.Array[workerState]
	substrate forkjoin.Primitive
	kappa     float64
	alpha     float64
	logger    RunLogger
}

// NewController builds a Controller over substrate, with kappaUsec as the
// target grain (microseconds) and alpha as the estimator's overshoot
// tolerance. logger may be nil.
func NewController(substrate forkjoin.Primitive, kappaUsec, alpha float64, logger RunLogger) *Controller {
	return &Controller{
		states:    pworker.NewArray[workerState](),
		substrate: substrate,
		kappa:     kappaUsec,
		alpha:     alpha,
		logger:    logger,
	}
}

func (c *Controller) mine() *workerState {
	ws := c.states.Mine()
	if !ws.initialized {
		ws.timer = cycles.Now()
		ws.initialized = true
	}
	return ws
}

// Guard is spguard: it decides, at a named call site and for the given
// complexity estimate, whether seqBody or parBody runs, and feeds the
// outcome back into the call site's cost cell.
//
// complexity is a closure, not a pre-evaluated value: per spec.md §4.4
// step 1, a worker already inside a classified-small subtree (ws.isSmall)
// takes seqBody immediately, with no complexity evaluation, timing, or
// logging at all — the common case, by call count, inside a small
// subtree. Only once that short-circuit misses does Guard evaluate
// complexity and consult the mode-stack override / estimator cell.
func (c *Controller) Guard(cell *estimator.Cell, complexity func() float64, seqBody, parBody func()) {
	ws := c.mine()

	if ws.isSmall {
		seqBody()
		return
	}

	switch ws.top() {
	case ModeForceSequential:
		c.runSequential(ws, cell, complexity(), seqBody)
		return
	case ModeForceParallel:
		c.runMeasured(ws, cell, complexity(), parBody, ModeParallel)
		return
	}

	comp := complexity()
	if cell.IsSmall(comp, c.alpha, c.kappa) {
		c.runSequential(ws, cell, comp, seqBody)
		return
	}

	c.runMeasured(ws, cell, comp, parBody, ModeParallel)
}

func (c *Controller) runSequential(ws *workerState, cell *estimator.Cell, complexity float64, body func()) {
	wasSmall := ws.isSmall
	ws.isSmall = true
	ws.push(ModeSequential)
	defer func() {
		ws.pop()
		ws.isSmall = wasSmall
	}()

	start := cycles.Now()
	body()
	elapsed := cycles.Elapsed(start)

	cell.Report(complexity, elapsed, c.kappa)
	if c.logger != nil {
		c.logger.SequentialRun(cell.Name(), complexity, elapsed)
	}
}

func (c *Controller) runMeasured(ws *workerState, cell *estimator.Cell, complexity float64, body func(), pushMode ExecMode) {
	savedTotal, savedTimer := ws.total, ws.timer
	tBefore := savedTotal + cycles.Elapsed(savedTimer)

	ws.push(pushMode)
	ws.total, ws.timer = 0, cycles.Now()

	completed := false
	defer func() {
		ws.pop()
		if !completed {
			// unwinding on panic: restore the caller's window as if this
			// call had never happened, since its body never finished.
			ws.total, ws.timer = savedTotal, savedTimer
		}
	}()

	body()

	tBody := ws.total + cycles.Elapsed(ws.timer)
	ws.total = tBefore + tBody
	ws.timer = cycles.Now()
	completed = true

	cell.Report(complexity, tBody, c.kappa)
	if c.logger != nil {
		c.logger.MeasuredRun(cell.Name(), complexity, tBody)
	}
}

// Fork2 is the fork-join primitive: it runs left and right via the
// controller's substrate, closing the calling worker's accounting window
// around the pair and re-opening it on the joining worker once both
// sides complete.
//
// Per spec.md §4.5 step 1, a worker already inside a classified-small
// subtree (ws.isSmall) runs both sides inline on the calling goroutine
// and returns immediately, with no substrate dispatch and no window
// accounting.
//
// Because this realization derives worker identity from goroutine id
// rather than from an OS thread, and because left always runs on the
// calling goroutine in both Sequential and GoroutinePool, the "joining
// worker" is always the original caller: only right can end up measured
// on a distinct worker's state slot.
func (c *Controller) Fork2(left, right func()) {
	ws := c.mine()

	if ws.isSmall {
		left()
		right()
		return
	}

	savedTotal, savedTimer := ws.total, ws.timer
	tBefore := savedTotal + cycles.Elapsed(savedTimer)

	var tLeft, tRight uint64

	leftWrapper := func() {
		lws := c.mine()
		lSavedTotal, lSavedTimer := lws.total, lws.timer
		lws.total, lws.timer = 0, cycles.Now()
		defer func() { lws.total, lws.timer = lSavedTotal, lSavedTimer }()
		left()
		tLeft = lws.total + cycles.Elapsed(lws.timer)
	}
	rightWrapper := func() {
		rws := c.mine()
		rSavedTotal, rSavedTimer := rws.total, rws.timer
		rws.total, rws.timer = 0, cycles.Now()
		defer func() { rws.total, rws.timer = rSavedTotal, rSavedTimer }()
		right()
		tRight = rws.total + cycles.Elapsed(rws.timer)
	}

	c.substrate.Fork2(leftWrapper, rightWrapper)

	joined := c.mine()
	joined.total = tBefore + tLeft + tRight
	joined.timer = cycles.Now()
}
