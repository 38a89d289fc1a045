package estimator

import (
	"sync"
	"testing"
)

func TestCell_UndefinedIsPessimistic(t *testing.T) {
	c := NewCell("t", nil)
	if !c.IsUndefined() {
		t.Fatal("expected fresh cell to be undefined")
	}
	if c.IsSmall(1, 1.2, 100) {
		t.Fatal("expected undefined cell to report not-small (pessimistic)")
	}
}

func TestCell_ReportDropsOverKappa(t *testing.T) {
	c := NewCell("t", nil)
	// 200 virtual cycles == 0.2us at default 1:1000 conversion, well under
	// kappa; use a huge elapsed value (in virtual-cycle nanoseconds) to
	// exceed a small kappa and verify the report is dropped.
	c.Report(10, 1_000_000 /* 1000us */, 100 /* kappaUsec */)
	if c.IsDefined() {
		t.Fatal("expected report exceeding kappa to be dropped")
	}
}

func TestCell_ReportPublishesAndIsMonotone(t *testing.T) {
	c := NewCell("t", nil)

	c.Report(10, 50_000 /* 50us */, 100)
	if !c.IsDefined() {
		t.Fatal("expected cell to become defined after an in-budget report")
	}
	if !c.IsSmall(10, 1.2, 100) {
		t.Fatal("expected c == nmax to be small")
	}

	c.Report(5, 10_000, 100) // smaller complexity must not move nmax down
	_, nmax := unpack(c.state.Load())
	if nmax != 10 {
		t.Fatalf("expected nmax to remain 10, got %v", nmax)
	}

	c.Report(20, 50_000, 100)
	_, nmax = unpack(c.state.Load())
	if nmax != 20 {
		t.Fatalf("expected nmax to grow to 20, got %v", nmax)
	}
}

func TestCell_IsSmall_AlphaOvershoot(t *testing.T) {
	c := NewCell("t", nil)
	c.Report(100, 10_000 /* cst = 0.1us/unit */, 100)

	// alpha*nmax = 120; predicted cost of 120 units = 120*0.1 = 12us <= alpha*kappa(120)
	if !c.IsSmall(120, 1.2, 100) {
		t.Fatal("expected mild overshoot within alpha*kappa to be small")
	}

	// far beyond alpha*nmax must not be small
	if c.IsSmall(1000, 1.2, 100) {
		t.Fatal("expected large overshoot to not be small")
	}
}

func TestCell_IsSmall_PureFunction(t *testing.T) {
	c := NewCell("t", nil)
	c.Report(50, 10_000, 100)

	a := c.IsSmall(50, 1.2, 100)
	b := c.IsSmall(50, 1.2, 100)
	if a != b {
		t.Fatal("expected IsSmall to be a pure function of cell state and complexity")
	}
}

func TestCell_ReportConcurrentMonotone(t *testing.T) {
	c := NewCell("t", nil)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(float64(i), 10_000, 100)
		}()
	}
	wg.Wait()

	_, nmax := unpack(c.state.Load())
	if nmax != 50 {
		t.Fatalf("expected nmax to converge to the largest reported complexity 50, got %v", nmax)
	}
}

func TestSite_MintsOncePerName(t *testing.T) {
	resetForTest()

	a := Site("alpha")
	b := Site("alpha")
	if a != b {
		t.Fatal("expected Site to return the same cell for the same name")
	}

	c := Site("beta")
	if a == c {
		t.Fatal("expected distinct names to mint distinct cells")
	}
}
