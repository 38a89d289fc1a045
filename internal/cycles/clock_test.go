package cycles

import (
	"sync/atomic"
	"testing"
)

func TestMicroseconds_DefaultFrequency(t *testing.T) {
	old := CPUFrequencyGHz
	defer func() { CPUFrequencyGHz = old }()
	CPUFrequencyGHz = 1.0

	if got := Microseconds(1000); got != 1.0 {
		t.Fatalf("expected 1000 cycles (ns) == 1us, got %v", got)
	}
}

func TestElapsed_Monotonic(t *testing.T) {
	start := Now()
	SpinPause(1) // trivial, just to advance the clock a little
	if e := Elapsed(start); e == 0 {
		// not fatal on an extremely fast clock, but SpinPause guarantees
		// at least 1 cycle of busy-wait, so this should never trip
		t.Fatalf("expected nonzero elapsed time after SpinPause")
	}
}

func TestCASWithBackoff_SucceedsOnMatch(t *testing.T) {
	var v atomic.Uint64
	v.Store(5)

	if !CASWithBackoff(&v, 5, 9, MinBackoffCycles) {
		t.Fatal("expected CAS to succeed when expected matches")
	}
	if got := v.Load(); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}

func TestCASWithBackoff_FailsOnMismatch(t *testing.T) {
	var v atomic.Uint64
	v.Store(5)

	if CASWithBackoff(&v, 1, 9, MinBackoffCycles) {
		t.Fatal("expected CAS to fail when expected does not match")
	}
	if got := v.Load(); got != 5 {
		t.Fatalf("expected value unchanged at 5, got %d", got)
	}
}
