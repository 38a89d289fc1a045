package sptl

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/deepsea-inria/sptl/pack"
	"github.com/deepsea-inria/sptl/reduce"
	"github.com/deepsea-inria/sptl/scan"
)

var fibSite = NewSite("fib")

func parFib(n int) int {
	if n < 2 {
		return n
	}
	var l, r int
	SPGuardUnary(fibSite, float64(n),
		func() {
			Fork2(
				func() { l = parFib(n - 1) },
				func() { r = parFib(n - 2) },
			)
		},
		func() {
			l = parFib(n - 1)
			r = parFib(n - 2)
		},
	)
	return l + r
}

func TestSPGuard_Fibonacci(t *testing.T) {
	if got := parFib(10); got != 55 {
		t.Fatalf("par_fib(10) = %d, want 55", got)
	}
	if got := parFib(30); got != 832040 {
		t.Fatalf("par_fib(30) = %d, want 832040", got)
	}
}

func TestRegisterCallback_RunsAroundLaunch(t *testing.T) {
	var initRan, outputRan, destroyRan atomic.Bool
	if err := RegisterCallback(
		func() { initRan.Store(true) },
		func() { outputRan.Store(true) },
		func() { destroyRan.Store(true) },
	); err != nil {
		t.Fatalf("RegisterCallback: %v", err)
	}

	var bodyRan bool
	err := Launch(context.Background(), func(ctx context.Context) error {
		bodyRan = true
		if !initRan.Load() {
			t.Fatal("expected init callbacks to run before body")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if !bodyRan {
		t.Fatal("expected body to run")
	}
	if !outputRan.Load() || !destroyRan.Load() {
		t.Fatal("expected output and destroy callbacks to run")
	}
}

func TestFacade_SkeletonsDriveOffController(t *testing.T) {
	rt := Controller()

	sum := reduce.Reduce(rt, "facade-sum", []int{10, 20, 30, 40, 50}, 0, func(a, b int) int { return a + b })
	if sum != 150 {
		t.Fatalf("reduce sum = %d, want 150", sum)
	}

	in := []int{10, 20, 30, 40, 50}
	out := make([]int, len(in))
	scan.Scan(rt, scan.Options[int]{Site: "facade-scan", Orientation: scan.ForwardExclusive}, in, 0, func(a, b int) int { return a + b }, out)
	want := []int{0, 10, 30, 60, 100}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("scan[%d] = %d, want %d", i, out[i], want[i])
		}
	}

	packed := pack.Pack(rt, "facade-pack", []int{1, 2, 3, 4, 5}, []bool{true, false, true, false, true})
	wantPacked := []int{1, 3, 5}
	if len(packed) != len(wantPacked) {
		t.Fatalf("pack len = %d, want %d", len(packed), len(wantPacked))
	}
	for i := range wantPacked {
		if packed[i] != wantPacked[i] {
			t.Fatalf("pack[%d] = %d, want %d", i, packed[i], wantPacked[i])
		}
	}
}
