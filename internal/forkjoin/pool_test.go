package forkjoin

import (
	"sync/atomic"
	"testing"
)

func TestSequential_RunsBothInline(t *testing.T) {
	var order []int
	Sequential{}.Fork2(
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected sequential order [1 2], got %v", order)
	}
}

func TestGoroutinePool_BothComplete(t *testing.T) {
	p := NewGoroutinePool(4)
	defer p.Close()

	var l, r atomic.Bool
	p.Fork2(
		func() { l.Store(true) },
		func() { r.Store(true) },
	)

	if !l.Load() || !r.Load() {
		t.Fatal("expected both sides to have run before Fork2 returns")
	}
}

func TestGoroutinePool_FallsBackWhenSaturated(t *testing.T) {
	p := NewGoroutinePool(1)
	defer p.Close()

	// saturate the single worker with a slow right-hand task (the side
	// Fork2 hands to the pool) from a concurrent Fork2 call, forcing the
	// Fork2 below to observe the "every worker busy" fallback path.
	started := make(chan struct{})
	release := make(chan struct{})
	go p.Fork2(
		func() {},
		func() {
			close(started)
			<-release
		},
	)
	<-started
	defer close(release)

	var l, r atomic.Bool
	p.Fork2(
		func() { l.Store(true) },
		func() { r.Store(true) },
	)
	if !l.Load() || !r.Load() {
		t.Fatal("expected both sides to run even when the pool is saturated")
	}
}

func TestGoroutinePool_DefaultSize(t *testing.T) {
	p := NewGoroutinePool(0)
	defer p.Close()

	var l, r atomic.Bool
	p.Fork2(func() { l.Store(true) }, func() { r.Store(true) })
	if !l.Load() || !r.Load() {
		t.Fatal("expected both sides to have run")
	}
}
