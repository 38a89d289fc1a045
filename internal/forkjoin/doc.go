// Package forkjoin defines the pluggable fork-join substrate that
// internal/granularity's Fork2 dispatches onto: "both run; return after
// both complete; either may migrate". A genuine work-stealing scheduler
// is an out-of-scope external collaborator; this package provides the
// Primitive contract plus a trivial sequential fallback and a bounded
// goroutine-pool reference implementation.
package forkjoin
