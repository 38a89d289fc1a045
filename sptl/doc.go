// Package sptl is the runtime's root façade: bootstrap (Launch),
// granularity control (SPGuard/SPGuardUnary/Fork2), and lifecycle
// callback registration. The higher-order skeletons (parallelfor,
// reduce, scan, pack) are separate packages, each driven by the
// *granularity.Controller Launch constructs.
package sptl
