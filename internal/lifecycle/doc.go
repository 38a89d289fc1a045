// Package lifecycle implements the process-lifecycle callback registry:
// fixed-capacity {init, output, destroy} triples, invoked in
// registration order at startup and in reverse order at teardown.
// The runtime's own logging flush and estimator persistence do not
// register here: sptl.Launch calls them directly, after RunDestroy.
package lifecycle
