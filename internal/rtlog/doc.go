// Package rtlog is the runtime's logging surface. It implements a
// minimal logiface.Event/EventFactory pair (structured logging, at
// Debug level, for estimator publications) and a separate plain-text
// sink, append-only and sorted by push-time cycles.Now timestamp on
// flush, writing one "sequential_run" or "measured_run" line per run in
// the format read by external post-processing tools.
package rtlog
