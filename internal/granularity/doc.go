// Package granularity implements the series-parallel guard (spguard) and
// fork-join primitive (fork2): the decision and accounting machinery
// that selects between a parallel and a sequential variant of a
// computation and records time spent, per worker.
package granularity
