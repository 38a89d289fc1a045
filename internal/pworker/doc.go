// Package pworker provides dense, goroutine-resolved worker identity and
// cache-line-padded per-worker storage.
//
// Go has no portable thread-local storage. Worker identity is instead
// derived from the calling goroutine's runtime-assigned numeric id, which
// is parsed from a runtime.Stack header on every call; the dense worker id
// is assigned once per goroutine and cached, so repeated calls from the
// same goroutine add only a lock-free map read to that parse.
package pworker
