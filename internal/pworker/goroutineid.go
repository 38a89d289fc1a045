package pworker

import (
	"runtime"
	"strconv"
)

// goroutineID returns the numeric id the Go runtime assigned to the
// calling goroutine. It is derived by parsing the "goroutine N [...]"
// header that runtime.Stack writes at the start of a stack dump; the Go
// runtime does not otherwise expose this id.
//
// MyID calls this on every invocation, to find the key of its
// goroutine-id -> worker-id cache; see table.go.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	// expected prefix: "goroutine 123 ["
	const prefix = "goroutine "
	if len(b) < len(prefix) {
		panic("pworker: unexpected stack header: " + string(b))
	}
	b = b[len(prefix):]

	i := 0
	for i < len(b) && b[i] != ' ' {
		i++
	}

	id, err := strconv.ParseInt(string(b[:i]), 10, 64)
	if err != nil {
		panic("pworker: unparsable goroutine id: " + err.Error())
	}
	return id
}
