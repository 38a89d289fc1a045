package cycles

import (
	"runtime"
	"sync/atomic"
)

// Backoff bounds, in cycles, per spec: B in [2^12, 2^17).
const (
	MinBackoffCycles = 1 << 12
	MaxBackoffCycles = 1 << 17
)

// SpinPause busy-waits for at least the given number of cycles, yielding
// the processor periodically via runtime.Gosched so a contended backoff
// loop doesn't starve other goroutines on the same logical CPU.
func SpinPause(c uint64) {
	deadline := Now() + c
	for i := 0; Now() < deadline; i++ {
		if i&0xff == 0xff {
			runtime.Gosched()
		}
	}
}

// CASWithBackoff attempts one strong compare-and-swap on cell. On
// success it returns true. On failure it spins for backoffCycles (a
// caller-chosen value in [MinBackoffCycles, MaxBackoffCycles)) and
// returns false; the caller decides whether to retry.
func CASWithBackoff(cell *atomic.Uint64, expected, desired uint64, backoffCycles uint64) bool {
	if cell.CompareAndSwap(expected, desired) {
		return true
	}
	SpinPause(backoffCycles)
	return false
}
