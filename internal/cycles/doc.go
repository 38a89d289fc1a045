// Package cycles provides the runtime's notion of a "cycle": a monotonic
// counter, microsecond conversion, and a CAS-with-backoff primitive for
// lock-free, contention-tolerant updates.
//
// Real cycle-accurate hardware counters and CPU-frequency discovery are
// out of scope (external collaborators, per the system spec); Now treats
// one nanosecond of the runtime's monotonic clock as one virtual cycle,
// so CPUFrequencyGHz defaults to 1.0.
package cycles
