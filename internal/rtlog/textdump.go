package rtlog

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/deepsea-inria/sptl/internal/cycles"
)

type dumpEntry struct {
	timestamp  uint64
	kind       string
	name       string
	complexity float64
	cycles     uint64
}

// TextDump accumulates sequential_run/measured_run records and flushes
// them, sorted by push-time timestamp, in the format read by external
// post-processing tools. It implements granularity.RunLogger.
type TextDump struct {
	mu      sync.Mutex
	entries []dumpEntry
}

func NewTextDump() *TextDump {
	return &TextDump{}
}

func (d *TextDump) SequentialRun(name string, complexity float64, elapsedCycles uint64) {
	d.push("sequential_run", name, complexity, elapsedCycles)
}

func (d *TextDump) MeasuredRun(name string, complexity float64, elapsedCycles uint64) {
	d.push("measured_run", name, complexity, elapsedCycles)
}

func (d *TextDump) push(kind, name string, complexity float64, elapsedCycles uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, dumpEntry{
		timestamp:  cycles.Now(),
		kind:       kind,
		name:       name,
		complexity: complexity,
		cycles:     elapsedCycles,
	})
}

// Flush writes the buffer to path, sorted by timestamp, then clears it.
func (d *TextDump) Flush(path string) error {
	d.mu.Lock()
	entries := d.entries
	d.entries = nil
	d.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].timestamp < entries[j].timestamp
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rtlog: open %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\n", e.kind, e.name, e.complexity, e.cycles)
	}
	return w.Flush()
}
