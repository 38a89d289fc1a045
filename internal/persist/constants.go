package persist

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/deepsea-inria/sptl/internal/estimator"
)

// DefaultPath is the file used when the host does not configure one.
const DefaultPath = "constants.txt"

// Load reads path, a line-oriented "<name> <cost>" file, seeding the
// named cells in sites via estimator.Cell.Seed. Unknown names are
// ignored; whitespace-only lines are skipped; missing names simply
// leave their cell undefined. A missing file is not an error: it
// denotes a fresh process with no learned history yet.
func Load(path string, sites map[string]*estimator.Cell) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("persist: open %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		cell, ok := sites[fields[0]]
		if !ok {
			continue
		}
		cst, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			continue
		}
		cell.Seed(float32(cst))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("persist: read %q: %w", path, err)
	}
	return nil
}

// Save writes every defined cell in sites to path, one
// "<name> <cost>" record per line.
func Save(path string, sites map[string]*estimator.Cell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for name, cell := range sites {
		if cell.IsUndefined() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %g\n", name, cell.CostPerUnit()); err != nil {
			return fmt.Errorf("persist: write %q: %w", path, err)
		}
	}
	return w.Flush()
}
