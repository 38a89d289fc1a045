package sptl

import (
	"fmt"
	"runtime"

	"github.com/deepsea-inria/sptl/internal/estimator"
)

// Site is a call site's estimator handle: a human-readable tag, derived
// from a caller-supplied name plus the file:line NewSite was called
// from, paired with the process-lifetime cost cell that tag mints.
// Construct one Site per call site, typically into a package-level
// variable, so SPGuard's hot path never touches the estimator registry.
type Site struct {
	tag  string
	cell *estimator.Cell
}

// NewSite mints a Site tagged "name@file:line", where file:line is the
// source location of this NewSite call.
func NewSite(name string) *Site {
	tag := name
	if _, file, line, ok := runtime.Caller(1); ok {
		tag = fmt.Sprintf("%s@%s:%d", name, file, line)
	}
	return &Site{tag: tag, cell: estimator.Site(tag)}
}

// Tag returns the site's human-readable estimator tag.
func (s *Site) Tag() string { return s.tag }
