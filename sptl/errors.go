package sptl

import (
	"github.com/deepsea-inria/sptl/internal/granularity"
	"github.com/deepsea-inria/sptl/internal/rtconfig"
)

// ConfigError reports a malformed sptl_* environment variable, returned
// by Launch rather than panicked (spec.md §7's configuration-failure
// category).
type ConfigError = rtconfig.ConfigError

// InvariantError is the panic value for a bug in the runtime itself,
// never a user input or configuration error (spec.md §7's
// invariant-violation category).
type InvariantError = granularity.InvariantError
