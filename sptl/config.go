package sptl

import "github.com/deepsea-inria/sptl/internal/rtconfig"

// Config is the parsed, validated set of sptl_* environment variables
// Launch reads at bootstrap.
type Config = rtconfig.Config
