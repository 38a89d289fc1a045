package sptl

import (
	"sync"

	"github.com/deepsea-inria/sptl/internal/rtconfig"
	"github.com/deepsea-inria/sptl/internal/rtlog"
	"github.com/joeycumines/logiface"
)

// TopologyHint is Launch's collaborator for CPU-topology/NUMA
// interleaving and CPU-frequency discovery (spec.md §1's out-of-scope
// external collaborators). Launch calls Apply once, after parsing
// configuration and before running its body.
type TopologyHint interface {
	Apply(cfg rtconfig.Config, logger *logiface.Logger[*rtlog.Event])
}

// noopTopologyHint is the shipped default: it performs no NUMA binding
// or frequency discovery, only logging the policy Launch was asked to
// apply, since no corpus example ships a topology/NUMA control library
// for this to delegate to.
type noopTopologyHint struct{}

func (noopTopologyHint) Apply(cfg rtconfig.Config, logger *logiface.Logger[*rtlog.Event]) {
	if logger == nil {
		return
	}
	logger.Debug().
		Str("numa_alloc_interleaved", boolString(cfg.NUMAAllocInterleaved)).
		Log("topology hint applied (no-op)")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

var (
	topologyMu   sync.RWMutex
	topologyHint TopologyHint = noopTopologyHint{}
)

// SetTopologyHint installs the TopologyHint Launch will invoke. Intended
// to be called once, before Launch, by a host that has a real
// NUMA/topology collaborator to wire in.
func SetTopologyHint(h TopologyHint) {
	topologyMu.Lock()
	defer topologyMu.Unlock()
	topologyHint = h
}

func currentTopologyHint() TopologyHint {
	topologyMu.RLock()
	defer topologyMu.RUnlock()
	return topologyHint
}
