package sptl

import (
	"context"
	"os"

	"github.com/deepsea-inria/sptl/internal/estimator"
	"github.com/deepsea-inria/sptl/internal/forkjoin"
	"github.com/deepsea-inria/sptl/internal/granularity"
	"github.com/deepsea-inria/sptl/internal/persist"
	"github.com/deepsea-inria/sptl/internal/rtconfig"
	"github.com/deepsea-inria/sptl/internal/rtlog"
	"github.com/joeycumines/logiface"
)

// Launch is the runtime's bootstrap/teardown sequence (spec.md §4.10):
// parse configuration, wire the structured and (optionally) text-dump
// logging sinks, load persisted estimator constants, install the
// granularity controller and fork-join substrate, run the lifecycle
// registry's init callbacks, invoke body, run output then destroy
// callbacks (destroy in reverse registration order), flush logs and
// persist estimator constants, and return body's error.
//
// A *ConfigError from a malformed sptl_* environment variable is
// returned before body ever runs; Launch never calls os.Exit, since a
// library must not terminate its host process.
func Launch(ctx context.Context, body func(context.Context) error) error {
	cfg, err := rtconfig.Load()
	if err != nil {
		return err
	}

	writer := rtlog.NewWriter(os.Stderr)
	logger := logiface.New[*rtlog.Event](
		logiface.WithEventFactory[*rtlog.Event](rtlog.Factory{}),
		logiface.WithWriter[*rtlog.Event](writer),
		logiface.WithLevel[*rtlog.Event](logiface.LevelDebug),
	)
	estimator.SetLogger(rtlog.EstimatorLogger{Logger: logger})

	var textDump *rtlog.TextDump
	var runLogger granularity.RunLogger
	if cfg.LogTextPath != "" {
		textDump = rtlog.NewTextDump()
		runLogger = textDump
	}

	sites := estimator.Snapshot()
	if err := persist.Load(persist.DefaultPath, sites); err != nil {
		return err
	}

	var substrate forkjoin.Primitive = forkjoin.Sequential{}
	var pool *forkjoin.GoroutinePool
	if cfg.Proc > 1 {
		pool = forkjoin.NewGoroutinePool(cfg.Proc)
		substrate = pool
	}
	setController(granularity.NewController(substrate, cfg.KappaUsec, cfg.Alpha, runLogger))
	if pool != nil {
		defer pool.Close()
	}

	currentTopologyHint().Apply(cfg, logger)

	callbacks.RunInit()

	bodyErr := body(ctx)

	callbacks.RunOutput()
	callbacks.RunDestroy()

	if err := persist.Save(persist.DefaultPath, estimator.Snapshot()); err != nil && bodyErr == nil {
		bodyErr = err
	}
	if textDump != nil {
		if err := textDump.Flush(cfg.LogTextPath); err != nil && bodyErr == nil {
			bodyErr = err
		}
	}

	return bodyErr
}
