package rtlog

import "github.com/joeycumines/logiface"

// EstimatorLogger adapts a structured logiface.Logger into
// estimator.Logger, emitting a Debug-level record each time a cost cell
// publishes a new estimate.
type EstimatorLogger struct {
	Logger *logiface.Logger[*Event]
}

func (l EstimatorLogger) EstimatorPublished(name string, cst, nmax float32, complexity, elapsedUsec float64) {
	if l.Logger == nil {
		return
	}
	l.Logger.Debug().
		Str("site", name).
		Float32("cst", cst).
		Float32("nmax", nmax).
		Float64("complexity", complexity).
		Float64("elapsed_usec", elapsedUsec).
		Log("estimator published")
}
