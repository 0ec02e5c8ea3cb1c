// Package suites holds the built-in demo suites: a plain unit fixture
// around a small color type and a benchmark fixture calibrating sleep
// durations. The CLI runs them; they double as end-to-end exercises of
// the fixture lifecycle, the assertions and the scope benchmarkers.
package suites

import (
	"github.com/assaylab/assay/internal/fixture"
	"github.com/assaylab/assay/internal/scopebench"
)

// All returns the built-in suites in run order. Benchmark suites time
// their regions through agg.
func All(agg *scopebench.Aggregator) []*fixture.Case {
	return []*fixture.Case{
		Color(),
		SleepCalibration(CalibrationConfig{}, agg),
	}
}
