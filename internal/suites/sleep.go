package suites

import (
	"fmt"
	"time"

	"github.com/assaylab/assay/internal/benchmark"
	"github.com/assaylab/assay/internal/fixture"
	"github.com/assaylab/assay/internal/scopebench"
)

// DefaultSleeps are ordered largest first: long sleeps are less
// disturbed by scheduler warmup, so the touchier short ones run after
// the process has settled.
var DefaultSleeps = []time.Duration{
	20 * time.Millisecond,
	10 * time.Millisecond,
	5 * time.Millisecond,
	2 * time.Millisecond,
	time.Millisecond,
	0,
}

// DefaultSamples is how many times each sleep duration is measured when
// the config does not say otherwise.
const DefaultSamples = 5

// CalibrationConfig configures the sleep calibration benchmark.
type CalibrationConfig struct {
	// Sleeps are the sleep durations to calibrate. Empty selects
	// DefaultSleeps.
	Sleeps []time.Duration

	// Samples is how many times each sleep is measured. Non-positive
	// selects DefaultSamples.
	Samples int

	// Resolution is the aggregation resolution for all timed regions.
	// Invalid selects milliseconds.
	Resolution scopebench.Resolution
}

func (cfg CalibrationConfig) withDefaults() CalibrationConfig {
	if len(cfg.Sleeps) == 0 {
		cfg.Sleeps = DefaultSleeps
	}
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultSamples
	}
	if !cfg.Resolution.Valid() {
		cfg.Resolution = scopebench.Milliseconds
	}
	return cfg
}

// SleepCalibration builds the benchmark demo: each configured sleep
// duration is measured cfg.Samples times under its own label, wrapped in
// an outer "sleep-oh-" timer whose total exposes the measurement
// overhead. The subtest asserts on the aggregated records with bounds
// wide enough for scheduling slack and reports the per-label overhead as
// info messages.
func SleepCalibration(cfg CalibrationConfig, agg *scopebench.Aggregator) *fixture.Case {
	cfg = cfg.withDefaults()
	var c *fixture.Case
	c = benchmark.NewCase("sleep.go", "SleepCalibration", agg, fixture.Hooks{
		Initialize: func() {
			c.AddSubTest("calibration", func() bool {
				return calibrate(c, cfg, agg)
			})
		},
	})
	return c
}

func calibrate(c *fixture.Case, cfg CalibrationConfig, agg *scopebench.Aggregator) bool {
	quantum := time.Duration(cfg.Resolution)

	// Slack in resolution units: 5s for a whole label, 200ms for a
	// single sample.
	slack := int64(5 * time.Second / quantum)
	sampleSlack := int64(200 * time.Millisecond / quantum)

	ok := true
	for _, sleepFor := range cfg.Sleeps {
		label := fmt.Sprintf("sleep-%v", sleepFor)
		ohLabel := fmt.Sprintf("sleep-oh-%v", sleepFor)

		ohTimer, err := agg.Start(ohLabel, cfg.Resolution)
		if !fixture.AssertTrue(c, err == nil, "start timer "+ohLabel) {
			return false
		}
		for i := 0; i < cfg.Samples; i++ {
			timer, err := agg.Start(label, cfg.Resolution)
			if !fixture.AssertTrue(c, err == nil, "start timer "+label) {
				ohTimer.Stop()
				return false
			}
			time.Sleep(sleepFor)
			timer.Stop()
		}
		ohTimer.Stop()

		// A sleep never returns early, so the quantized ideal is a
		// floor for every statistic.
		perFloor := int64(sleepFor / quantum)
		totalFloor := perFloor * int64(cfg.Samples)

		rec := agg.RecordByLabel(label)
		okTotal := fixture.AssertBetween(c, totalFloor, totalFloor+slack, rec.Total, label+" total duration")
		okMin := fixture.AssertBetween(c, perFloor, perFloor+sampleSlack, rec.Min, label+" min duration")
		okMax := fixture.AssertBetween(c, rec.Min, rec.Min+sampleSlack, rec.Max, label+" max duration")
		okIterations := fixture.AssertEquals(c, int64(cfg.Samples), rec.Iterations, label+" iterations")
		okAverage := fixture.AssertBetweenEps(c, 0, float64(perFloor+sampleSlack), rec.Average(), 0.5, label+" average duration")

		ohRec := agg.RecordByLabel(ohLabel)
		c.AddInfo(fmt.Sprintf("  %s, Total Overhead: %d", label, ohRec.Total-rec.Total))

		ok = ok && okTotal && okMin && okMax && okIterations && okAverage
	}
	return ok
}
