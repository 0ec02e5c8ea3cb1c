package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assaylab/assay/internal/benchmark"
	"github.com/assaylab/assay/internal/fixture"
	"github.com/assaylab/assay/internal/scopebench"
	"github.com/assaylab/assay/internal/testutil"
)

// passCase returns a case whose main method and all subtests pass.
func passCase(file, name string, subTests ...string) *fixture.Case {
	c := fixture.New(file, name, fixture.Hooks{})
	for _, st := range subTests {
		c.AddSubTest(st, func() bool { return true })
	}
	return c
}

// failCase returns a case whose main method fails.
func failCase(file, name string) *fixture.Case {
	return fixture.New(file, name, fixture.Hooks{
		TestMethod: func() bool { return false },
	})
}

// TestRunner_CountersAndVerdicts tests the collected report for a mixed
// run: per-case snapshots and the aggregated counters.
func TestRunner_CountersAndVerdicts(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, WithRunIDGenerator(testutil.NewFixedRunID("run-counters")))

	cases := []*fixture.Case{
		passCase("color.go", "Color", "red", "green"),
		failCase("fade.go", "Fade"),
		passCase("", "Standalone"),
	}

	rep := r.Run(cases)

	require.Len(t, rep.Cases, 3)
	assert.Equal(t, "run-counters", rep.RunID)
	assert.Equal(t, 2, rep.Passed)
	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, 2, rep.SubTests)
	assert.Equal(t, 2, rep.PassedSubTests)
	assert.False(t, rep.AllPassed())

	assert.True(t, rep.Cases[0].Pass)
	assert.Equal(t, "Color", rep.Cases[0].Name)
	assert.Equal(t, "color.go", rep.Cases[0].File)
	assert.Equal(t, 2, rep.Cases[0].SubTests)
	assert.Equal(t, 2, rep.Cases[0].PassedSubTests)

	assert.False(t, rep.Cases[1].Pass)
	assert.Equal(t, []string{"  <fade.go> failed!"}, rep.Cases[1].ErrorMessages)
}

// TestRunner_AllPassed tests the happy path: every case green.
func TestRunner_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, WithRunIDGenerator(testutil.NewFixedRunID("run-green")))

	rep := r.Run([]*fixture.Case{
		passCase("color.go", "Color"),
		passCase("fade.go", "Fade", "window"),
	})

	assert.True(t, rep.AllPassed())
	assert.Equal(t, 2, rep.Passed)
	assert.Contains(t, buf.String(), "Passed tests: 2 / 2 (SubTests: 1 / 1)")
}

// TestRunner_EmptyRun tests that a run over no cases still renders the
// banner and a zero summary.
func TestRunner_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, WithRunIDGenerator(testutil.NewFixedRunID("run-empty")))

	rep := r.Run(nil)

	assert.Equal(t, 0, rep.Total)
	assert.True(t, rep.AllPassed())
	assert.NotContains(t, buf.String(), "Running test")
	assert.Contains(t, buf.String(), "Passed tests: 0 / 0 (SubTests: 0 / 0)")
}

// TestRunner_SubTestsCountedForFailedCases tests that registered
// subtests of a failed case still enter the totals.
func TestRunner_SubTestsCountedForFailedCases(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, WithRunIDGenerator(testutil.NewFixedRunID("run-failed-subs")))

	c := fixture.New("fade.go", "Fade", fixture.Hooks{
		TestMethod: func() bool { return false },
	})
	c.AddSubTest("window", func() bool { return true })

	rep := r.Run([]*fixture.Case{c})

	assert.Equal(t, 0, rep.Passed)
	assert.Equal(t, 1, rep.SubTests)
	assert.Equal(t, 1, rep.PassedSubTests)
	assert.Contains(t, buf.String(), "Passed tests: 0 / 1 (SubTests: 1 / 1)")
}

// TestRunner_DefaultRunIDIsUUID tests that without an injected generator
// the run is stamped with a parseable UUID.
func TestRunner_DefaultRunIDIsUUID(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf)

	rep := r.Run(nil)

	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, rep.RunID)
}

// TestCaseReport_JSONEmptyArrays tests that message slices serialize as
// JSON arrays, never null.
func TestCaseReport_JSONEmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf, WithRunIDGenerator(testutil.NewFixedRunID("run-json")))

	rep := r.Run([]*fixture.Case{passCase("color.go", "Color")})

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"info_messages":[]`)
	assert.Contains(t, string(data), `"error_messages":[]`)
	assert.NotContains(t, string(data), "null")
}

// TestRunner_GoldenMixed compares the full text report of a mixed run
// against the golden file.
func TestRunner_GoldenMixed(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(&buf,
		WithTitle("Assay Self Check"),
		WithRunIDGenerator(testutil.NewFixedRunID("run-fixed-001")),
	)

	r.Run([]*fixture.Case{
		passCase("color.go", "Color", "red", "green"),
		failCase("fade.go", "Fade"),
		passCase("", "Standalone"),
	})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "mixed_run", buf.Bytes())
}

// TestRunner_GoldenBench compares the text report of a benchmark case,
// timed regions driven by a manual clock, against the golden file.
func TestRunner_GoldenBench(t *testing.T) {
	clock := testutil.NewManualClock(time.Time{})
	agg := scopebench.New(scopebench.WithNowFunc(clock.Now))

	measure := func(label string, d time.Duration) {
		timer, err := agg.Start(label, scopebench.Milliseconds)
		require.NoError(t, err)
		clock.Advance(d)
		timer.Stop()
	}

	c := benchmark.NewCase("sleep.go", "SleepCalibration", agg, fixture.Hooks{
		TestMethod: func() bool {
			measure("sleep-2ms", 2*time.Millisecond)
			measure("sleep-2ms", 2*time.Millisecond)
			measure("overhead", 0)
			return true
		},
	})
	c.AddSubTest("burst", func() bool {
		measure("sleep-2ms", 3*time.Millisecond)
		return true
	})

	var buf bytes.Buffer
	r := NewRunner(&buf,
		WithTitle("Benchmark Calibration"),
		WithRunIDGenerator(testutil.NewFixedRunID("run-fixed-002")),
	)
	r.Run([]*fixture.Case{c})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "bench_run", buf.Bytes())
}
