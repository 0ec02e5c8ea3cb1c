// Package benchmark wires a scopebench.Aggregator into the fixture
// lifecycle: the aggregator is cleared before every timed phase and its
// records are reported into the case's info messages after every phase.
package benchmark

import (
	"fmt"
	"sort"

	"github.com/assaylab/assay/internal/fixture"
	"github.com/assaylab/assay/internal/scopebench"
)

// Observer clears and reports an aggregator around every setUp/tearDown
// sandwich of a Case.
//
// Clearing on BeforeSetUp guarantees a phase never sees samples left
// behind by an earlier phase or an earlier case sharing the aggregator.
// AfterTearDown renders one report per phase that produced samples and
// clears again.
type Observer struct {
	agg *scopebench.Aggregator
}

// NewObserver creates an observer over agg.
func NewObserver(agg *scopebench.Aggregator) *Observer {
	return &Observer{agg: agg}
}

// BeforeSetUp implements fixture.PhaseObserver.
func (o *Observer) BeforeSetUp(c *fixture.Case) {
	o.agg.Clear()
}

// AfterTearDown implements fixture.PhaseObserver. If the phase produced
// samples, they are reported into the case's info messages and the
// aggregator is cleared for the next phase.
func (o *Observer) AfterTearDown(c *fixture.Case) {
	data := o.agg.AllData()
	if len(data) == 0 {
		return
	}

	qualifier := c.File()
	if c.InSubTest() {
		qualifier = c.File() + "::" + c.CurrentSubTestName()
	}
	c.AddInfo(fmt.Sprintf("  <%s> Scope Benchmarkers:", qualifier))

	records := make([]*scopebench.Record, 0, len(data))
	for _, rec := range data {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Label < records[j].Label
	})

	for _, rec := range records {
		unit := rec.Resolution.String()
		c.AddInfo(fmt.Sprintf("    %s Iterations: %d, Durations: Min/Max/Avg: %d/%d/%s %s, Total: %d %s",
			rec.Label,
			rec.Iterations,
			rec.Min,
			rec.Max,
			fixture.FormatValue(rec.Average()),
			unit,
			rec.Total,
			unit,
		))
	}
	c.AddInfo("")

	o.agg.Clear()
}

// NewCase creates a fixture Case with a benchmark observer over agg
// already attached, so hooks and subtests can time regions without any
// further wiring.
func NewCase(file, name string, agg *scopebench.Aggregator, hooks fixture.Hooks, opts ...fixture.Option) *fixture.Case {
	opts = append(opts, fixture.WithObserver(NewObserver(agg)))
	return fixture.New(file, name, hooks, opts...)
}
