package scopebench

import (
	"fmt"
	"math"
	"time"
)

// ScopedTimer measures one pass over a labeled region. Obtain it from
// Aggregator.Start and commit it with Stop when the region ends.
type ScopedTimer struct {
	agg     *Aggregator
	rec     *Record
	label   string
	res     Resolution
	start   time.Time
	stopped bool
}

// Start begins timing one pass of the region identified by label.
//
// The label's record is created on first use. Starting increments the
// record's iteration count immediately and stamps the record with the
// timer's label and resolution (last writer wins when resolutions are
// mixed under one label).
//
// Errors: ErrEmptyLabel and ErrInvalidResolution reject the arguments
// without touching any record. An OverflowError means the label's
// iteration counter is saturated; the caller can recover by resetting
// or clearing the aggregator.
func (a *Aggregator) Start(label string, res Resolution) (*ScopedTimer, error) {
	if label == "" {
		return nil, ErrEmptyLabel
	}
	if !res.Valid() {
		return nil, ErrInvalidResolution
	}

	rec := a.RecordByLabel(label)
	if rec.Iterations == math.MaxInt64 {
		return nil, &OverflowError{Label: label}
	}
	rec.Iterations++
	rec.Label = label
	rec.Resolution = res

	return &ScopedTimer{
		agg:   a,
		rec:   rec,
		label: label,
		res:   res,
		start: a.now(),
	}, nil
}

// Stop commits the elapsed time since Start into the timer's record:
// the duration is quantized to the timer's resolution, added to the total
// and folded into min and max. Only the first Stop commits; later calls
// are no-ops, so deferring Stop alongside an explicit early Stop is safe.
//
// Stop never fails. An attached SampleSink that rejects the raw sample is
// logged and ignored. Overflow of the accumulated total is a broken
// invariant and panics.
func (t *ScopedTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true

	elapsed := t.agg.now().Sub(t.start)
	units := t.res.quantize(elapsed)

	if t.rec.Total > math.MaxInt64-units {
		panic(fmt.Sprintf("ScopedTimer: total overflow for label %q", t.label))
	}
	t.rec.Total += units
	if units < t.rec.Min {
		t.rec.Min = units
	}
	if units > t.rec.Max {
		t.rec.Max = units
	}

	if t.agg.sink != nil {
		if err := t.agg.sink.ObserveSample(t.label, elapsed, t.res); err != nil {
			t.agg.logger.Warn("sample sink rejected sample",
				"label", t.label,
				"elapsed", elapsed,
				"error", err,
			)
		}
	}
}
