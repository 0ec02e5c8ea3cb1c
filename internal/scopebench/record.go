package scopebench

import "math"

// Record holds the accumulated statistics for one label.
//
// Total, Min, Max and Iterations are expressed in units of Resolution.
// Min starts at math.MaxInt64 and keeps that sentinel until the first
// sample commits; Max starts at zero. Iterations counts started timers,
// so a timer that was started but never stopped is counted even though
// it contributed no duration.
type Record struct {
	Label      string
	Total      int64
	Min        int64
	Max        int64
	Iterations int64
	Resolution Resolution
}

// Average returns the mean duration per iteration in units of Resolution,
// or 0 when no timer has been started.
func (r *Record) Average() float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Iterations)
}

// reset zeroes the statistics while keeping the label and resolution, so
// the record is ready to accumulate a fresh batch of samples.
func (r *Record) reset() {
	r.Total = 0
	r.Min = math.MaxInt64
	r.Max = 0
	r.Iterations = 0
}

func newRecord(label string) *Record {
	return &Record{Label: label, Min: math.MaxInt64}
}
