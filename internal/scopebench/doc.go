// Package scopebench aggregates wall-clock timings of scoped regions.
//
// A region is timed by starting a ScopedTimer against an Aggregator and
// stopping it when the region ends:
//
//	agg := scopebench.New()
//	bm, err := agg.Start("decode frame", scopebench.Microseconds)
//	if err != nil {
//		return err
//	}
//	defer bm.Stop()
//
// Every committed sample updates the Record registered under the timer's
// label: total, minimum, maximum and iteration count, all expressed in the
// timer's Resolution. Records accumulate across timers until the caller
// resets or clears the aggregator, so a label timed in a loop yields one
// Record summarizing every pass.
//
// Labels are identified after Unicode NFC normalization, so two spellings
// of the same label that differ only in composition share one Record.
//
// Thread-safety: an Aggregator is NOT safe for concurrent use. The intended
// ownership model is one aggregator per test case lifecycle, cleared at the
// boundaries the case defines. Sharing one across goroutines requires
// external synchronization.
package scopebench
