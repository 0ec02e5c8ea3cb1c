// Package samplelog provides a SQLite-backed journal of raw timing
// samples.
//
// The journal is an append-only log scoped to one process run:
//   - one row per committed timer stop, in commit order
//   - seq INTEGER assigned by the journal (logical order, never wall time)
//   - raw elapsed time in nanoseconds plus the unit it was aggregated at
//
// Aggregated statistics lose the individual samples; attaching a Journal
// as the aggregator's sample sink keeps them inspectable after the run.
// Open with ":memory:" for the usual in-process journal, or with a file
// path when the samples should outlive the process.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package samplelog
