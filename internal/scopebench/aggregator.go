package scopebench

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/unicode/norm"
)

// labelDomain prefixes label hashes for domain separation.
// Version suffix enables future algorithm migration.
const labelDomain = "assay/bench-label/v1"

// labelKey computes the map key for a label.
// Format: SHA256(domain + 0x00 + NFC(label)), hex encoded.
// NFC normalization makes composition-equivalent labels share one record.
func labelKey(label string) string {
	h := sha256.New()
	h.Write([]byte(labelDomain))
	h.Write([]byte{0x00}) // Null separator prevents domain/label boundary ambiguity
	h.Write([]byte(norm.NFC.String(label)))
	return hex.EncodeToString(h.Sum(nil))
}

// SampleSink receives every raw sample a timer commits, before quantization.
// Implementations must not block the timed path; a returned error is logged
// and the sample is dropped, never surfaced to the timer.
type SampleSink interface {
	ObserveSample(label string, elapsed time.Duration, res Resolution) error
}

// Aggregator owns the set of Records produced by scoped timers.
//
// Records persist across timers until ResetAll or Clear. The aggregator is
// an explicit instance rather than process-global state, so independent
// measurement scopes (one per test case, typically) cannot bleed into each
// other.
type Aggregator struct {
	records map[string]*Record
	now     func() time.Time
	logger  *slog.Logger
	sink    SampleSink
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithNowFunc replaces the wall clock. Tests inject a manual clock to make
// elapsed durations deterministic.
func WithNowFunc(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithLogger sets the logger used for sink failures. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithSampleSink attaches a sink that observes every committed sample.
func WithSampleSink(sink SampleSink) Option {
	return func(a *Aggregator) {
		a.sink = sink
	}
}

// New creates an empty aggregator backed by the real clock.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AllData returns the live record map, keyed by hashed label. Mutating a
// returned Record mutates the aggregator's state. The map is lazily
// initialized, so calling AllData on a fresh aggregator returns an empty,
// usable map rather than nil.
func (a *Aggregator) AllData() map[string]*Record {
	if a.records == nil {
		a.records = make(map[string]*Record)
	}
	return a.records
}

// RecordByLabel returns the record registered under label, creating a
// zero-stat record if the label has never been timed. A record created this
// way has no resolution until a timer starts against it.
func (a *Aggregator) RecordByLabel(label string) *Record {
	records := a.AllData()
	key := labelKey(label)
	rec, ok := records[key]
	if !ok {
		rec = newRecord(label)
		records[key] = rec
	}
	return rec
}

// ResetAll zeroes the statistics of every record while keeping the records
// themselves, so labels and resolutions survive into the next batch.
func (a *Aggregator) ResetAll() {
	for _, rec := range a.records {
		rec.reset()
	}
}

// Clear drops every record. The map instance is retained, so views obtained
// from AllData observe the emptied state.
func (a *Aggregator) Clear() {
	clear(a.records)
}
