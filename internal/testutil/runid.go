package testutil

// FixedRunID returns the same run identifier every time.
//
// This enables deterministic report rendering and golden file comparison:
// the same cases run with the same FixedRunID produce byte-identical
// reports.
//
// Thread-safety: FixedRunID is stateless after construction and safe for
// concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a generator that always returns id.
//
// If id is empty, Generate returns "run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run identifier.
//
// Implements report.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
