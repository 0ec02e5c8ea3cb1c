package report

import "github.com/google/uuid"

// RunIDGenerator produces the identifier stamped on a run report.
//
// Production code uses UUIDv7RunID; tests inject a fixed generator so
// rendered reports are byte-stable.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7RunID generates time-sortable UUIDv7 run identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, making run IDs
// sortable by creation time, which keeps archived reports in run order.
//
// Uses github.com/google/uuid package for RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDv7RunID is stateless and safe for concurrent use.
type UUIDv7RunID struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7RunID) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
