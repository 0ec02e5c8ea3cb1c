package scopebench

import (
	"errors"
	"fmt"
)

// ErrEmptyLabel is returned by Start when the label is empty. No record is
// created or touched.
var ErrEmptyLabel = errors.New("scopebench: timer label must not be empty")

// ErrInvalidResolution is returned by Start when the resolution is not
// positive, and by ParseResolution for an unknown unit suffix. No record
// is created or touched.
var ErrInvalidResolution = errors.New("scopebench: resolution must be positive")

// OverflowError is returned by Start when a label's iteration counter has
// reached its maximum. The aggregator stays usable; only the saturated
// label can no longer accept timers until it is reset or cleared.
type OverflowError struct {
	// Label is the saturated label.
	Label string
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("scopebench: iteration counter overflow for label %q", e.Label)
}

// IsOverflowError returns true if the error is an OverflowError.
// Uses errors.As to handle wrapped errors.
func IsOverflowError(err error) bool {
	var oe *OverflowError
	return errors.As(err, &oe)
}
