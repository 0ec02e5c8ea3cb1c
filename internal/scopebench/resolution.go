package scopebench

import "time"

// Resolution is the unit a timer's samples are quantized to before they are
// accumulated into a Record. It is the size of one unit expressed as a
// time.Duration, so converting an elapsed duration to units is integer
// division.
//
// The zero value is invalid: Start rejects it.
type Resolution time.Duration

const (
	Seconds      Resolution = Resolution(time.Second)
	Milliseconds Resolution = Resolution(time.Millisecond)
	Microseconds Resolution = Resolution(time.Microsecond)
	Nanoseconds  Resolution = Resolution(time.Nanosecond)
)

// String returns the unit suffix used in reports: "s", "ms", "us" or "ns".
// Non-standard resolutions render with an empty suffix.
func (r Resolution) String() string {
	switch r {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	default:
		return ""
	}
}

// Valid reports whether r can quantize a duration. Any positive resolution
// is usable even if it has no standard unit suffix.
func (r Resolution) Valid() bool {
	return r > 0
}

// ParseResolution converts a unit suffix to its Resolution: "s", "ms",
// "us" or "ns". Returns ErrInvalidResolution for anything else.
func ParseResolution(unit string) (Resolution, error) {
	switch unit {
	case "s":
		return Seconds, nil
	case "ms":
		return Milliseconds, nil
	case "us":
		return Microseconds, nil
	case "ns":
		return Nanoseconds, nil
	default:
		return 0, ErrInvalidResolution
	}
}

// quantize converts an elapsed duration to whole units of r, truncating
// toward zero. Callers must only pass a valid resolution.
func (r Resolution) quantize(d time.Duration) int64 {
	return int64(d / time.Duration(r))
}
