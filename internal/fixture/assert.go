package fixture

import (
	"cmp"
	"math"
	"reflect"
	"strings"
)

// The assertion functions record a formatted error message on the case
// when the condition does not hold and return the condition's value, so a
// subtest can combine several checks into its verdict:
//
//	okR := fixture.AssertEquals(c, 255, col.Red(), "red")
//	okG := fixture.AssertEquals(c, 0, col.Green(), "green")
//	return okR && okG
//
// A failing assertion never stops the run; it only fails the case.
//
// Every function accepts an optional trailing message that replaces the
// closing exclamation mark of the default text and is joined with spaces
// when several parts are given.

// AssertTrue records "Assertion failed!" if statement is false.
func AssertTrue(c *Case, statement bool, msg ...string) bool {
	if !statement {
		if len(msg) == 0 {
			c.AddError("Assertion failed!")
		} else {
			c.AddError("Assertion failed: " + strings.Join(msg, " "))
		}
	}
	return statement
}

// AssertFalse is AssertTrue with the statement negated.
func AssertFalse(c *Case, statement bool, msg ...string) bool {
	return AssertTrue(c, !statement, msg...)
}

// fail records the assertion body when ok is false and returns ok.
// All comparison assertions funnel through here so every recorded
// message carries the same "Assertion failed: " prefix.
func fail(c *Case, ok bool, body string) bool {
	if !ok {
		c.AddError("Assertion failed: " + body)
	}
	return ok
}

// finish completes an assertion body: a bang without a user message, a
// comma-joined message otherwise.
func finish(body string, msg []string) string {
	if len(msg) == 0 {
		return body + "!"
	}
	return body + ", " + strings.Join(msg, " ")
}

// AssertEquals records an error if checked does not equal expected.
func AssertEquals[T comparable](c *Case, expected, checked T, msg ...string) bool {
	return fail(c, expected == checked,
		finish(FormatValue(checked)+" should be "+FormatValue(expected), msg))
}

// AssertNotEquals records an error if checked equals comparedTo.
func AssertNotEquals[T comparable](c *Case, comparedTo, checked T, msg ...string) bool {
	return fail(c, comparedTo != checked,
		finish(FormatValue(checked)+" should NOT be "+FormatValue(comparedTo), msg))
}

// AssertLess records an error if checked is not less than comparedTo.
func AssertLess[T cmp.Ordered](c *Case, checked, comparedTo T, msg ...string) bool {
	return fail(c, checked < comparedTo,
		finish(FormatValue(checked)+" should be < "+FormatValue(comparedTo), msg))
}

// AssertLequals records an error if checked is not less than or equal to
// comparedTo.
func AssertLequals[T cmp.Ordered](c *Case, checked, comparedTo T, msg ...string) bool {
	return fail(c, checked <= comparedTo,
		finish(FormatValue(checked)+" should be <= "+FormatValue(comparedTo), msg))
}

// AssertGreater records an error if checked is not greater than comparedTo.
func AssertGreater[T cmp.Ordered](c *Case, checked, comparedTo T, msg ...string) bool {
	return fail(c, checked > comparedTo,
		finish(FormatValue(checked)+" should be > "+FormatValue(comparedTo), msg))
}

// AssertGequals records an error if checked is not greater than or equal
// to comparedTo.
func AssertGequals[T cmp.Ordered](c *Case, checked, comparedTo T, msg ...string) bool {
	return fail(c, checked >= comparedTo,
		finish(FormatValue(checked)+" should be >= "+FormatValue(comparedTo), msg))
}

// AssertBetween records an error if checked lies outside [minVal, maxVal].
func AssertBetween[T cmp.Ordered](c *Case, minVal, maxVal, checked T, msg ...string) bool {
	ok := minVal <= checked && maxVal >= checked
	body := "out of range: " + FormatValue(minVal) + " <= " + FormatValue(checked) + " <= " + FormatValue(maxVal)
	if len(msg) == 0 {
		return fail(c, ok, body+" !")
	}
	return fail(c, ok, body+", "+strings.Join(msg, " "))
}

// AssertEqualsEps records an error if checked is farther than epsilon
// from expected.
func AssertEqualsEps(c *Case, expected, checked, epsilon float64, msg ...string) bool {
	return fail(c, math.Abs(expected-checked) <= epsilon,
		finish(FormatValue(checked)+" should be "+FormatValue(expected), msg))
}

// AssertNotEqualsEps records an error if checked is within epsilon of
// comparedTo.
func AssertNotEqualsEps(c *Case, comparedTo, checked, epsilon float64, msg ...string) bool {
	return fail(c, math.Abs(comparedTo-checked) > epsilon,
		finish(FormatValue(checked)+" should NOT be "+FormatValue(comparedTo), msg))
}

// AssertLequalsEps records an error if checked is not less than or within
// epsilon of comparedTo.
func AssertLequalsEps(c *Case, checked, comparedTo, epsilon float64, msg ...string) bool {
	ok := checked < comparedTo || math.Abs(comparedTo-checked) <= epsilon
	return fail(c, ok,
		finish(FormatValue(checked)+" should be <= "+FormatValue(comparedTo), msg))
}

// AssertGequalsEps records an error if checked is not greater than or
// within epsilon of comparedTo.
func AssertGequalsEps(c *Case, checked, comparedTo, epsilon float64, msg ...string) bool {
	ok := checked > comparedTo || math.Abs(comparedTo-checked) <= epsilon
	return fail(c, ok,
		finish(FormatValue(checked)+" should be >= "+FormatValue(comparedTo), msg))
}

// AssertBetweenEps records an error if checked lies outside [minVal,
// maxVal] widened outward by epsilon on both ends.
func AssertBetweenEps(c *Case, minVal, maxVal, checked, epsilon float64, msg ...string) bool {
	ok := (minVal < checked || math.Abs(minVal-checked) <= epsilon) &&
		(maxVal > checked || math.Abs(maxVal-checked) <= epsilon)
	body := "out of range: " + FormatValue(minVal) + " <= " + FormatValue(checked) + " <= " + FormatValue(maxVal)
	if len(msg) == 0 {
		return fail(c, ok, body+" !")
	}
	return fail(c, ok, body+", "+strings.Join(msg, " "))
}

// AssertNil records an error if checked is a non-nil value. Typed nil
// pointers, maps, slices, channels and functions inside the interface
// count as nil.
func AssertNil(c *Case, checked any, msg ...string) bool {
	ok := isNil(checked)
	if len(msg) == 0 {
		return fail(c, ok, "pointer should be NULL")
	}
	return fail(c, ok, "pointer should be NULL, "+strings.Join(msg, " "))
}

// AssertNotNil records an error if checked is nil.
func AssertNotNil(c *Case, checked any, msg ...string) bool {
	ok := !isNil(checked)
	if len(msg) == 0 {
		return fail(c, ok, "pointer is NULL")
	}
	return fail(c, ok, "pointer is NULL, "+strings.Join(msg, " "))
}

// isNil reports whether v is nil, looking through the interface at typed
// nil values of nilable kinds.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
