// Package status holds the outcome taxonomy shared by the calendar, leap
// second and time scale packages.
//
// Every operation reports hard failures as an error wrapping one of the
// sentinels below, and soft conditions as a Warning returned next to a
// perfectly usable result.
package status

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCalendarField is returned for a bad year, month, day,
	// time of day or day fraction.
	ErrInvalidCalendarField = errors.New("invalid calendar field")

	// ErrOutOfRangeJulianDate is returned when a two-part date falls
	// outside the span the calendar algorithms support.
	ErrOutOfRangeJulianDate = errors.New("julian date out of range")

	// ErrLookupFailure is returned when the leap second table cannot
	// answer a query, e.g. a replaced table starts after the queried date.
	ErrLookupFailure = errors.New("leap second lookup failure")
)

// Error describes a failed operation
type Error struct {
	Op     string
	Err    error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error for op wrapping kind
func Errorf(op string, kind error, format string, args ...interface{}) error {
	return &Error{
		Op:     op,
		Err:    kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Warning is a set of non-fatal conditions attached to a result.
type Warning uint8

const (
	// DubiousYear marks a date outside the range for which leap second
	// information is known with confidence.
	DubiousYear Warning = 1 << iota

	// LeapRamp marks a UT1 to UTC conversion that fell inside a leap
	// second day and had its UT1-UTC ramped across the day.
	LeapRamp

	// BeyondDayEnd marks a time of day at or past the end of its day.
	BeyondDayEnd

	// PrecisionClamped marks a requested number of decimal places that
	// was out of range and replaced by zero.
	PrecisionClamped
)

var warningNames = []struct {
	w    Warning
	name string
}{
	{DubiousYear, "dubious year"},
	{LeapRamp, "leap second ramp"},
	{BeyondDayEnd, "time beyond end of day"},
	{PrecisionClamped, "precision clamped"},
}

// Has reports whether every bit of x is set in w
func (w Warning) Has(x Warning) bool {
	return w&x == x
}

func (w Warning) String() string {
	if w == 0 {
		return "ok"
	}

	var names []string
	for _, n := range warningNames {
		if w.Has(n.w) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ", ")
}

// Code maps an outcome onto the integer convention used by callers that
// expect a single status value: 0 for success, positive for success with
// warnings, negative for failure.
func Code(w Warning, err error) int {
	switch {
	case err == nil:
		return int(w)
	case errors.Is(err, ErrInvalidCalendarField):
		return -1
	case errors.Is(err, ErrOutOfRangeJulianDate):
		return -2
	case errors.Is(err, ErrLookupFailure):
		return -3
	default:
		return -4
	}
}
