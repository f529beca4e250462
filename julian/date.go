// Package julian converts between Gregorian calendar dates and Julian
// dates held as two float64 parts.
//
// A single float64 resolves a contemporary Julian date only to about 20
// microseconds, so the date is split in two: typically a "big" part such
// as 2400000.5 or a whole day number, and a small fraction.
package julian

import "math"

const (
	// MJD0 is the Julian date of the Modified Julian Date zero point
	MJD0 = 2400000.5

	// J2000 is the Julian date of the J2000.0 reference epoch
	J2000 = 2451545.0

	// MJD2000 is J2000.0 as a Modified Julian Date
	MJD2000 = 51544.5

	// MJD1977 is 1977 January 1.0 as a Modified Julian Date
	MJD1977 = 43144.0

	SecondsPerDay = 86400.0
	DaysPerYear   = 365.25 // Julian year
)

// Date is a Julian date split into two parts whose sum is the date.
// Either part may hold the larger magnitude.
type Date struct {
	Part1 float64
	Part2 float64
}

// JD returns the date collapsed into a single float64, losing precision
func (d Date) JD() float64 {
	return d.Part1 + d.Part2
}

// MJD returns the date as a single Modified Julian Date
func (d Date) MJD() float64 {
	return (d.Part1 - MJD0) + d.Part2
}

// Split returns the larger-magnitude part first. bigFirst reports whether
// that was Part1. Ties go to Part1.
func (d Date) Split() (big, small float64, bigFirst bool) {
	if math.Abs(d.Part1) >= math.Abs(d.Part2) {
		return d.Part1, d.Part2, true
	}
	return d.Part2, d.Part1, false
}

// Join is the inverse of Split: it puts big back where it came from.
func Join(big, small float64, bigFirst bool) Date {
	if bigFirst {
		return Date{big, small}
	}
	return Date{small, big}
}

// round to nearest, ties away from zero
func dnint(x float64) float64 {
	return math.Round(x)
}
