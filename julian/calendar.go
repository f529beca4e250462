package julian

import (
	"math"

	"github.com/subtlepseudonym/almanac/status"
)

const (
	// MinYear is the earliest year the calendar algorithms accept
	MinYear = -4799

	// supported span of the combined Julian date
	minJD = -68569.5
	maxJD = 1e9

	epsilon = 2.220446049250313e-16 // float64 machine epsilon
)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of a month, honouring Gregorian leap
// years. month must be 1-12.
func DaysInMonth(year, month int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// ModifiedDayNumber returns the Modified Julian Date of 0h on the given
// day using the Fliegel & Van Flandern integer algorithm. No range checks
// are performed, so an out of range day simply runs into the next month.
func ModifiedDayNumber(year, month, day int) float64 {
	my := (int64(month) - 14) / 12
	iypmy := int64(year) + my

	return float64((1461*(iypmy+4800))/4 +
		(367*(int64(month)-2-12*my))/12 -
		(3*((iypmy+4900)/100))/4 +
		int64(day) - 2432076)
}

// CalendarToJD converts a Gregorian calendar date to a two-part Julian
// date for 0h of that day. Part1 is always MJD0 and Part2 the Modified
// Julian Date.
func CalendarToJD(year, month, day int) (Date, error) {
	const op = "calendar to jd"

	if year < MinYear {
		return Date{}, status.Errorf(op, status.ErrInvalidCalendarField, "year %d before %d", year, MinYear)
	}
	if month < 1 || month > 12 {
		return Date{}, status.Errorf(op, status.ErrInvalidCalendarField, "month %d", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, status.Errorf(op, status.ErrInvalidCalendarField, "day %d of %04d-%02d", day, year, month)
	}

	return Date{MJD0, ModifiedDayNumber(year, month, day)}, nil
}

// JDToCalendar converts a two-part Julian date to a Gregorian calendar
// date and the fraction of the day elapsed since 0h.
//
// The fractional parts of both inputs are combined with compensated
// summation so that digits below a microsecond survive.
// https://doi.org/10.1007/s00607-005-0139-x
func JDToCalendar(d Date) (year, month, day int, fraction float64, err error) {
	const op = "jd to calendar"

	dj := d.Part1 + d.Part2
	if dj < minJD || dj > maxJD || math.IsNaN(dj) {
		return 0, 0, 0, 0, status.Errorf(op, status.ErrOutOfRangeJulianDate, "%.9f", dj)
	}

	// separate day and fraction (-0.5 <= fraction <= 0.5)
	w := dnint(d.Part1)
	f1 := d.Part1 - w
	jd := int64(w)
	w = dnint(d.Part2)
	f2 := d.Part2 - w
	jd += int64(w)

	// f1 + f2 + 0.5 using compensated summation
	s := 0.5
	cs := 0.0
	for _, x := range [2]float64{f1, f2} {
		t := s + x
		if math.Abs(s) >= math.Abs(x) {
			cs += (s - t) + x
		} else {
			cs += (x - t) + s
		}
		s = t
		if s >= 1.0 {
			jd++
			s -= 1.0
		}
	}
	f := s + cs
	cs = f - s

	if f < 0.0 {
		f = s + 1.0
		cs += (1.0 - f) + s
		s = f
		f = s + cs
		cs = f - s
		jd--
	}

	// values within rounding of 1.0 belong to the start of the next day
	if (f - 1.0) >= -epsilon/4.0 {
		t := s - 1.0
		cs += (s - t) - 1.0
		s = t
		f = s + cs
		if -epsilon/2.0 < f {
			jd++
			f = math.Max(f, 0.0)
		}
	}

	// Gregorian calendar from the Julian day number
	l := jd + 68569
	n := (4 * l) / 146097
	l -= (146097*n + 3) / 4
	i := (4000 * (l + 1)) / 1461001
	l -= (1461*i)/4 - 31
	k := (80 * l) / 2447
	day = int(l - (2447*k)/80)
	l = k / 11
	month = int(k + 2 - 12*l)
	year = int(100*(n-49) + i + l)

	return year, month, day, f, nil
}

// CalendarFraction is a calendar date with the fraction of the day scaled
// to an integer number of decimal places.
type CalendarFraction struct {
	Year     int
	Month    int
	Day      int
	Fraction int
}

// CalendarWithDecimals converts a two-part Julian date to a calendar date
// with the day fraction rounded to ndp decimal places (0-9). The date is
// derived after rounding, so a fraction that rounds up to a whole day is
// reported as 0 on the following day.
//
// An ndp outside 0-9 is treated as 0 and flagged with PrecisionClamped.
func CalendarWithDecimals(ndp int, d Date) (CalendarFraction, status.Warning, error) {
	var warn status.Warning
	denom := 1.0
	if ndp >= 0 && ndp <= 9 {
		denom = math.Pow10(ndp)
	} else {
		warn |= status.PrecisionClamped
	}

	d1, d2, _ := d.Split()

	// realign to midnight without rounding error
	d1 -= 0.5

	w := dnint(d1)
	f1 := d1 - w
	djd := w
	w = dnint(d2)
	f2 := d2 - w
	djd += w

	w = dnint(f1 + f2)
	f := (f1 - w) + f2
	if f < 0.0 {
		f += 1.0
		w -= 1.0
	}
	djd += w

	rf := dnint(f*denom) / denom

	// back to noon
	djd += 0.5

	year, month, day, fd, err := JDToCalendar(Date{djd, rf})
	if err != nil {
		return CalendarFraction{}, 0, err
	}

	return CalendarFraction{
		Year:     year,
		Month:    month,
		Day:      day,
		Fraction: int(dnint(fd * denom)),
	}, warn, nil
}
