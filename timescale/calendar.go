package timescale

import (
	"fmt"
	"math"
	"time"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/status"
)

// supported ToCalendar precision
const (
	minDecimals = -5
	maxDecimals = 9
)

// Calendar is a date and clock time in some scale. Second may be 60
// during a UTC leap second. Fraction counts units of 10^-Decimals
// seconds; a negative Decimals means the time was rounded to a coarser
// unit and Fraction is 0.
type Calendar struct {
	Year     int
	Month    int
	Day      int
	Hour     int
	Minute   int
	Second   int
	Fraction int
	Decimals int
}

func (c Calendar) String() string {
	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second)
	if c.Decimals > 0 {
		s += fmt.Sprintf(".%0*d", c.Decimals, c.Fraction)
	}
	return s
}

// FromCalendar converts a calendar date and clock time in scale to a two
// part Julian date. Part1 holds the Julian date of 0h and Part2 the
// fraction of the day.
//
// For UTC the day is 86400s plus any leap second that ends it, and the
// final minute of such a day runs to second 60. A second at or past the
// end of its minute is still converted but flagged with BeyondDayEnd.
func (c *Converter) FromCalendar(scale Scale, year, month, day, hour, minute int, second float64) (julian.Date, status.Warning, error) {
	return fromCalendar(c.leaps.Get(), scale, year, month, day, hour, minute, second)
}

func fromCalendar(entries []leap.Entry, scale Scale, year, month, day, hour, minute int, second float64) (julian.Date, status.Warning, error) {
	const op = "from calendar"

	start, err := julian.CalendarToJD(year, month, day)
	if err != nil {
		return julian.Date{}, 0, err
	}
	dj := start.Part1 + start.Part2

	var warn status.Warning
	length := julian.SecondsPerDay
	limit := 60.0
	if scale == UTC {
		d, w, err := examineDay(entries, year, month, day)
		if err != nil {
			return julian.Date{}, 0, err
		}
		warn |= w

		length += d.dleap
		if hour == 23 && minute == 59 {
			limit += d.dleap
		}
	}

	if hour < 0 || hour > 23 {
		return julian.Date{}, 0, status.Errorf(op, status.ErrInvalidCalendarField, "hour %d", hour)
	}
	if minute < 0 || minute > 59 {
		return julian.Date{}, 0, status.Errorf(op, status.ErrInvalidCalendarField, "minute %d", minute)
	}
	if second < 0 || math.IsNaN(second) {
		return julian.Date{}, 0, status.Errorf(op, status.ErrInvalidCalendarField, "second %g", second)
	}
	if second >= limit {
		warn |= status.BeyondDayEnd
	}

	fraction := (60.0*float64(60*hour+minute) + second) / length
	return julian.Date{Part1: dj, Part2: fraction}, warn, nil
}

// ToCalendar converts a two-part Julian date in scale to a calendar date
// and clock time rounded to ndp decimal places of a second. For UTC a time
// inside a leap second is reported as 23:59:60.
//
// ndp ranges from -5 to 9, negative values rounding as julian.DaysToTime
// does. Anything outside is clamped and flagged with PrecisionClamped.
func (c *Converter) ToCalendar(scale Scale, ndp int, d julian.Date) (Calendar, status.Warning, error) {
	return toCalendar(c.leaps.Get(), scale, ndp, d)
}

func toCalendar(entries []leap.Entry, scale Scale, ndp int, d julian.Date) (Calendar, status.Warning, error) {
	var warn status.Warning
	if ndp < minDecimals {
		ndp = minDecimals
		warn |= status.PrecisionClamped
	}
	if ndp > maxDecimals {
		ndp = maxDecimals
		warn |= status.PrecisionClamped
	}

	year, month, day, fd, err := julian.JDToCalendar(d)
	if err != nil {
		return Calendar{}, 0, err
	}

	leapDay := false
	if scale == UTC {
		u, w, err := examineDay(entries, year, month, day)
		if err != nil {
			return Calendar{}, 0, err
		}
		warn |= w

		// stretch the fraction over the 86401s day
		if math.Abs(u.dleap) > 0.5 {
			leapDay = true
			fd += fd * u.dleap / julian.SecondsPerDay
		}
	}

	tod := julian.DaysToTime(ndp, fd)
	cal := Calendar{
		Year:     year,
		Month:    month,
		Day:      day,
		Hour:     tod.Hour,
		Minute:   tod.Minute,
		Second:   tod.Second,
		Fraction: tod.Fraction,
		Decimals: ndp,
	}

	if cal.Hour > 23 {
		next, err := nextDay(year, month, day)
		if err != nil {
			return Calendar{}, 0, err
		}

		switch {
		case !leapDay, cal.Second > 0:
			cal.rollTo(next)
		case ndp < 0:
			// 23:59:60 cannot be shown at this resolution
			cal.rollTo(next)
		default:
			cal.Hour, cal.Minute, cal.Second = 23, 59, 60
		}
	}

	return cal, warn, nil
}

// rollTo moves c to 0h on the given day, keeping the fraction
func (c *Calendar) rollTo(day [3]int) {
	c.Year, c.Month, c.Day = day[0], day[1], day[2]
	c.Hour, c.Minute, c.Second = 0, 0, 0
}

func nextDay(year, month, day int) ([3]int, error) {
	start, err := julian.CalendarToJD(year, month, day)
	if err != nil {
		return [3]int{}, err
	}
	y, m, d, _, err := julian.JDToCalendar(julian.Date{Part1: start.Part1, Part2: start.Part2 + 1.0})
	if err != nil {
		return [3]int{}, err
	}
	return [3]int{y, m, d}, nil
}

// FromTime converts t to a two-part UTC Julian date. time.Time has no
// leap seconds, so the result never falls inside one.
func (c *Converter) FromTime(t time.Time) (julian.Date, status.Warning, error) {
	t = t.UTC()
	second := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return c.FromCalendar(UTC, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), second)
}

// ToTime converts a two-part UTC Julian date to a time.Time at nanosecond
// resolution. A time inside a leap second is normalized into the
// following day by time.Date.
func (c *Converter) ToTime(utc julian.Date) (time.Time, status.Warning, error) {
	cal, warn, err := c.ToCalendar(UTC, maxDecimals, utc)
	if err != nil {
		return time.Time{}, 0, err
	}
	return time.Date(cal.Year, time.Month(cal.Month), cal.Day, cal.Hour, cal.Minute, cal.Second, cal.Fraction, time.UTC), warn, nil
}
