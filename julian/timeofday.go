package julian

import (
	"fmt"
	"math"
)

// TimeOfDay is an interval of days broken into hours, minutes, seconds and
// a fraction of a second scaled by the requested number of decimals.
type TimeOfDay struct {
	Negative bool
	Hour     int
	Minute   int
	Second   int
	Fraction int
}

func (t TimeOfDay) String() string {
	sign := '+'
	if t.Negative {
		sign = '-'
	}
	return fmt.Sprintf("%c%02d:%02d:%02d.%d", sign, t.Hour, t.Minute, t.Second, t.Fraction)
}

// DaysToTime breaks an interval in days into hours, minutes, seconds and
// a fraction of ndp decimal places. A negative ndp rounds to coarser
// units: -1 to 10s, -2 to 1m, -3 to 10m, -4 to 1h and -5 to 10h.
//
// The hour is not limited to 23, so a rounded value of 24:00:00 is
// left for the caller to carry into the next day.
func DaysToTime(ndp int, days float64) TimeOfDay {
	a := SecondsPerDay * math.Abs(days)

	if ndp < 0 {
		nrs := 1
		for n := 1; n <= -ndp; n++ {
			if n == 2 || n == 4 {
				nrs *= 6
			} else {
				nrs *= 10
			}
		}
		rs := float64(nrs)
		a = rs * dnint(a/rs)
	}

	nrs := 1
	for n := 1; n <= ndp; n++ {
		nrs *= 10
	}
	rs := float64(nrs)
	rm := rs * 60.0
	rh := rm * 60.0

	a = dnint(rs * a)

	ah := math.Trunc(a / rh)
	a -= ah * rh
	am := math.Trunc(a / rm)
	a -= am * rm
	as := math.Trunc(a / rs)
	af := a - as*rs

	return TimeOfDay{
		Negative: days < 0,
		Hour:     int(ah),
		Minute:   int(am),
		Second:   int(as),
		Fraction: int(af),
	}
}
