package solar

import (
	"fmt"
	"time"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/status"
	"github.com/subtlepseudonym/almanac/timescale"
)

// JulianDate returns the Terrestrial Time Julian date for a particular
// time, including leap seconds.
//
// golang does not support leap seconds, so they must be added from the
// converter's table. A nil converter uses the default leap second table.
// https://github.com/golang/go/issues/15247
func JulianDate(c *timescale.Converter, t time.Time) (julian.Date, status.Warning, error) {
	if c == nil {
		c = timescale.New(nil)
	}

	utc, warn, err := c.FromTime(t)
	if err != nil {
		return julian.Date{}, 0, fmt.Errorf("from time: %w", err)
	}

	tt, w, err := c.Convert(timescale.UTC, timescale.TT, utc)
	if err != nil {
		return julian.Date{}, 0, err
	}

	return tt, warn | w, nil
}

// DaysSinceJ2000 collapses a Julian date into days elapsed since J2000.0
func DaysSinceJ2000(d julian.Date) float64 {
	return (d.Part1 - julian.J2000) + d.Part2
}
