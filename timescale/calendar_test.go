package timescale

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/status"
)

func TestFromCalendar_LeapSecond(t *testing.T) {
	c := newConverter(t)

	d, warn, err := c.FromCalendar(UTC, 1994, 6, 30, 23, 59, 60.13599)
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.InDelta(t, 2449534.49999, d.Part1+d.Part2, 1e-6)
	assert.Equal(t, 2449533.5, d.Part1)
}

func TestFromCalendar_BeyondDayEnd(t *testing.T) {
	c := newConverter(t)

	tests := []struct {
		name   string
		scale  Scale
		year   int
		month  int
		day    int
		second float64
	}{
		{"past leap second", UTC, 1994, 6, 30, 61.0},
		{"second 60 on ordinary utc day", UTC, 1994, 6, 29, 60.0},
		{"second 60 in tt", TT, 1994, 6, 30, 60.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, warn, err := c.FromCalendar(tt.scale, tt.year, tt.month, tt.day, 23, 59, tt.second)
			require.NoError(t, err)
			assert.True(t, warn.Has(status.BeyondDayEnd))
			assert.Equal(t, int(status.BeyondDayEnd), status.Code(warn, err))
		})
	}

	// only the final minute of the day is lengthened
	_, warn, err := c.FromCalendar(UTC, 1994, 6, 30, 12, 0, 60.0)
	require.NoError(t, err)
	assert.True(t, warn.Has(status.BeyondDayEnd))
}

func TestFromCalendar_Invalid(t *testing.T) {
	c := newConverter(t)

	tests := []struct {
		name         string
		month, day   int
		hour, minute int
		second       float64
	}{
		{"hour 24", 6, 30, 24, 0, 0},
		{"negative hour", 6, 30, -1, 0, 0},
		{"minute 60", 6, 30, 12, 60, 0},
		{"negative second", 6, 30, 12, 0, -0.5},
		{"day 31 of june", 6, 31, 12, 0, 0},
		{"month 13", 13, 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.FromCalendar(UTC, 1994, tt.month, tt.day, tt.hour, tt.minute, tt.second)
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrInvalidCalendarField))
			assert.Equal(t, -1, status.Code(0, err))
		})
	}
}

func TestToCalendar_LeapSecond(t *testing.T) {
	c := newConverter(t)

	got, warn, err := c.ToCalendar(UTC, 5, julian.Date{Part1: 2400000.5, Part2: 49533.99999})
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.Equal(t, Calendar{
		Year: 1994, Month: 6, Day: 30,
		Hour: 23, Minute: 59, Second: 60, Fraction: 13599,
		Decimals: 5,
	}, got)
	assert.Equal(t, "1994-06-30T23:59:60.13599", got.String())
}

func TestToCalendar_Rollover(t *testing.T) {
	c := newConverter(t)

	// rounds up into the next day on an ordinary day
	got, _, err := c.ToCalendar(TT, 3, julian.Date{Part1: 2451544.5, Part2: 0.99999999999})
	require.NoError(t, err)
	assert.Equal(t, Calendar{Year: 2000, Month: 1, Day: 2, Decimals: 3}, got)

	// but holds at second 60 on a leap second day
	lastMilli := julian.Date{Part1: 2449533.5, Part2: 86400.999 / 86401.0}
	got, _, err = c.ToCalendar(UTC, 3, lastMilli)
	require.NoError(t, err)
	assert.Equal(t, Calendar{Year: 1994, Month: 6, Day: 30, Hour: 23, Minute: 59, Second: 60, Fraction: 999, Decimals: 3}, got)

	// unless the precision cannot show it
	got, _, err = c.ToCalendar(UTC, -1, lastMilli)
	require.NoError(t, err)
	assert.Equal(t, Calendar{Year: 1994, Month: 7, Day: 1, Decimals: -1}, got)
	assert.Equal(t, "1994-07-01T00:00:00", got.String())
}

func TestToCalendar_Noon(t *testing.T) {
	c := newConverter(t)

	got, warn, err := c.ToCalendar(TT, 0, julian.Date{Part1: julian.J2000, Part2: 0})
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.Equal(t, Calendar{Year: 2000, Month: 1, Day: 1, Hour: 12}, got)
}

func TestToCalendar_PrecisionClamped(t *testing.T) {
	c := newConverter(t)

	got, warn, err := c.ToCalendar(TAI, 12, julian.Date{Part1: julian.J2000, Part2: 0.25})
	require.NoError(t, err)
	assert.True(t, warn.Has(status.PrecisionClamped))
	assert.Equal(t, 9, got.Decimals)
	assert.Equal(t, 18, got.Hour)

	_, warn, err = c.ToCalendar(TAI, -8, julian.Date{Part1: julian.J2000, Part2: 0.25})
	require.NoError(t, err)
	assert.True(t, warn.Has(status.PrecisionClamped))
}

func TestCalendar_RoundTrip(t *testing.T) {
	c := newConverter(t)

	for _, scale := range []Scale{UTC, TAI, TT} {
		d, _, err := c.FromCalendar(scale, 2016, 12, 31, 23, 59, 60.5)
		require.NoError(t, err)

		got, _, err := c.ToCalendar(scale, 3, d)
		require.NoError(t, err)

		if scale == UTC {
			assert.Equal(t, Calendar{Year: 2016, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 60, Fraction: 500, Decimals: 3}, got)
		} else {
			assert.Equal(t, Calendar{Year: 2017, Month: 1, Day: 1, Hour: 0, Minute: 0, Second: 0, Fraction: 500, Decimals: 3}, got)
		}
	}
}

func TestTime_RoundTrip(t *testing.T) {
	c := newConverter(t)

	want := time.Date(2020, time.May, 17, 13, 45, 30, 123456000, time.UTC)
	d, warn, err := c.FromTime(want.In(time.FixedZone("EST", -5*3600)))
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)

	got, warn, err := c.ToTime(d)
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.WithinDuration(t, want, got, time.Microsecond)
	assert.Equal(t, time.UTC, got.Location())
}

func TestToTime_LeapSecond(t *testing.T) {
	c := newConverter(t)

	d, _, err := c.FromCalendar(UTC, 2016, 12, 31, 23, 59, 60.25)
	require.NoError(t, err)

	got, _, err := c.ToTime(d)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2017, time.January, 1, 0, 0, 0, 250000000, time.UTC), got, time.Microsecond)
}
