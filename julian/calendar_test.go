package julian

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/almanac/status"
)

func TestCalendarToJD(t *testing.T) {
	d, err := CalendarToJD(2003, 6, 1)
	require.NoError(t, err)
	assert.Equal(t, 2400000.5, d.Part1)
	assert.Equal(t, 52791.0, d.Part2)

	d, err = CalendarToJD(2000, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, MJD2000-0.5, d.Part2)
}

func TestCalendarToJD_Invalid(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
	}{
		{"month above range", 1900, 13, 1},
		{"month zero", 1900, 0, 1},
		{"1900 is not a leap year", 1900, 2, 30},
		{"feb 29 1900", 1900, 2, 29},
		{"day zero", 2020, 5, 0},
		{"april 31", 2020, 4, 31},
		{"year too early", MinYear - 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalendarToJD(tt.year, tt.month, tt.day)
			require.Error(t, err)
			assert.True(t, errors.Is(err, status.ErrInvalidCalendarField))
			assert.Equal(t, -1, status.Code(0, err))
		})
	}
}

func TestCalendarToJD_LeapDays(t *testing.T) {
	for _, year := range []int{1600, 2000, 2004, 2400} {
		_, err := CalendarToJD(year, 2, 29)
		assert.NoError(t, err, "year %d", year)
	}
}

func TestCalendarRoundTrip(t *testing.T) {
	years := []int{MinYear, -1000, -1, 0, 1, 1582, 1600, 1899, 1900, 1972, 2000, 2024, 2400, 9999}
	for _, year := range years {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, DaysInMonth(year, month)} {
				d, err := CalendarToJD(year, month, day)
				require.NoError(t, err)

				y, m, dd, fd, err := JDToCalendar(d)
				require.NoError(t, err)
				assert.Equal(t, year, y)
				assert.Equal(t, month, m)
				assert.Equal(t, day, dd)
				assert.InDelta(t, 0.0, fd, 1e-9)
			}
		}
	}
}

func TestJDToCalendar(t *testing.T) {
	y, m, d, fd, err := JDToCalendar(Date{2400000.5, 50123.9999})
	require.NoError(t, err)
	assert.Equal(t, 1996, y)
	assert.Equal(t, 2, m)
	assert.Equal(t, 10, d)
	assert.InDelta(t, 0.9999, fd, 1e-7)

	// the order of the parts does not matter
	y, m, d, fd, err = JDToCalendar(Date{50123.9999, 2400000.5})
	require.NoError(t, err)
	assert.Equal(t, []int{1996, 2, 10}, []int{y, m, d})
	assert.InDelta(t, 0.9999, fd, 1e-7)
}

func TestJDToCalendar_Negative(t *testing.T) {
	// noon on 2000-01-01 approached from the other side of midnight
	y, m, d, fd, err := JDToCalendar(Date{2451545.0, -0.75})
	require.NoError(t, err)
	assert.Equal(t, []int{1999, 12, 31}, []int{y, m, d})
	assert.InDelta(t, 0.75, fd, 1e-12)
}

func TestJDToCalendar_Rollover(t *testing.T) {
	// half an ulp short of midnight is forced onto the next day
	y, m, d, fd, err := JDToCalendar(Date{2451544.0, 0.49999999999999994})
	require.NoError(t, err)
	assert.Equal(t, []int{2000, 1, 1}, []int{y, m, d})
	assert.Equal(t, 0.0, fd)
}

func TestJDToCalendar_OutOfRange(t *testing.T) {
	for _, d := range []Date{{-68570.0, 0}, {1e9, 1}} {
		_, _, _, _, err := JDToCalendar(d)
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrOutOfRangeJulianDate))
	}
}

func TestCalendarWithDecimals(t *testing.T) {
	cf, warn, err := CalendarWithDecimals(4, Date{2400000.5, 50123.9999})
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.Equal(t, CalendarFraction{1996, 2, 10, 9999}, cf)
}

func TestCalendarWithDecimals_RoundsIntoNextDay(t *testing.T) {
	cf, warn, err := CalendarWithDecimals(4, Date{2400000.5, 50123.99999999})
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.Equal(t, CalendarFraction{1996, 2, 11, 0}, cf)
}

func TestCalendarWithDecimals_BadPrecision(t *testing.T) {
	cf, warn, err := CalendarWithDecimals(12, Date{2400000.5, 50123.25})
	require.NoError(t, err)
	assert.True(t, warn.Has(status.PrecisionClamped))
	assert.Equal(t, CalendarFraction{1996, 2, 10, 0}, cf)

	cf, warn, err = CalendarWithDecimals(-1, Date{2400000.5, 50123.75})
	require.NoError(t, err)
	assert.True(t, warn.Has(status.PrecisionClamped))
	assert.Equal(t, CalendarFraction{1996, 2, 11, 0}, cf)
}

func TestDate_Split(t *testing.T) {
	big, small, first := Date{0.25, 2451545.0}.Split()
	assert.Equal(t, 2451545.0, big)
	assert.Equal(t, 0.25, small)
	assert.False(t, first)
	assert.Equal(t, Date{0.25, 2451545.0}, Join(big, small, first))
}
