package solar

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/almanac/julian"
	"github.com/subtlepseudonym/almanac/leap"
	"github.com/subtlepseudonym/almanac/status"
	"github.com/subtlepseudonym/almanac/timescale"
)

func TestJulianDate(t *testing.T) {
	c := timescale.New(leap.NewTable())

	// TT-UTC was 64.184s at J2000
	j2000 := time.Date(2000, time.January, 1, 11, 58, 55, 816000000, time.UTC)
	tt, warn, err := JulianDate(c, j2000)
	require.NoError(t, err)
	assert.Equal(t, status.Warning(0), warn)
	assert.InDelta(t, julian.J2000, tt.JD(), 1e-9)
	assert.InDelta(t, 0.0, DaysSinceJ2000(tt), 1e-9)

	// across the 2016 leap second
	before, _, err := JulianDate(c, time.Date(2016, time.December, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	after, _, err := JulianDate(c, time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, (after.JD()-before.JD())*julian.SecondsPerDay, 1e-4)
}

func TestJulianDate_DefaultConverter(t *testing.T) {
	tt, _, err := JulianDate(nil, time.Date(2000, time.January, 1, 11, 58, 55, 816000000, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, julian.J2000, tt.JD(), 1e-9)
}

func TestEquationOfTheCenter(t *testing.T) {
	assert.InDelta(t, 0.0, EquationOfTheCenter(0), 1e-12)
	assert.InDelta(t, 1.9148-0.0003, EquationOfTheCenter(90), 1e-9)
}

func TestPositionAt_J2000(t *testing.T) {
	pos := PositionAt(julian.Date{Part1: julian.J2000})

	assert.InDelta(t, 357.5291, pos.MeanAnomaly, 1e-9)
	assert.InDelta(t, 280.38, pos.Longitude, 0.01)
	assert.InDelta(t, -23.03, pos.Declination, 0.05)
}

func TestPositionAt_Equinox(t *testing.T) {
	c := timescale.New(leap.NewTable())

	tests := []struct {
		name      string
		instant   time.Time
		longitude float64
	}{
		{"march 2000", time.Date(2000, time.March, 20, 7, 35, 0, 0, time.UTC), 0},
		{"march 2021", time.Date(2021, time.March, 20, 9, 37, 0, 0, time.UTC), 0},
		{"september 2021", time.Date(2021, time.September, 22, 19, 21, 0, 0, time.UTC), 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, err := JulianDate(c, tt.instant)
			require.NoError(t, err)

			pos := PositionAt(d)
			assert.InDelta(t, 0.0, pos.Declination, 0.02)

			// distance around the circle from the expected longitude
			off := math.Mod(pos.Longitude-tt.longitude+540, 360) - 180
			assert.InDelta(t, 0.0, off, 0.05, "longitude %f", pos.Longitude)
		})
	}
}

func TestLongitudeOfDate(t *testing.T) {
	assert.Equal(t, 10.0, LongitudeOfDate(10, 0))
	assert.InDelta(t, 1.71946, LongitudeOfDate(0, 36525), 1e-12)
	assert.InDelta(t, 1.61946, LongitudeOfDate(359.9, 36525), 1e-9)
}

func TestMeanSolarNoon(t *testing.T) {
	assert.Equal(t, 100.25, MeanSolarNoon(100, -90))
	assert.InDelta(t, 357.5291, SolarMeanAnomaly(0), 1e-12)
	assert.InDelta(t, 357.5291-0.98560028, SolarMeanAnomaly(-1), 1e-9)
}

func TestSunset(t *testing.T) {
	// New York, summer solstice
	date := time.Date(2021, time.June, 21, 0, 0, 0, 0, time.UTC)
	set, err := Sunset(40.7128, -74.0060, date)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2021, time.June, 22, 0, 31, 0, 0, time.UTC), set, 5*time.Minute)

	rise, err := Sunrise(40.7128, -74.0060, date)
	require.NoError(t, err)
	assert.True(t, rise.Before(set))
}

func TestSunset_Polar(t *testing.T) {
	date := time.Date(2021, time.June, 21, 0, 0, 0, 0, time.UTC)
	_, err := Sunset(78.2232, 15.6267, date)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSunset))
}

func TestTDBMinusTT(t *testing.T) {
	assert.InDelta(t, -7.14e-5, TDBMinusTT(julian.Date{Part1: julian.J2000}), 1e-6)

	// the annual term peaks near the start of April
	tt := julian.Date{Part1: 2459309.5} // 2021-04-05
	assert.InDelta(t, 0.001657, TDBMinusTT(tt), 2e-5)
}
