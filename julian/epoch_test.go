package julian

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJulianEpoch(t *testing.T) {
	assert.InDelta(t, 1979.760438056125941, JulianEpoch(Date{2451545, -7392.5}), 1e-12)

	d := JulianEpochToDate(1996.8)
	assert.Equal(t, MJD0, d.Part1)
	assert.InDelta(t, 50375.7, d.Part2, 1e-9)
}

func TestBesselianEpoch(t *testing.T) {
	assert.InDelta(t, 1982.418424159278580, BesselianEpoch(Date{2415019.8135, 30103.18648}), 1e-12)

	d := BesselianEpochToDate(1957.3)
	assert.Equal(t, MJD0, d.Part1)
	assert.InDelta(t, 35948.1915101513, d.Part2, 1e-9)
}

func TestDaysToTime(t *testing.T) {
	tests := []struct {
		name string
		ndp  int
		days float64
		want TimeOfDay
	}{
		{"negative interval", 4, -0.987654321, TimeOfDay{true, 23, 42, 13, 3333}},
		{"noon", 0, 0.5, TimeOfDay{false, 12, 0, 0, 0}},
		{"round to minute", -2, 0.5 + 29.0/SecondsPerDay, TimeOfDay{false, 12, 0, 0, 0}},
		{"round up to next day", 2, 1.0 - 1e-9, TimeOfDay{false, 24, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysToTime(tt.ndp, tt.days))
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "-23:42:13.3333", TimeOfDay{true, 23, 42, 13, 3333}.String())
}
