package solar

import (
	"errors"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// ErrNoSunset is returned for a polar day or night
var ErrNoSunset = errors.New("sun does not rise or set")

// Sunset returns the time of sunset in UTC on the date's calendar day at
// the given location. Longitude is degrees east.
func Sunset(latitude, longitude float64, date time.Time) (time.Time, error) {
	_, set, err := riseSet(latitude, longitude, date)
	return set, err
}

// Sunrise returns the time of sunrise in UTC on the date's calendar day
func Sunrise(latitude, longitude float64, date time.Time) (time.Time, error) {
	rise, _, err := riseSet(latitude, longitude, date)
	return rise, err
}

func riseSet(latitude, longitude float64, date time.Time) (time.Time, time.Time, error) {
	rise, set := sunrise.SunriseSunset(latitude, longitude, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, ErrNoSunset
	}
	return rise, set, nil
}
