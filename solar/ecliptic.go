// Package solar computes a low precision position of the sun, good to a
// few hundredths of a degree, and local sunset times.
package solar

import (
	"math"

	"github.com/subtlepseudonym/almanac/julian"
)

const (
	perihelion = 102.9372 // longitude of perihelion at J2000, degrees
	apsidal    = 1.71946  // perihelion advance against the equinox of date, degrees per century
	obliquity  = 23.4397  // obliquity of the ecliptic at J2000, degrees
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalize wraps an angle into [0, 360)
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// MeanSolarNoon approximates solar noon for the mean sun
// for a given day, counted from J2000.0, at a given longitude.
// For the purpose of this calculation, longitude is degrees
// west, with negative values for degrees east.
func MeanSolarNoon(days, longitudeWest float64) float64 {
	return days - longitudeWest/360
}

// SolarMeanAnomaly calculates the fraction of the sun's
// orbital period elapsed since perihelion, in degrees.
func SolarMeanAnomaly(meanSolarNoon float64) float64 {
	return normalize(357.5291 + (0.98560028 * meanSolarNoon))
}

// EquationOfTheCenter calculates the angular difference
// between the position of the actual sun (with an elliptical
// orbit) and the mean sun (with a circular orbit). This
// can be expressed as a function of mean anomaly and
// orbital eccentricity.
//
// https://en.wikipedia.org/wiki/Equation_of_the_center
func EquationOfTheCenter(meanAnomaly float64) float64 {
	m := radians(meanAnomaly)
	firstOrder := 1.9148 * math.Sin(m)
	secondOrder := 0.02 * math.Sin(2*m)
	thirdOrder := 0.0003 * math.Sin(3*m)

	return firstOrder + secondOrder + thirdOrder
}

// EclipticLongitude calculates the sun's distance along the
// ecliptic from the J2000 equinox, in degrees
func EclipticLongitude(meanAnomaly, center float64) float64 {
	return normalize(meanAnomaly + center + 180 + perihelion)
}

// LongitudeOfDate moves an ecliptic longitude measured from the J2000
// equinox onto the equinox of date, days after J2000. The mean anomaly
// runs at the anomalistic rate, so this covers general precession and the
// perihelion's own drift.
func LongitudeOfDate(longitude, days float64) float64 {
	return normalize(longitude + apsidal*days/36525)
}

// Declination is the sun's angle north of the celestial equator
func Declination(eclipticLongitude float64) float64 {
	return degrees(math.Asin(math.Sin(radians(eclipticLongitude)) * math.Sin(radians(obliquity))))
}

// Position is the sun's place for an instant, all angles in degrees
type Position struct {
	MeanAnomaly float64 `json:"mean_anomaly"`
	Center      float64 `json:"center"`
	Longitude   float64 `json:"longitude"`
	Declination float64 `json:"declination"`
}

// PositionAt returns the sun's position at the Terrestrial Time date tt,
// referred to the equinox of date
func PositionAt(tt julian.Date) Position {
	days := DaysSinceJ2000(tt)
	m := SolarMeanAnomaly(days)
	c := EquationOfTheCenter(m)
	lambda := LongitudeOfDate(EclipticLongitude(m, c), days)

	return Position{
		MeanAnomaly: m,
		Center:      c,
		Longitude:   lambda,
		Declination: Declination(lambda),
	}
}

// TDBMinusTT approximates TDB-TT in seconds from the sun's mean anomaly,
// good to about 30 microseconds. The result suits the dtr parameter of a
// TT to TDB conversion.
func TDBMinusTT(tt julian.Date) float64 {
	g := radians(SolarMeanAnomaly(DaysSinceJ2000(tt)))
	return 0.001657 * math.Sin(g)
}
