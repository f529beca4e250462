package julian

const (
	tropicalYear = 365.242198781 // days
	mjdB1900     = 15019.81352   // B1900.0 as a Modified Julian Date
	b1900Offset  = 36524.68648   // B1900.0 relative to J2000.0, in days
)

// JulianEpoch returns the Julian epoch (e.g. 2000.0) of a two-part date.
func JulianEpoch(d Date) float64 {
	return 2000.0 + ((d.Part1-J2000)+d.Part2)/DaysPerYear
}

// JulianEpochToDate is the inverse of JulianEpoch. Part1 is MJD0.
func JulianEpochToDate(epoch float64) Date {
	return Date{MJD0, MJD2000 + (epoch-2000.0)*DaysPerYear}
}

// BesselianEpoch returns the Besselian epoch (e.g. 1950.0) of a two-part date.
func BesselianEpoch(d Date) float64 {
	return 1900.0 + ((d.Part1-J2000)+(d.Part2+b1900Offset))/tropicalYear
}

// BesselianEpochToDate is the inverse of BesselianEpoch. Part1 is MJD0.
func BesselianEpochToDate(epoch float64) Date {
	return Date{MJD0, mjdB1900 + (epoch-1900.0)*tropicalYear}
}
