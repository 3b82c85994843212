package ephemeris

import "math"

// SunAltitude returns the Sun's altitude above the local horizon, in
// degrees, at the given Julian Day and observer location, given the Sun's
// apparent ecliptic longitude. It only needs the ecliptic-to-equatorial
// conversion the Solar Condition Analyzer uses to decide whether Venus's
// wide combustion exception applies during civil twilight.
func SunAltitude(jd JulianDay, latitude, longitude, sunLongitude float64) float64 {
	eps := obliquityOfEcliptic(jd) * degToRad
	lambda := sunLongitude * degToRad

	sinDec := math.Sin(eps) * math.Sin(lambda)
	dec := math.Asin(sinDec)
	ra := normalizeDegrees(math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda)) / degToRad)

	lst := ramc(jd, longitude)
	hourAngle := normalizeDegrees(lst-ra) * degToRad
	phi := latitude * degToRad

	sinAlt := math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(hourAngle)
	return math.Asin(clampUnit(sinAlt)) / degToRad
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
