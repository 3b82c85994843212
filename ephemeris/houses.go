package ephemeris

import "math"

const degToRad = math.Pi / 180.0

// obliquityOfEcliptic returns Earth's axial tilt in degrees at jd, using the
// standard first-order secular term (good to arc-seconds across the whole
// historical range a horary chart can fall in).
func obliquityOfEcliptic(jd JulianDay) float64 {
	t := (float64(jd) - 2451545.0) / 36525.0
	return 23.4392911 - 0.0130042*t
}

// ramc returns the Right Ascension of the Midheaven (local sidereal time
// expressed in degrees) for jd and longitude, using the same low-order
// Greenwich Sidereal Time series the analytical Sun/Moon positions already
// rely on.
func ramc(jd JulianDay, longitude float64) float64 {
	d := float64(jd) - 2451545.0
	gst := 280.16 + 360.9856235*d
	return normalizeDegrees(gst + longitude)
}

func normalizeDegrees(d float64) float64 {
	m := math.Mod(d, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// ComputeHouses returns the Ascendant, Midheaven, and the 12 Regiomontanus
// house cusps for jd and the given geographic coordinates, the house system
// the chart builder's Ephemeris collaborator contract calls for. Houses 11,
// 12, 2, 3, 5, 6, 8, 9 are computed as great circles through the north and
// south points of the horizon, cutting the equator 30° apart from RAMC —
// Regiomontanus's defining construction; houses 1/4/7/10 use the direct
// horizon/meridian formulas instead (the "Ascendant" and "Midheaven"
// themselves, of which the other eight are rotations).
func ComputeHouses(jd JulianDay, latitude, longitude float64) (ascendant, midheaven float64, cusps [12]float64) {
	eps := obliquityOfEcliptic(jd) * degToRad
	phi := latitude * degToRad
	theta := ramc(jd, longitude) * degToRad

	midheaven = normalizeDegrees(math.Atan2(math.Sin(theta), math.Cos(theta)*math.Cos(eps)) / degToRad)
	ascendant = normalizeDegrees(math.Atan2(math.Cos(theta), -(math.Sin(eps)*math.Tan(phi)+math.Cos(eps)*math.Sin(theta))) / degToRad)

	// offsets[h] is house h's RA offset from RAMC, in degrees, per the
	// Regiomontanus construction (house 10 = MC at offset 0).
	offsets := [12]float64{9: 0, 10: 30, 11: 60, 0: 90, 1: 120, 2: 150, 3: 180, 4: 210, 5: 240, 6: 270, 7: 300, 8: 330}

	for house := 0; house < 12; house++ {
		switch house {
		case 0: // 1st house: the Ascendant itself
			cusps[house] = ascendant
		case 3: // 4th house: the IC, opposite the MC
			cusps[house] = normalizeDegrees(midheaven + 180)
		case 6: // 7th house: the Descendant, opposite the Ascendant
			cusps[house] = normalizeDegrees(ascendant + 180)
		case 9: // 10th house: the Midheaven itself
			cusps[house] = midheaven
		default:
			h := offsets[house] * degToRad
			r := theta + h - math.Pi/2
			tanPole := math.Tan(phi) * math.Sin(h)
			cusps[house] = normalizeDegrees(math.Atan2(math.Cos(r), -(math.Sin(eps)*tanPole+math.Cos(eps)*math.Sin(r))) / degToRad)
		}
	}

	return ascendant, midheaven, cusps
}
