// Package solar classifies a planet's proximity to the Sun into the four
// traditional solar conditions and recognizes the classical exceptions that
// exempt Mercury and Venus from the usual combustion penalty.
package solar

import (
	"math"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

// Analyze classifies planet's relationship to the Sun. sunAltitudeDeg is the
// Sun's altitude at the chart's moment, used only for the Venus civil-
// twilight exception.
func Analyze(cfg horaryconfig.OrbConfig, planet chart.Planet, planetLongitude, sunLongitude, sunAltitudeDeg float64) chart.SolarAnalysis {
	distance := elongation(planetLongitude, sunLongitude)
	cazimiOrb := cfg.CazimiOrbArcmin / 60.0

	analysis := chart.SolarAnalysis{
		Planet:          planet,
		DistanceFromSun: distance,
	}

	switch {
	case distance <= cazimiOrb:
		analysis.Condition = chart.Cazimi
		analysis.ExactCazimi = distance <= cazimiOrb/2
	case distance <= cfg.CombustionOrb:
		analysis.Condition = chart.Combustion
	case distance <= cfg.UnderBeamsOrb:
		analysis.Condition = chart.UnderBeams
	default:
		analysis.Condition = chart.FreeOfSun
	}

	if analysis.Condition == chart.Combustion || analysis.Condition == chart.UnderBeams {
		analysis.TraditionalException = hasTraditionalException(planet, planetLongitude, distance, sunAltitudeDeg)
	}

	return analysis
}

// elongation returns the angular separation between two longitudes, in
// [0, 180].
func elongation(lon1, lon2 float64) float64 {
	diff := math.Mod(math.Abs(lon1-lon2), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// hasTraditionalException applies the classical dispensations: Mercury
// within its own signs at sufficient elongation, or Venus at wide
// elongation (or narrower elongation once the Sun is below civil twilight).
func hasTraditionalException(planet chart.Planet, longitude, elongationDeg, sunAltitudeDeg float64) bool {
	switch planet {
	case chart.Mercury:
		sign := chart.SignOfLongitude(longitude)
		if sign == chart.Gemini && elongationDeg >= 10 {
			return true
		}
		if sign == chart.Virgo && elongationDeg >= 18 {
			return true
		}
		return false
	case chart.Venus:
		if elongationDeg >= 40 {
			return true
		}
		const civilTwilightAltitude = -6.0
		if elongationDeg >= 10 && sunAltitudeDeg <= civilTwilightAltitude {
			return true
		}
		return false
	default:
		return false
	}
}

// ReclassifyAsDenial reports whether a direct conjunction between
// significators involving the Sun should be read as a denial (combustion)
// rather than a perfecting conjunction, per the Perfection Detector's first
// rule.
func ReclassifyAsDenial(analysis chart.SolarAnalysis) bool {
	return analysis.Condition == chart.Combustion && !analysis.TraditionalException
}
