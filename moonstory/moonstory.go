// Package moonstory tells the Moon's story: what it most recently separated
// from, what it next applies to, whether it is void of course, and how to
// phrase the timing of its next aspect for a reader.
package moonstory

import (
	"fmt"
	"math"

	"github.com/sabaa/horary/aspect"
	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

// Build scans every non-Moon body for the Moon's most recent separating
// aspect and its next applying aspect, and fills both onto the lunar
// aspects it returns. A planet the Moon is not in any aspect with
// contributes nothing.
func Build(moon chart.PlanetPosition, others map[chart.Planet]chart.PlanetPosition) (last, next *chart.LunarAspect) {
	for planet, pos := range others {
		if planet == chart.Moon {
			continue
		}

		a, orb, found := aspect.Closest(moon, pos)
		if !found {
			continue
		}

		applying := aspect.Applying(moon, pos, a)
		degreesDiff := orb
		eta := aspect.DaysToExact(moon, pos, a)

		la := chart.LunarAspect{
			Planet:             planet,
			Aspect:             a,
			Orb:                orb,
			DegreesDifference:  degreesDiff,
			PerfectionETADays:  eta,
			PerfectionETAHuman: HumanETA(eta),
			Applying:           applying,
		}

		if applying {
			if next == nil || (eta >= 0 && eta < next.PerfectionETADays) {
				laCopy := la
				next = &laCopy
			}
		} else {
			if last == nil || orb < last.Orb {
				laCopy := la
				last = &laCopy
			}
		}
	}

	return last, next
}

// HumanETA renders a number of days until perfection as the coarse bands a
// reader expects: within hours, within a day, within weeks, and so on.
func HumanETA(days float64) string {
	if math.IsInf(days, 0) || days < 0 {
		return "not applicable"
	}

	switch {
	case days < 1.0/24:
		return "within hours"
	case days < 1:
		return "within a day"
	case days < 7:
		return fmt.Sprintf("within %d days", int(math.Ceil(days)))
	case days < 30:
		weeks := int(math.Ceil(days / 7))
		return fmt.Sprintf("within %d weeks", weeks)
	case days < 365:
		months := int(math.Ceil(days / 30))
		return fmt.Sprintf("within %d months", months)
	default:
		return "more than a year"
	}
}

// VoidMethod selects how IsVoidOfCourse decides voidness.
type VoidMethod string

const (
	ByLastAspectSign VoidMethod = "by_sign"
	ByOrb            VoidMethod = "by_orb"
	Lilly            VoidMethod = "lilly"
)

// lillyDispensationSigns are the signs in which Lilly allows the Moon to
// perform despite being void of course.
var lillyDispensationSigns = []string{"Cancer", "Taurus", "Sagittarius", "Pisces"}

// IsVoidOfCourse reports whether the Moon is void of course by the
// configured method: by_sign (no further applying aspect before the Moon
// leaves its sign), by_orb (the Moon outside VoidOrbDegrees of every
// Ptolemaic aspect to every body), or lilly (sign-based with the fixed
// dispensation signs instead of the configured exceptions). A stationary
// Moon (SpeedDegPerDay ~ 0) is never void, since it never reaches its sign
// boundary to test against.
func IsVoidOfCourse(cfg horaryconfig.MoonConfig, moon chart.PlanetPosition, others map[chart.Planet]chart.PlanetPosition, next *chart.LunarAspect) bool {
	if math.Abs(moon.SpeedDegPerDay) < 1e-6 {
		return false
	}

	exceptions := cfg.VoidExceptionSigns
	if cfg.VoidOfCourseMethod == string(Lilly) {
		exceptions = lillyDispensationSigns
	}
	for _, exception := range exceptions {
		if exception == moon.Sign.Name {
			return false
		}
	}

	if cfg.VoidOfCourseMethod == string(ByOrb) {
		return voidByOrb(cfg, moon, others)
	}

	if next == nil {
		return true
	}

	return next.PerfectionETADays > daysToSignExit(moon)
}

// voidByOrb tests whether any Ptolemaic aspect between the Moon and any
// other body sits within the configured void orb; none in orb means void.
func voidByOrb(cfg horaryconfig.MoonConfig, moon chart.PlanetPosition, others map[chart.Planet]chart.PlanetPosition) bool {
	for planet, pos := range others {
		if planet == chart.Moon {
			continue
		}
		separation := math.Mod(math.Abs(moon.Longitude-pos.Longitude), 360)
		if separation > 180 {
			separation = 360 - separation
		}
		for _, a := range chart.MajorAspects {
			if math.Abs(separation-a.Degrees) <= cfg.VoidOrbDegrees {
				return false
			}
		}
	}
	return true
}

func daysToSignExit(moon chart.PlanetPosition) float64 {
	degreeInSign := chart.DegreeWithinSign(moon.Longitude)
	var remaining float64
	if moon.SpeedDegPerDay > 0 {
		remaining = 30 - degreeInSign
	} else {
		remaining = degreeInSign
	}
	return remaining / math.Abs(moon.SpeedDegPerDay)
}
