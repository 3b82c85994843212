// Package aspect computes angular relationships between bodies: which of
// the five Ptolemaic aspects, if any, two planets form, how close it is to
// exact, and whether it is applying or separating.
package aspect

import (
	"math"

	"github.com/sabaa/horary/chart"
)

// angularSeparation returns the shorter-arc angular distance between two
// longitudes, in [0, 180].
func angularSeparation(lon1, lon2 float64) float64 {
	diff := math.Mod(math.Abs(lon1-lon2), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Closest finds the closest-to-exact major aspect between two positions, if
// any falls within their combined moiety. It does not decide applying/
// separating; call Applying for that.
func Closest(p1, p2 chart.PlanetPosition) (chart.Aspect, float64, bool) {
	separation := angularSeparation(p1.Longitude, p2.Longitude)

	var best chart.Aspect
	bestOrb := math.MaxFloat64
	found := false

	for _, a := range chart.MajorAspects {
		orb := math.Abs(separation - a.Degrees)
		allowed := CombinedMoiety(p1.Planet, p2.Planet, a)
		if orb <= allowed && orb < bestOrb {
			best = a
			bestOrb = orb
			found = true
		}
	}

	return best, bestOrb, found
}

// Applying reports whether the aspect between p1 and p2 is applying: the
// orb shrinks when both bodies are projected forward by a small time
// increment, and the aspect perfects before either body crosses its next
// sign boundary.
func Applying(p1, p2 chart.PlanetPosition, a chart.Aspect) bool {
	const step = 1.0 / 24.0 // one hour, in days

	currentOrb := math.Abs(angularSeparation(p1.Longitude, p2.Longitude) - a.Degrees)

	future1 := p1.Longitude + p1.SpeedDegPerDay*step
	future2 := p2.Longitude + p2.SpeedDegPerDay*step
	futureOrb := math.Abs(angularSeparation(future1, future2) - a.Degrees)

	if futureOrb >= currentOrb {
		return false
	}

	daysToExact := DaysToExact(p1, p2, a)
	if math.IsInf(daysToExact, 0) || daysToExact < 0 {
		return false
	}

	return daysToExact <= math.Min(daysToSignExit(p1), daysToSignExit(p2))
}

// DaysToExact estimates how many days until the aspect between p1 and p2
// perfects, using their relative speed. Returns +Inf when the bodies have
// effectively zero relative speed (the aspect never perfects on its own).
func DaysToExact(p1, p2 chart.PlanetPosition, a chart.Aspect) float64 {
	separation := angularSeparation(p1.Longitude, p2.Longitude)

	// The shorter-arc separation grows at p2's speed minus p1's while p2
	// leads p1 by up to 180°, and at the opposite rate otherwise.
	separationRate := p2.SpeedDegPerDay - p1.SpeedDegPerDay
	if chart.NormalizeDegrees(p2.Longitude-p1.Longitude) > 180 {
		separationRate = -separationRate
	}
	if math.Abs(separationRate) < 1e-6 {
		return math.Inf(1)
	}

	return (a.Degrees - separation) / separationRate
}

// daysToSignExit estimates how many days until p leaves its current sign,
// given its current speed. Returns +Inf for a stationary body.
func daysToSignExit(p chart.PlanetPosition) float64 {
	if math.Abs(p.SpeedDegPerDay) < 1e-6 {
		return math.Inf(1)
	}

	degreeInSign := chart.DegreeWithinSign(p.Longitude)
	var remaining float64
	if p.SpeedDegPerDay > 0 {
		remaining = 30 - degreeInSign
	} else {
		remaining = degreeInSign
	}

	days := remaining / math.Abs(p.SpeedDegPerDay)
	if days < 0 {
		return 0
	}
	return days
}

// BuildAll computes the AspectInfo sequence for every ordered pair among the
// given positions, in the order the Chart Builder should store them:
// iterating chart.Bodies pairwise.
func BuildAll(positions map[chart.Planet]chart.PlanetPosition) []chart.AspectInfo {
	var infos []chart.AspectInfo

	for i, p1 := range chart.Bodies {
		for _, p2 := range chart.Bodies[i+1:] {
			pos1, ok1 := positions[p1]
			pos2, ok2 := positions[p2]
			if !ok1 || !ok2 {
				continue
			}

			a, orb, found := Closest(pos1, pos2)
			if !found {
				continue
			}

			applying := Applying(pos1, pos2, a)
			infos = append(infos, chart.AspectInfo{
				Planet1:        p1,
				Planet2:        p2,
				Aspect:         a,
				Orb:            orb,
				Applying:       applying,
				DegreesToExact: orb,
			})
		}
	}

	return infos
}

// Find returns the AspectInfo between p1 and p2 in either order, if present.
func Find(infos []chart.AspectInfo, p1, p2 chart.Planet) (chart.AspectInfo, bool) {
	for _, info := range infos {
		if (info.Planet1 == p1 && info.Planet2 == p2) || (info.Planet1 == p2 && info.Planet2 == p1) {
			return info, true
		}
	}
	return chart.AspectInfo{}, false
}
