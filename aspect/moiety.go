package aspect

import "github.com/sabaa/horary/chart"

// Moieties holds each planet's traditional orb moiety in degrees. Two
// planets' combined orb is the sum of their moieties, scaled per aspect by
// chart.Aspect.MoietyScale.
var Moieties = map[chart.Planet]float64{
	chart.Sun:     15,
	chart.Moon:    12,
	chart.Mercury: 7,
	chart.Venus:   7,
	chart.Mars:    8,
	chart.Jupiter: 9,
	chart.Saturn:  9,
}

// CombinedMoiety returns the scaled combined orb allowed for the given
// aspect between p1 and p2: the sum of both moieties, scaled per aspect.
func CombinedMoiety(p1, p2 chart.Planet, a chart.Aspect) float64 {
	return (Moieties[p1] + Moieties[p2]) * a.MoietyScale
}
