// Package dignity owns the essential-dignity tables — domicile, exaltation
// and triplicity rulership — and composes them with accidental, motion,
// sect and solar factors into a planet's signed dignity score. The
// reception package imports these tables rather than keeping its own copy,
// so there is exactly one place that knows what rules what.
package dignity

import "github.com/sabaa/horary/chart"

// Exaltations maps each traditional planet to the sign it is exalted in.
// Points outside the seven bodies (Ascendant, Midheaven) have no entry.
var Exaltations = map[chart.Planet]chart.Sign{
	chart.Sun:     chart.Aries,
	chart.Moon:    chart.Taurus,
	chart.Mercury: chart.Virgo,
	chart.Venus:   chart.Pisces,
	chart.Mars:    chart.Capricorn,
	chart.Jupiter: chart.Cancer,
	chart.Saturn:  chart.Libra,
}

// Falls maps each planet to the sign of its fall, the sign opposite its
// exaltation.
var Falls = map[chart.Planet]chart.Sign{
	chart.Sun:     chart.Libra,
	chart.Moon:    chart.Scorpio,
	chart.Mercury: chart.Pisces,
	chart.Venus:   chart.Virgo,
	chart.Mars:    chart.Cancer,
	chart.Jupiter: chart.Capricorn,
	chart.Saturn:  chart.Aries,
}

// triplicityPair holds a sign's day and night triplicity rulers;
// triplicityRulers maps each sign's Name to its pair.
type triplicityPair struct {
	Day   chart.Planet
	Night chart.Planet
}

var triplicityRulers = map[string]triplicityPair{
	// Fire
	chart.Aries.Name:       {chart.Sun, chart.Jupiter},
	chart.Leo.Name:         {chart.Sun, chart.Jupiter},
	chart.Sagittarius.Name: {chart.Sun, chart.Jupiter},
	// Earth
	chart.Taurus.Name:    {chart.Venus, chart.Moon},
	chart.Virgo.Name:     {chart.Venus, chart.Moon},
	chart.Capricorn.Name: {chart.Venus, chart.Moon},
	// Air
	chart.Gemini.Name:   {chart.Saturn, chart.Mercury},
	chart.Libra.Name:    {chart.Saturn, chart.Mercury},
	chart.Aquarius.Name: {chart.Saturn, chart.Mercury},
	// Water
	chart.Cancer.Name:  {chart.Mars, chart.Venus},
	chart.Scorpio.Name: {chart.Mars, chart.Venus},
	chart.Pisces.Name:  {chart.Mars, chart.Venus},
}

// TriplicityRuler returns the triplicity ruler of sign for the given sect.
func TriplicityRuler(sign chart.Sign, isDayChart bool) (chart.Planet, bool) {
	pair, ok := triplicityRulers[sign.Name]
	if !ok {
		return "", false
	}
	if isDayChart {
		return pair.Day, true
	}
	return pair.Night, true
}

// HasDomicile reports whether planet rules sign.
func HasDomicile(planet chart.Planet, sign chart.Sign) bool {
	return sign.Ruler == planet
}

// HasExaltation reports whether planet is exalted in sign.
func HasExaltation(planet chart.Planet, sign chart.Sign) bool {
	exalted, ok := Exaltations[planet]
	return ok && exalted == sign
}

// HasTriplicity reports whether planet is the triplicity ruler of sign under
// the given sect.
func HasTriplicity(planet chart.Planet, sign chart.Sign, isDayChart bool) bool {
	ruler, ok := TriplicityRuler(sign, isDayChart)
	return ok && ruler == planet
}

// HasFall reports whether planet is in its fall in sign.
func HasFall(planet chart.Planet, sign chart.Sign) bool {
	fallSign, ok := Falls[planet]
	return ok && fallSign == sign
}

// HasDetriment reports whether planet is in detriment in sign: the sign
// opposite the one it rules.
func HasDetriment(planet chart.Planet, sign chart.Sign) bool {
	for _, s := range chart.Signs {
		if s.Ruler == planet {
			opposite := chart.Signs[(signIndex(s)+6)%12]
			if opposite == sign {
				return true
			}
		}
	}
	return false
}

func signIndex(s chart.Sign) int {
	return int(s.StartDegree / 30)
}
