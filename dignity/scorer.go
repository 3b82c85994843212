package dignity

import (
	"math"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

// joyHouses maps each planet to the house it rejoices in.
var joyHouses = map[chart.Planet]int{
	chart.Mercury: 1,
	chart.Moon:    3,
	chart.Venus:   5,
	chart.Mars:    6,
	chart.Sun:     9,
	chart.Jupiter: 11,
	chart.Saturn:  12,
}

// diurnalSect lists the planets of the day sect; nocturnal is everything
// else among the seven bodies except Mercury, which is neutral.
var diurnalSect = map[chart.Planet]bool{
	chart.Sun:     true,
	chart.Jupiter: true,
	chart.Saturn:  true,
}
var nocturnalSect = map[chart.Planet]bool{
	chart.Moon:  true,
	chart.Venus: true,
	chart.Mars:  true,
}

func isAngular(house int) bool   { return house == 1 || house == 4 || house == 7 || house == 10 }
func isSuccedent(house int) bool { return house == 2 || house == 5 || house == 8 || house == 11 }
func isCadent(house int) bool    { return house == 3 || house == 6 || house == 9 || house == 12 }

// Score composes a planet's full dignity score from essential, accidental,
// motion, sect and solar terms, each weighted by cfg. cuspDistance is the
// planet's distance in degrees from the nearest angular house cusp, used
// for the 5-degree "still angular" rule; pass a large value when the
// planet is nowhere near a cusp.
func Score(cfg horaryconfig.DignityConfig, pos chart.PlanetPosition, solarAnalysis chart.SolarAnalysis, isDayChart bool, cuspDistance float64) int {
	score := essential(cfg, pos.Planet, pos.Sign, isDayChart)
	score += accidental(cfg, pos.House, cuspDistance)
	score += JoyBonus(cfg, pos.Planet, pos.House)
	score += motion(cfg, pos)
	score += sect(cfg, pos.Planet, isDayChart)
	score += solarTerm(cfg, solarAnalysis)
	return score
}

// solarTerm applies the solar-condition modifier: exact cazimi earns more
// than ordinary cazimi, and the combustion/under-beams penalties are waived
// when a traditional visibility exception holds.
func solarTerm(cfg horaryconfig.DignityConfig, analysis chart.SolarAnalysis) int {
	switch analysis.Condition.Name {
	case chart.Cazimi.Name:
		if analysis.ExactCazimi {
			return analysis.Condition.DignityModifier + cfg.ExactCazimiBonus
		}
		return analysis.Condition.DignityModifier
	case chart.Combustion.Name, chart.UnderBeams.Name:
		if analysis.TraditionalException {
			return 0
		}
		return analysis.Condition.DignityModifier
	default:
		return 0
	}
}

func essential(cfg horaryconfig.DignityConfig, planet chart.Planet, sign chart.Sign, isDayChart bool) int {
	score := 0
	if HasDomicile(planet, sign) {
		score += cfg.EssentialDomicile
	}
	if HasExaltation(planet, sign) {
		score += cfg.EssentialExaltation
	}
	if HasTriplicity(planet, sign, isDayChart) {
		score += cfg.EssentialTriplicity
	}
	if HasDetriment(planet, sign) {
		score += cfg.EssentialDetriment
	}
	if HasFall(planet, sign) {
		score += cfg.EssentialFall
	}
	return score
}

func accidental(cfg horaryconfig.DignityConfig, house int, cuspDistance float64) int {
	score := 0
	if isAngular(house) || (cuspDistance >= 0 && cuspDistance <= cfg.AngularCuspOrbDegrees) {
		score += cfg.AccidentalAngular
	} else if isSuccedent(house) {
		score += cfg.AccidentalSuccedent
	} else if isCadent(house) {
		score += cfg.AccidentalCadent
	}
	return score
}

// JoyBonus returns the joy bonus for a planet standing in its joy house,
// added separately from accidental() since it is keyed by planet+house
// rather than house alone.
func JoyBonus(cfg horaryconfig.DignityConfig, planet chart.Planet, house int) int {
	if joyHouses[planet] == house {
		return cfg.AccidentalJoy
	}
	return 0
}

func motion(cfg horaryconfig.DignityConfig, pos chart.PlanetPosition) int {
	score := 0
	speed := math.Abs(pos.SpeedDegPerDay)

	if speed <= cfg.MotionStationaryOrbDegPerDay {
		score += cfg.MotionSlowPenalty
	} else if speed >= cfg.MotionFastThresholdDegPerDay {
		score += cfg.MotionFastBonus
	}

	if pos.Retrograde {
		score += cfg.MotionRetrogradePenalty
	}

	return score
}

func sect(cfg horaryconfig.DignityConfig, planet chart.Planet, isDayChart bool) int {
	if planet == chart.Mercury {
		return 0
	}

	inHayz := (isDayChart && diurnalSect[planet]) || (!isDayChart && nocturnalSect[planet])
	if inHayz {
		return cfg.SectHayzBonus
	}
	return cfg.SectContrarietyPenalty
}
