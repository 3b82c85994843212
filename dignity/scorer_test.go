package dignity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

func TestScoreDomicileAngularHayz(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	pos := chart.PlanetPosition{
		Planet:         chart.Jupiter,
		Sign:           chart.Sagittarius, // Jupiter's domicile
		House:          1,                 // angular
		SpeedDegPerDay: 0.2,               // not fast, not stationary either
	}
	solar := chart.SolarAnalysis{Condition: chart.FreeOfSun}

	score := Score(cfg, pos, solar, true, 99)

	expected := cfg.EssentialDomicile + cfg.AccidentalAngular + cfg.SectHayzBonus
	assert.Equal(t, expected, score)
}

func TestScoreDetrimentCadentCombustStack(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	pos := chart.PlanetPosition{
		Planet: chart.Mars,
		Sign:   chart.Libra, // Mars detriment
		House:  6,           // cadent
	}
	solar := chart.SolarAnalysis{Condition: chart.Combustion}

	score := Score(cfg, pos, solar, false, 99)

	// A nocturnal Mars by night is in sect, the 6th is its joy, and zero speed
	// counts as near-stationary.
	expected := cfg.EssentialDetriment + cfg.AccidentalCadent + cfg.AccidentalJoy + cfg.MotionSlowPenalty + cfg.SectHayzBonus + chart.Combustion.DignityModifier
	assert.Equal(t, expected, score)
}

func TestMercurySectIsNeutral(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	posDay := chart.PlanetPosition{Planet: chart.Mercury, Sign: chart.Taurus, House: 2}
	posNight := chart.PlanetPosition{Planet: chart.Mercury, Sign: chart.Taurus, House: 2}
	solar := chart.SolarAnalysis{Condition: chart.FreeOfSun}

	scoreDay := Score(cfg, posDay, solar, true, 99)
	scoreNight := Score(cfg, posNight, solar, false, 99)
	assert.Equal(t, scoreDay, scoreNight)
}

func TestAngularCuspFiveDegreeRule(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	pos := chart.PlanetPosition{Planet: chart.Saturn, Sign: chart.Gemini, House: 12}
	solar := chart.SolarAnalysis{Condition: chart.FreeOfSun}

	nearCusp := Score(cfg, pos, solar, true, 2)
	farFromCusp := Score(cfg, pos, solar, true, 20)

	assert.Greater(t, nearCusp, farFromCusp)
}

func TestRetrogradePenaltyApplies(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	direct := chart.PlanetPosition{Planet: chart.Mars, Sign: chart.Gemini, House: 8, SpeedDegPerDay: 0.3}
	retro := chart.PlanetPosition{Planet: chart.Mars, Sign: chart.Gemini, House: 8, SpeedDegPerDay: -0.3, Retrograde: true}
	solar := chart.SolarAnalysis{Condition: chart.FreeOfSun}

	assert.Greater(t, Score(cfg, direct, solar, true, 99), Score(cfg, retro, solar, true, 99))
}

func TestExactCazimiOutscoresOrdinaryCazimi(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	pos := chart.PlanetPosition{Planet: chart.Mercury, Sign: chart.Taurus, House: 2}

	cazimi := chart.SolarAnalysis{Condition: chart.Cazimi}
	exact := chart.SolarAnalysis{Condition: chart.Cazimi, ExactCazimi: true}

	plain := Score(cfg, pos, cazimi, true, 99)
	heart := Score(cfg, pos, exact, true, 99)

	assert.Equal(t, cfg.ExactCazimiBonus, heart-plain)
	assert.Greater(t, heart, plain)
}

func TestTraditionalExceptionWaivesCombustionPenalty(t *testing.T) {
	cfg := horaryconfig.Default().Dignity
	pos := chart.PlanetPosition{Planet: chart.Mercury, Sign: chart.Gemini, House: 2}

	burnt := chart.SolarAnalysis{Condition: chart.Combustion}
	excepted := chart.SolarAnalysis{Condition: chart.Combustion, TraditionalException: true}

	assert.Equal(t, -chart.Combustion.DignityModifier,
		Score(cfg, pos, excepted, true, 99)-Score(cfg, pos, burnt, true, 99))
}
