package perfection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabaa/horary/aspect"
	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

func chartFor(positions map[chart.Planet]chart.PlanetPosition) *chart.HoraryChart {
	c := &chart.HoraryChart{
		Planets:       positions,
		SolarAnalyses: map[chart.Planet]chart.SolarAnalysis{},
	}
	c.Aspects = aspect.BuildAll(positions)
	return c
}

func TestDirectPerfectionWithMutualRulership(t *testing.T) {
	// Mars in Cancer (Moon rules), Moon in Aries (Mars rules): mutual rulership,
	// separated by 91 degrees and applying toward an exact square.
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Mars: {Planet: chart.Mars, Sign: chart.Cancer, Longitude: 100, SpeedDegPerDay: 0.3},
		chart.Moon: {Planet: chart.Moon, Sign: chart.Aries, Longitude: 9, SpeedDegPerDay: 13},
	}
	c := chartFor(positions)
	cfg := horaryconfig.Default()

	result := Detect(cfg, c, chart.Mars, chart.Moon)
	assert.True(t, result.Perfects)
	assert.Equal(t, Direct, result.Kind)
}

func TestCombustionConjunctionDeniesPerfection(t *testing.T) {
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Sun:     {Planet: chart.Sun, Sign: chart.Leo, Longitude: 126, SpeedDegPerDay: 1},
		chart.Mercury: {Planet: chart.Mercury, Sign: chart.Leo, Longitude: 125, SpeedDegPerDay: 1.5},
	}
	c := chartFor(positions)
	c.SolarAnalyses[chart.Mercury] = chart.SolarAnalysis{Condition: chart.Combustion}
	cfg := horaryconfig.Default()

	result := Detect(cfg, c, chart.Sun, chart.Mercury)
	assert.False(t, result.Perfects)
	assert.Equal(t, CombustionDenial, result.Kind)
}

func TestNoPerfectionWhenNoConnection(t *testing.T) {
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Mars:  {Planet: chart.Mars, Sign: chart.Gemini, Longitude: 65, SpeedDegPerDay: 0.4, House: 6, DignityScore: -6},
		chart.Venus: {Planet: chart.Venus, Sign: chart.Capricorn, Longitude: 280, SpeedDegPerDay: 1, House: 9, DignityScore: -6},
	}
	c := chartFor(positions)
	cfg := horaryconfig.Default()

	result := Detect(cfg, c, chart.Mars, chart.Venus)
	assert.False(t, result.Perfects)
	assert.Equal(t, None, result.Kind)
}

func TestTranslationOfLightDetected(t *testing.T) {
	// Moon (fast) has just separated from Mars and is now applying to Venus.
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Mars:  {Planet: chart.Mars, Sign: chart.Aries, Longitude: 28, SpeedDegPerDay: 0.3},
		chart.Venus: {Planet: chart.Venus, Sign: chart.Taurus, Longitude: 40, SpeedDegPerDay: 1},
		chart.Moon:  {Planet: chart.Moon, Sign: chart.Taurus, Longitude: 32, SpeedDegPerDay: 13},
	}
	c := chartFor(positions)
	cfg := horaryconfig.Default()

	result := Detect(cfg, c, chart.Mars, chart.Venus)
	require.True(t, result.Perfects)
	assert.Equal(t, Translation, result.Kind)
	assert.Equal(t, chart.Moon, result.Translator)
}

func TestTranslationRejectsStaleSeparation(t *testing.T) {
	// Moon separated from Mars 12 degrees ago: too far past exact for the
	// light to still be carried.
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Mars:  {Planet: chart.Mars, Sign: chart.Aries, Longitude: 20, SpeedDegPerDay: 0.3},
		chart.Venus: {Planet: chart.Venus, Sign: chart.Taurus, Longitude: 40, SpeedDegPerDay: 1},
		chart.Moon:  {Planet: chart.Moon, Sign: chart.Taurus, Longitude: 32, SpeedDegPerDay: 13},
	}
	c := chartFor(positions)
	cfg := horaryconfig.Default()
	cfg.Orbs.TranslationSeparationMax = 10

	result := Detect(cfg, c, chart.Mars, chart.Venus)
	assert.NotEqual(t, Translation, result.Kind)
}

func TestTranslationRejectsInterveningAspect(t *testing.T) {
	// Saturn sits between the Moon's separation from Mars and its
	// application to Venus: the Moon conjoins Saturn first, which carries
	// the light elsewhere.
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Mars:   {Planet: chart.Mars, Sign: chart.Aries, Longitude: 28, SpeedDegPerDay: 0.3},
		chart.Venus:  {Planet: chart.Venus, Sign: chart.Taurus, Longitude: 40, SpeedDegPerDay: 1},
		chart.Saturn: {Planet: chart.Saturn, Sign: chart.Taurus, Longitude: 36, SpeedDegPerDay: 0.05},
		chart.Moon:   {Planet: chart.Moon, Sign: chart.Taurus, Longitude: 32, SpeedDegPerDay: 13},
	}
	c := chartFor(positions)
	cfg := horaryconfig.Default()

	result := Detect(cfg, c, chart.Mars, chart.Venus)
	assert.NotEqual(t, Translation, result.Kind)
}
