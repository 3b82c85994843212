package reception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabaa/horary/chart"
)

func chartWithPositions(sun chart.PlanetPosition, planets map[chart.Planet]chart.PlanetPosition) *chart.HoraryChart {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = float64(i) * 30
	}
	planets[chart.Sun] = sun
	return &chart.HoraryChart{HouseCusps: cusps, Planets: planets}
}

func TestMutualRulership(t *testing.T) {
	// Mars in Cancer (Moon's domicile), Moon in Aries (Mars's domicile).
	c := chartWithPositions(
		chart.PlanetPosition{Longitude: 220, Sign: chart.Capricorn}, // Sun in house 8 -> day chart
		map[chart.Planet]chart.PlanetPosition{
			chart.Mars: {Planet: chart.Mars, Sign: chart.Cancer},
			chart.Moon: {Planet: chart.Moon, Sign: chart.Aries},
		},
	)

	result := Calculate(c, chart.Mars, chart.Moon)
	require.Equal(t, MutualRulership, result.Kind)
	assert.Equal(t, 10, result.Strength)
	assert.True(t, result.MutualOrBetter())
}

func TestUnilateralReceptionByDomicile(t *testing.T) {
	c := chartWithPositions(
		chart.PlanetPosition{Longitude: 40, Sign: chart.Taurus}, // house 2 -> night chart
		map[chart.Planet]chart.PlanetPosition{
			chart.Venus:  {Planet: chart.Venus, Sign: chart.Libra},
			chart.Saturn: {Planet: chart.Saturn, Sign: chart.Gemini}, // in Venus's domicile? No: Libra is Venus's.
		},
	)
	// Saturn stands in Gemini; Venus stands in Libra (Venus's own domicile, irrelevant here).
	// Mercury would receive Saturn in Gemini by domicile; use Mercury instead for clarity.
	c.Planets[chart.Mercury] = chart.PlanetPosition{Planet: chart.Mercury, Sign: chart.Leo} // Saturn has no dignity in Leo

	result := Calculate(c, chart.Saturn, chart.Mercury)
	require.Equal(t, Unilateral, result.Kind)
	assert.Equal(t, chart.Mercury, result.ReceivingPlanet)
	assert.Equal(t, chart.Saturn, result.ReceivedPlanet)
	assert.Contains(t, result.Planet2Receives, "domicile")
}

func TestNoReception(t *testing.T) {
	c := chartWithPositions(
		chart.PlanetPosition{Longitude: 10, Sign: chart.Aries},
		map[chart.Planet]chart.PlanetPosition{
			chart.Mars:    {Planet: chart.Mars, Sign: chart.Gemini},
			chart.Jupiter: {Planet: chart.Jupiter, Sign: chart.Virgo},
		},
	)

	result := Calculate(c, chart.Mars, chart.Jupiter)
	assert.Equal(t, None, result.Kind)
	assert.Equal(t, 0, result.Strength)
	assert.False(t, result.MutualOrBetter())
}

func TestReceptionIsSymmetricAsAPair(t *testing.T) {
	c := chartWithPositions(
		chart.PlanetPosition{Longitude: 220, Sign: chart.Capricorn},
		map[chart.Planet]chart.PlanetPosition{
			chart.Mars: {Planet: chart.Mars, Sign: chart.Cancer},
			chart.Moon: {Planet: chart.Moon, Sign: chart.Aries},
		},
	)

	forward := Calculate(c, chart.Mars, chart.Moon)
	backward := Calculate(c, chart.Moon, chart.Mars)
	assert.Equal(t, forward.Kind, backward.Kind)
	assert.Equal(t, forward.Strength, backward.Strength)
}
