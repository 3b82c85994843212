package moonstory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

func TestBuildFindsLastAndNext(t *testing.T) {
	moon := chart.PlanetPosition{Planet: chart.Moon, Longitude: 100, Sign: chart.Cancer, SpeedDegPerDay: 13}
	others := map[chart.Planet]chart.PlanetPosition{
		// Moon just separated from Venus (applying=false, small orb).
		chart.Venus: {Planet: chart.Venus, Longitude: 98, SpeedDegPerDay: 0.2},
		// Moon is applying to Mars (orb bigger but speed favors perfection).
		chart.Mars: {Planet: chart.Mars, Longitude: 108, SpeedDegPerDay: 0.3},
	}

	last, next := Build(moon, others)
	require.NotNil(t, last)
	require.NotNil(t, next)
	assert.Equal(t, chart.Venus, last.Planet)
	assert.Equal(t, chart.Mars, next.Planet)
	assert.False(t, last.Applying)
	assert.True(t, next.Applying)
}

func TestMoonLastAndNextAreDistinct(t *testing.T) {
	moon := chart.PlanetPosition{Planet: chart.Moon, Longitude: 100, Sign: chart.Cancer, SpeedDegPerDay: 13}
	others := map[chart.Planet]chart.PlanetPosition{
		chart.Venus: {Planet: chart.Venus, Longitude: 98, SpeedDegPerDay: 0.2},
		chart.Mars:  {Planet: chart.Mars, Longitude: 108, SpeedDegPerDay: 0.3},
	}

	last, next := Build(moon, others)
	require.NotNil(t, last)
	require.NotNil(t, next)
	assert.NotEqual(t, last.Planet, next.Planet)
}

func TestHumanETABands(t *testing.T) {
	assert.Equal(t, "within hours", HumanETA(0.01))
	assert.Equal(t, "within a day", HumanETA(0.5))
	assert.Equal(t, "within 3 days", HumanETA(2.1))
	assert.Equal(t, "more than a year", HumanETA(400))
}

func TestStationaryMoonNeverVoid(t *testing.T) {
	cfg := horaryconfig.Default().Moon
	moon := chart.PlanetPosition{Planet: chart.Moon, Sign: chart.Pisces, SpeedDegPerDay: 0}
	assert.False(t, IsVoidOfCourse(cfg, moon, nil, nil))
}

func TestVoidBySignWhenNoFurtherAspectBeforeSignExit(t *testing.T) {
	cfg := horaryconfig.Default().Moon
	moon := chart.PlanetPosition{Planet: chart.Moon, Sign: chart.Gemini, Longitude: 89, SpeedDegPerDay: 13}
	assert.True(t, IsVoidOfCourse(cfg, moon, nil, nil))
}

func TestVoidBySignExceptionSignsApply(t *testing.T) {
	cfg := horaryconfig.Default().Moon
	// Cancer is in the default exception list: the Moon performs there even
	// with no further aspect before the sign boundary.
	moon := chart.PlanetPosition{Planet: chart.Moon, Sign: chart.Cancer, Longitude: 119, SpeedDegPerDay: 13}
	assert.False(t, IsVoidOfCourse(cfg, moon, nil, nil))
}

func TestVoidByOrbMethod(t *testing.T) {
	cfg := horaryconfig.Default().Moon
	cfg.VoidOfCourseMethod = "by_orb"
	moon := chart.PlanetPosition{Planet: chart.Moon, Sign: chart.Gemini, Longitude: 80, SpeedDegPerDay: 13}

	// Mars at a 92-degree separation sits inside the void orb of a square.
	inOrb := map[chart.Planet]chart.PlanetPosition{
		chart.Mars: {Planet: chart.Mars, Longitude: 172},
	}
	assert.False(t, IsVoidOfCourse(cfg, moon, inOrb, nil))

	// Mars at a 104-degree separation is outside every Ptolemaic aspect's
	// void orb, so the Moon runs void.
	outOfOrb := map[chart.Planet]chart.PlanetPosition{
		chart.Mars: {Planet: chart.Mars, Longitude: 184},
	}
	assert.True(t, IsVoidOfCourse(cfg, moon, outOfOrb, nil))
}

func TestLillyDispensationSigns(t *testing.T) {
	cfg := horaryconfig.Default().Moon

	// Pisces is not in the configured by_sign exceptions, so the Moon is
	// void there by the default method...
	moon := chart.PlanetPosition{Planet: chart.Moon, Sign: chart.Pisces, Longitude: 359, SpeedDegPerDay: 13}
	assert.True(t, IsVoidOfCourse(cfg, moon, nil, nil))

	// ...but Lilly's fixed dispensation list includes it.
	cfg.VoidOfCourseMethod = "lilly"
	assert.False(t, IsVoidOfCourse(cfg, moon, nil, nil))
}
