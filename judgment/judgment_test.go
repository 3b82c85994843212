package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabaa/horary/aspect"
	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/moonstory"
	"github.com/sabaa/horary/radicality"
)

func radicalChart(positions map[chart.Planet]chart.PlanetPosition, rulers map[int]chart.Planet) *chart.HoraryChart {
	cusps := [12]float64{}
	for i := range cusps {
		cusps[i] = float64(i) * 30
	}
	c := &chart.HoraryChart{
		Ascendant:     135, // 15 degrees into its sign, well clear of too-early/too-late bounds
		HouseCusps:    cusps,
		HouseRulers:   rulers,
		Planets:       positions,
		SolarAnalyses: map[chart.Planet]chart.SolarAnalysis{},
	}
	c.Aspects = aspect.BuildAll(positions)
	if moon, ok := positions[chart.Moon]; ok {
		others := map[chart.Planet]chart.PlanetPosition{}
		for p, pos := range positions {
			if p != chart.Moon {
				others[p] = pos
			}
		}
		c.MoonLastAspect, c.MoonNextAspect = moonstory.Build(moon, others)
	}
	return c
}

func TestNotRadicalShortCircuits(t *testing.T) {
	cfg := horaryconfig.Default()
	c := radicalChart(nil, nil)
	c.Ascendant = 1 // inside the too-early band

	out := Judge(cfg, c, "Will I get the job?", Settings{})
	assert.Equal(t, NotRadical, out.Verdict)
	assert.Equal(t, 0, out.Confidence)
}

func TestCannotJudgeWhenRulersMissing(t *testing.T) {
	cfg := horaryconfig.Default()
	c := radicalChart(nil, map[int]chart.Planet{1: chart.Mars})

	out := Judge(cfg, c, "What will happen with this situation?", Settings{})
	assert.Equal(t, CannotJudge, out.Verdict)
}

func TestSameRulerUnityYieldsYes(t *testing.T) {
	cfg := horaryconfig.Default()
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Jupiter: {Planet: chart.Jupiter, Sign: chart.Sagittarius, Longitude: 260, DignityScore: 3},
	}
	c := radicalChart(positions, map[int]chart.Planet{1: chart.Jupiter, 7: chart.Jupiter})

	out := Judge(cfg, c, "What will happen with this situation?", Settings{})
	assert.Equal(t, Yes, out.Verdict)
	assert.Equal(t, "same_ruler_unity", out.PerfectionType)
}

func TestSameRulerUnityDeniedBySevereDebility(t *testing.T) {
	cfg := horaryconfig.Default()
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Saturn: {Planet: chart.Saturn, Sign: chart.Cancer, Longitude: 100, DignityScore: -12},
	}
	c := radicalChart(positions, map[int]chart.Planet{1: chart.Saturn, 7: chart.Saturn})

	out := Judge(cfg, c, "What will happen with this situation?", Settings{})
	assert.Equal(t, No, out.Verdict)
	assert.Equal(t, "same_ruler_denied", out.PerfectionType)
}

func TestDirectPerfectionYieldsYes(t *testing.T) {
	cfg := horaryconfig.Default()
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Mars: {Planet: chart.Mars, Sign: chart.Cancer, Longitude: 100, SpeedDegPerDay: 0.3},
		chart.Moon: {Planet: chart.Moon, Sign: chart.Aries, Longitude: 9, SpeedDegPerDay: 13},
	}
	c := radicalChart(positions, map[int]chart.Planet{1: chart.Mars, 7: chart.Moon})

	out := Judge(cfg, c, "What will happen with this situation?", Settings{})
	require.NotEqual(t, CannotJudge, out.Verdict)
	assert.Equal(t, Yes, out.Verdict)
}

func TestVoidMoonDeniesJudgment(t *testing.T) {
	cfg := horaryconfig.Default()
	// Alone in the chart, the Moon has nothing left to apply to before it
	// leaves its sign: void of course by definition.
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Moon: {Planet: chart.Moon, Sign: chart.Aries, Longitude: 5, SpeedDegPerDay: 13},
	}
	c := radicalChart(positions, map[int]chart.Planet{1: chart.Mars, 7: chart.Venus})

	out := Judge(cfg, c, "What will happen with this situation?", Settings{})
	assert.Equal(t, No, out.Verdict)
	assert.Equal(t, "void_moon_denial", out.PerfectionType)
}

func TestIgnoreVoidMoonOverrideLetsJudgmentProceed(t *testing.T) {
	cfg := horaryconfig.Default()
	positions := map[chart.Planet]chart.PlanetPosition{
		chart.Moon: {Planet: chart.Moon, Sign: chart.Aries, Longitude: 5, SpeedDegPerDay: 13},
	}
	c := radicalChart(positions, map[int]chart.Planet{1: chart.Mars, 7: chart.Venus})

	out := Judge(cfg, c, "What will happen with this situation?", Settings{
		Overrides: radicality.Overrides{IgnoreVoidMoon: true},
	})
	assert.NotEqual(t, "void_moon_denial", out.PerfectionType)
}
