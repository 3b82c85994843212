package radicality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

func baseChart() *chart.HoraryChart {
	cusps := [12]float64{}
	for i := range cusps {
		cusps[i] = float64(i) * 30
	}
	return &chart.HoraryChart{
		Ascendant: 15,
		HouseCusps: cusps,
		Planets: map[chart.Planet]chart.PlanetPosition{
			chart.Saturn: {Planet: chart.Saturn, Longitude: 100}, // 4th house, clear of the 7th
			chart.Moon:   {Planet: chart.Moon, Longitude: 50},
		},
	}
}

func TestRadicalChartPasses(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()

	result := Evaluate(cfg, c, Overrides{})
	assert.True(t, result.Radical)
}

func TestAscendantTooEarlyFails(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()
	c.Ascendant = 1

	result := Evaluate(cfg, c, Overrides{})
	assert.False(t, result.Radical)
	assert.NotEmpty(t, result.Reasoning)
}

func TestAscendantTooLateFails(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()
	c.Ascendant = 29

	result := Evaluate(cfg, c, Overrides{})
	assert.False(t, result.Radical)
}

func TestSaturnInSeventhFailsUnlessOverridden(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()
	c.Planets[chart.Saturn] = chart.PlanetPosition{Planet: chart.Saturn, Longitude: 195} // 7th house (180-210)

	result := Evaluate(cfg, c, Overrides{})
	assert.False(t, result.Radical)

	overridden := Evaluate(cfg, c, Overrides{IgnoreSaturn7th: true})
	assert.True(t, overridden.Radical)
	assert.Contains(t, overridden.Reasoning[0], "bypassed")
}

func TestIgnoreRadicalityBypassesEverything(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()
	c.Ascendant = 1
	c.Planets[chart.Saturn] = chart.PlanetPosition{Planet: chart.Saturn, Longitude: 195}

	result := Evaluate(cfg, c, Overrides{IgnoreRadicality: true})
	assert.True(t, result.Radical)
}

func TestViaCombustaFailsChart(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()
	c.Planets[chart.Moon] = chart.PlanetPosition{Planet: chart.Moon, Longitude: cfg.ViaCombustaStart + 1}

	result := Evaluate(cfg, c, Overrides{})
	assert.False(t, result.Radical)
	assert.Contains(t, result.Reasoning, "Moon in the Via Combusta invalidates the chart")
}

func TestViaCombustaCheckCanBeDisabled(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	cfg.CheckViaCombusta = false
	c := baseChart()
	c.Planets[chart.Moon] = chart.PlanetPosition{Planet: chart.Moon, Longitude: cfg.ViaCombustaStart + 1}

	result := Evaluate(cfg, c, Overrides{})
	assert.True(t, result.Radical)
}

func TestViaCombustaBoundaryDegrees(t *testing.T) {
	cfg := horaryconfig.Default().Radicality
	c := baseChart()

	// Exactly on the entry threshold counts as inside.
	c.Planets[chart.Moon] = chart.PlanetPosition{Planet: chart.Moon, Longitude: cfg.ViaCombustaStart}
	assert.False(t, Evaluate(cfg, c, Overrides{}).Radical)

	// Just before the entry threshold is clear.
	c.Planets[chart.Moon] = chart.PlanetPosition{Planet: chart.Moon, Longitude: cfg.ViaCombustaStart - 0.1}
	assert.True(t, Evaluate(cfg, c, Overrides{}).Radical)
}
