package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evenCusps() [12]float64 {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = float64(i) * 30
	}
	return cusps
}

func TestHouseOfLongitude(t *testing.T) {
	cusps := evenCusps()

	assert.Equal(t, 1, HouseOfLongitude(15, cusps))
	assert.Equal(t, 2, HouseOfLongitude(45, cusps))
	assert.Equal(t, 12, HouseOfLongitude(355, cusps))
}

func TestHouseOfLongitudeWrapsAcrossZero(t *testing.T) {
	cusps := evenCusps()
	cusps[11] = 350 // 12th cusp close to 0, crossing the seam

	house := HouseOfLongitude(355, cusps)
	assert.Equal(t, 12, house)
}

func TestIsDayChart(t *testing.T) {
	cusps := evenCusps()

	dayChart := &HoraryChart{
		HouseCusps: cusps,
		Planets: map[Planet]PlanetPosition{
			Sun: {Planet: Sun, Longitude: 220}, // house 8
		},
	}
	require.True(t, dayChart.IsDayChart())

	nightChart := &HoraryChart{
		HouseCusps: cusps,
		Planets: map[Planet]PlanetPosition{
			Sun: {Planet: Sun, Longitude: 40}, // house 2
		},
	}
	require.False(t, nightChart.IsDayChart())
}
