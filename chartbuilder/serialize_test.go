package chartbuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

func almanacChart(localTime time.Time) *chart.HoraryChart {
	cusps := [12]float64{0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330}
	return &chart.HoraryChart{
		DateTimeLocal: localTime,
		DateTimeUTC:   localTime.UTC(),
		TimezoneName:  "UTC",
		Location:      chart.Location{Latitude: 51.5, Longitude: 0, Name: "London, UK"},
		Ascendant:     15,
		HouseCusps:    cusps,
		HouseRulers:   map[int]chart.Planet{1: chart.Mars, 7: chart.Venus},
		Planets: map[chart.Planet]chart.PlanetPosition{
			chart.Sun: {
				Planet: chart.Sun, Longitude: 100,
				Sign: chart.SignOfLongitude(100), House: 4, SpeedDegPerDay: 1.0,
			},
			chart.Moon: {
				Planet: chart.Moon, Longitude: 190,
				Sign: chart.SignOfLongitude(190), House: 7, SpeedDegPerDay: 13.2,
			},
		},
		SolarAnalyses: map[chart.Planet]chart.SolarAnalysis{
			chart.Sun:  {Planet: chart.Sun, Condition: chart.FreeOfSun},
			chart.Moon: {Planet: chart.Moon, Condition: chart.FreeOfSun},
		},
	}
}

func TestBuildGeneralInfoPlanetaryDayAndHour(t *testing.T) {
	// 2024-06-16 is a Sunday; hour 0 belongs to the day ruler itself.
	sundayMidnight := time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)
	info := BuildGeneralInfo(horaryconfig.Default().Moon, almanacChart(sundayMidnight))
	assert.Equal(t, "Sun", info.PlanetaryDay)
	assert.Equal(t, "Sun", info.PlanetaryHour)

	// One hour later the sequence moves to Venus, the next planet in
	// Chaldean order after the Sun.
	sundayOne := time.Date(2024, time.June, 16, 1, 0, 0, 0, time.UTC)
	info = BuildGeneralInfo(horaryconfig.Default().Moon, almanacChart(sundayOne))
	assert.Equal(t, "Venus", info.PlanetaryHour)

	// Monday belongs to the Moon.
	monday := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	info = BuildGeneralInfo(horaryconfig.Default().Moon, almanacChart(monday))
	assert.Equal(t, "Moon", info.PlanetaryDay)
}

func TestBuildGeneralInfoMoonBlock(t *testing.T) {
	info := BuildGeneralInfo(horaryconfig.Default().Moon, almanacChart(time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, "First Quarter", info.MoonPhase, "Moon 90 degrees ahead of the Sun")
	assert.Equal(t, "Libra", info.MoonCondition.Sign)
	assert.Equal(t, "Average", info.MoonCondition.SpeedCategory)
	assert.NotZero(t, info.MoonMansion.Number)
	assert.NotEmpty(t, info.MoonMansion.Name)
}

func TestSerializeChartShape(t *testing.T) {
	c := almanacChart(time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC))
	c.Aspects = []chart.AspectInfo{{
		Planet1: chart.Sun, Planet2: chart.Moon, Aspect: chart.Square,
		Orb: 0.0, Applying: true, DegreesToExact: 0.0,
	}}
	c.MoonNextAspect = &chart.LunarAspect{
		Planet: chart.Sun, Aspect: chart.Square, Orb: 0,
		PerfectionETAHuman: "within hours", Applying: true,
	}

	data := SerializeChart(c)
	require.NotNil(t, data)
	assert.Len(t, data.Planets, 2)
	assert.Equal(t, "Cancer", data.Planets["Sun"].Sign)
	assert.Len(t, data.Aspects, 1)
	assert.Equal(t, "Square", data.Aspects[0].Aspect)
	require.NotNil(t, data.MoonNextAspect)
	assert.Equal(t, "within hours", data.MoonNextAspect.Timing)
	assert.Nil(t, data.MoonLastAspect)
	assert.Equal(t, "Mars", data.HouseRulers["1"])
}

func TestBuildSolarFactorsSummarizesSignificators(t *testing.T) {
	c := almanacChart(time.Date(2024, time.June, 16, 12, 0, 0, 0, time.UTC))
	c.Planets[chart.Mercury] = chart.PlanetPosition{Planet: chart.Mercury, Longitude: 102, Sign: chart.SignOfLongitude(102)}
	c.SolarAnalyses[chart.Mercury] = chart.SolarAnalysis{
		Planet: chart.Mercury, Condition: chart.Combustion, DistanceFromSun: 2.0,
	}

	factors := BuildSolarFactors(c, chart.Mercury, chart.Moon)
	assert.True(t, factors.Significant)
	assert.Equal(t, 1, factors.CombustionCount)
	assert.Contains(t, factors.Summary, "Mercury is Combustion")

	clean := BuildSolarFactors(c, chart.Sun, chart.Moon)
	assert.False(t, clean.Significant)
	assert.Equal(t, "both significators free of the Sun", clean.Summary)
}
