package chart

import "time"

// PlanetPosition is a body's full state at the chart's moment: where it is,
// how fast and in which direction it moves, and the dignity score the
// Dignity Scorer has already folded for it.
type PlanetPosition struct {
	Planet       Planet
	Longitude    float64
	Latitude     float64
	House        int
	Sign         Sign
	DignityScore int
	Retrograde   bool
	SpeedDegPerDay float64
}

// Location is a resolved place: coordinates plus the human-readable name the
// Geocoder returned (or that the caller supplied directly).
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// HoraryChart is the immutable bundle every component after the Chart
// Builder reads from and none of them mutate. It is built fresh for each
// question and discarded with it.
type HoraryChart struct {
	DateTimeLocal time.Time
	DateTimeUTC   time.Time
	TimezoneName  string
	Location      Location
	JulianDay     float64

	Ascendant float64
	Midheaven float64
	// HouseCusps holds exactly 12 cusp longitudes, index 0 is the 1st house.
	HouseCusps  [12]float64
	HouseRulers map[int]Planet

	Planets map[Planet]PlanetPosition
	Aspects []AspectInfo

	SolarAnalyses map[Planet]SolarAnalysis

	MoonLastAspect *LunarAspect
	MoonNextAspect *LunarAspect
}

// HouseOfLongitude returns which of the chart's 12 houses contains the given
// ecliptic longitude, walking the cusps pairwise and handling the 0° wrap
// the way the reception and house-position calculations both depend on.
func HouseOfLongitude(longitude float64, cusps [12]float64) int {
	lon := NormalizeDegrees(longitude)

	for i := 0; i < 12; i++ {
		current := NormalizeDegrees(cusps[i])
		next := NormalizeDegrees(cusps[(i+1)%12])

		if current > next {
			if lon >= current || lon < next {
				return i + 1
			}
		} else {
			if lon >= current && lon < next {
				return i + 1
			}
		}
	}

	return 1
}

// IsDayChart reports whether the Sun is above the horizon (houses 7-12),
// which in traditional doctrine marks a day chart for sect purposes.
func (c *HoraryChart) IsDayChart() bool {
	sun, ok := c.Planets[Sun]
	if !ok {
		return true
	}
	house := HouseOfLongitude(sun.Longitude, c.HouseCusps)
	return house >= 7 && house <= 12
}
