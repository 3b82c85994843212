package ephemeris

import (
	"context"
	"math"

	"github.com/sabaa/horary/chart"
)

// meanElements holds a body's low-order mean-longitude and mean-anomaly
// series. These are the standard simplified analytical elements; the
// provider's name says exactly what they are.
type meanElements struct {
	l0, lRate float64
	m0, mRate float64
	distance  float64
	speed     float64
}

var planetElements = map[chart.Planet]meanElements{
	chart.Mercury: {252.25084, 4.092338796, 174.79252, 4.092335, 0.387098, 4.092},
	chart.Venus:   {181.97973, 1.602136, 50.41575, 1.602136, 0.723327, 1.602},
	chart.Mars:    {355.433, 0.524033, 19.3879, 0.524033, 1.523679, 0.524},
	chart.Jupiter: {34.40438, 0.083091, 20.0202, 0.083091, 5.204267, 0.083},
	chart.Saturn:  {49.9477, 0.033494, 317.0207, 0.033494, 9.5820172, 0.033},
}

// AnalyticalProvider computes planetary positions from low-order mean
// orbital elements. It does not model retrograde motion or planetary
// latitude — both require perturbation terms this provider omits — so its
// DignityScore-relevant outputs (longitude, sign, approximate speed) are
// usable for a horary judgment, but callers needing true retrograde
// stations should treat a non-default ephemeris provider as primary and
// this one strictly as the Manager's fallback.
type AnalyticalProvider struct {
	dataStartJD, dataEndJD JulianDay
}

// NewAnalyticalProvider returns a Provider backed by mean orbital elements,
// valid across a multi-century window wide enough for any horary chart.
func NewAnalyticalProvider() *AnalyticalProvider {
	return &AnalyticalProvider{
		dataStartJD: JulianDay(1721425.5), // year 1 CE
		dataEndJD:   JulianDay(5373484.5), // year 9999 CE
	}
}

func (p *AnalyticalProvider) GetPositions(_ context.Context, jd JulianDay) (map[chart.Planet]RawPosition, error) {
	t := float64(jd - 2451545.0)

	positions := make(map[chart.Planet]RawPosition, len(chart.Bodies))
	positions[chart.Sun] = sunPosition(t)
	positions[chart.Moon] = moonPosition(t)
	for _, planet := range []chart.Planet{chart.Mercury, chart.Venus, chart.Mars, chart.Jupiter, chart.Saturn} {
		positions[planet] = planetPosition(t, planetElements[planet])
	}

	return positions, nil
}

func (p *AnalyticalProvider) IsAvailable(_ context.Context) bool { return true }

func (p *AnalyticalProvider) GetDataRange() (JulianDay, JulianDay) { return p.dataStartJD, p.dataEndJD }

func (p *AnalyticalProvider) GetProviderName() string { return "analytical-mean-elements" }

func (p *AnalyticalProvider) Close() error { return nil }

func sunPosition(t float64) RawPosition {
	l := math.Mod(280.460+0.9856474*t, 360.0)
	m := math.Mod(357.528+0.9856003*t, 360.0)
	mRad := m * math.Pi / 180.0

	lambda := l + 1.915*math.Sin(mRad) + 0.020*math.Sin(2*mRad)
	distance := 1.00014 - 0.01671*math.Cos(mRad) - 0.00014*math.Cos(2*mRad)

	return RawPosition{
		Longitude:      math.Mod(lambda+360, 360),
		DistanceAU:     distance,
		SpeedDegPerDay: 0.9856,
	}
}

func moonPosition(t float64) RawPosition {
	l := math.Mod(218.3164591+13.1763965268*t, 360.0)
	m := math.Mod(134.9634114+13.0649929509*t, 360.0)
	f := math.Mod(93.2720993+13.2299226639*t, 360.0)
	mRad := m * math.Pi / 180.0
	fRad := f * math.Pi / 180.0

	lambda := l + 6.289*math.Sin(mRad)
	beta := 5.128 * math.Sin(fRad)
	distanceKm := 385000.0 - 20905.0*math.Cos(mRad)

	return RawPosition{
		Longitude:      math.Mod(lambda+360, 360),
		Latitude:       beta,
		DistanceAU:     distanceKm / 149597870.7,
		SpeedDegPerDay: 13.18,
	}
}

func planetPosition(t float64, e meanElements) RawPosition {
	l := math.Mod(e.l0+e.lRate*t, 360.0)
	m := math.Mod(e.m0+e.mRate*t, 360.0)
	mRad := m * math.Pi / 180.0

	lambda := l + 2.0*math.Sin(mRad)

	return RawPosition{
		Longitude:      math.Mod(lambda+360, 360),
		DistanceAU:     e.distance,
		SpeedDegPerDay: e.speed,
	}
}
