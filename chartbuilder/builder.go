// Package chartbuilder orchestrates the geocoder, timezone, and ephemeris
// collaborators into one immutable chart.HoraryChart per question, and
// serializes charts and judgments into the structured output callers
// receive.
package chartbuilder

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sabaa/horary/aspect"
	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/dignity"
	"github.com/sabaa/horary/ephemeris"
	"github.com/sabaa/horary/geocode"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/log"
	"github.com/sabaa/horary/moonstory"
	"github.com/sabaa/horary/observability"
	"github.com/sabaa/horary/solar"
	"github.com/sabaa/horary/tzresolve"
)

var logger = log.WithComponent("chartbuilder")

// Builder assembles charts from the three collaborators. It holds no
// per-request state; one Builder serves concurrent requests.
type Builder struct {
	cfg       horaryconfig.Config
	geocoder  geocode.Geocoder
	timezones *tzresolve.Resolver
	ephemeris *ephemeris.Manager

	observer observability.ObserverInterface
	recorder *observability.ErrorRecorder

	now func() time.Time
}

// New builds a Builder over the given collaborators.
func New(cfg horaryconfig.Config, geocoder geocode.Geocoder, timezones *tzresolve.Resolver, eph *ephemeris.Manager) *Builder {
	return &Builder{
		cfg:       cfg,
		geocoder:  geocoder,
		timezones: timezones,
		ephemeris: eph,
		observer:  observability.Observer(),
		recorder:  observability.NewErrorRecorder(),
		now:       time.Now,
	}
}

// Build resolves the location and moment, queries the ephemeris, and folds
// houses, dignities, aspects, solar conditions, and the Moon's story into
// one finished chart. All I/O happens here; everything downstream of the
// returned chart is pure computation.
func (b *Builder) Build(ctx context.Context, settings Settings) (*chart.HoraryChart, error) {
	ctx, span := b.observer.CreateSpan(ctx, "chartbuilder.Build")
	defer span.End()

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	location, err := b.resolveLocation(ctx, settings)
	if err != nil {
		return nil, err
	}

	tzName, tzLoc, err := b.resolveTimezone(settings, location)
	if err != nil {
		return nil, err
	}

	var dtLocal time.Time
	if settings.UseCurrentTime {
		dtLocal = b.now().In(tzLoc)
	} else {
		dtLocal, err = ParseDateTime(settings.Date, settings.Time, tzLoc)
		if err != nil {
			return nil, err
		}
	}
	dtUTC := dtLocal.UTC()
	jd := ephemeris.TimeToJulianDay(dtUTC)

	raw, err := b.ephemeris.GetPositions(ctx, jd)
	if err != nil {
		b.recorder.RecordError(ctx, err, observability.ErrorContext{
			Severity:  observability.SeverityHigh,
			Category:  observability.CategoryEphemeris,
			Operation: "GetPositions",
		})
		return nil, &CalculationError{Stage: "ephemeris positions", Err: err}
	}

	ascendant, midheaven, cusps := ephemeris.ComputeHouses(jd, location.Latitude, location.Longitude)

	houseRulers := make(map[int]chart.Planet, 12)
	for i, cusp := range cusps {
		houseRulers[i+1] = chart.SignOfLongitude(cusp).Ruler
	}

	positions := make(map[chart.Planet]chart.PlanetPosition, len(chart.Bodies))
	for _, body := range chart.Bodies {
		rp, ok := raw[body]
		if !ok {
			// One missing body does not sink the chart: substitute a zero
			// sentinel and keep judging with the rest.
			logger.Warn("ephemeris returned no position for body; using sentinel",
				"body", string(body), "julian_day", float64(jd))
			b.recorder.RecordEvent(ctx, "ephemeris_body_missing", map[string]interface{}{
				"body": string(body),
			})
			rp = ephemeris.RawPosition{}
		}
		positions[body] = chart.PlanetPosition{
			Planet:         body,
			Longitude:      rp.Longitude,
			Latitude:       rp.Latitude,
			House:          chart.HouseOfLongitude(rp.Longitude, cusps),
			Sign:           chart.SignOfLongitude(rp.Longitude),
			Retrograde:     rp.SpeedDegPerDay < 0,
			SpeedDegPerDay: rp.SpeedDegPerDay,
		}
	}

	sunLongitude := positions[chart.Sun].Longitude
	sunAltitude := ephemeris.SunAltitude(jd, location.Latitude, location.Longitude, sunLongitude)

	solarAnalyses := make(map[chart.Planet]chart.SolarAnalysis, len(chart.Bodies))
	for _, body := range chart.Bodies {
		solarAnalyses[body] = solar.Analyze(b.cfg.Orbs, body, positions[body].Longitude, sunLongitude, sunAltitude)
	}

	sunHouse := chart.HouseOfLongitude(sunLongitude, cusps)
	isDayChart := sunHouse >= 7 && sunHouse <= 12

	for _, body := range chart.Bodies {
		pos := positions[body]
		pos.DignityScore = dignity.Score(b.cfg.Dignity, pos, solarAnalyses[body], isDayChart,
			angularCuspDistance(pos.Longitude, cusps))
		positions[body] = pos
	}

	aspects := aspect.BuildAll(positions)
	moonLast, moonNext := moonstory.Build(positions[chart.Moon], positions)

	logger.Info("chart built",
		"location", location.Name,
		"timezone", tzName,
		"julian_day", float64(jd),
		"aspects", len(aspects))

	return &chart.HoraryChart{
		DateTimeLocal:  dtLocal,
		DateTimeUTC:    dtUTC,
		TimezoneName:   tzName,
		Location:       location,
		JulianDay:      float64(jd),
		Ascendant:      ascendant,
		Midheaven:      midheaven,
		HouseCusps:     cusps,
		HouseRulers:    houseRulers,
		Planets:        positions,
		Aspects:        aspects,
		SolarAnalyses:  solarAnalyses,
		MoonLastAspect: moonLast,
		MoonNextAspect: moonNext,
	}, nil
}

func (b *Builder) resolveLocation(ctx context.Context, settings Settings) (chart.Location, error) {
	if settings.HasCoordinates() {
		name := settings.Location
		if name == "" {
			name = fmt.Sprintf("%.4f, %.4f", *settings.Latitude, *settings.Longitude)
		}
		return chart.Location{Latitude: *settings.Latitude, Longitude: *settings.Longitude, Name: name}, nil
	}

	resolved, err := b.geocoder.Geocode(ctx, settings.Location)
	if err != nil {
		b.recorder.RecordError(ctx, err, observability.ErrorContext{
			Severity:  observability.SeverityMedium,
			Category:  observability.CategoryGeocoding,
			Operation: "Geocode",
		})
		return chart.Location{}, err
	}
	return chart.Location{Latitude: resolved.Latitude, Longitude: resolved.Longitude, Name: resolved.Name}, nil
}

func (b *Builder) resolveTimezone(settings Settings, location chart.Location) (string, *time.Location, error) {
	if settings.Timezone != "" {
		parsed, err := tzresolve.ParseTimezone(settings.Timezone)
		if err != nil {
			return "", nil, &InputError{Field: "timezone", Reason: err.Error()}
		}
		if !tzresolve.IsPlausibleForLongitude(parsed, location.Longitude, b.now()) {
			logger.Warn("supplied timezone implausible for longitude; using it anyway",
				"timezone", settings.Timezone, "longitude", location.Longitude)
		}
		return settings.Timezone, parsed, nil
	}

	name := b.timezones.ResolveZone(location.Latitude, location.Longitude)
	parsed, err := tzresolve.ParseTimezone(name)
	if err != nil {
		logger.Warn("resolved zone failed to load; falling back to UTC", "zone", name, "error", err)
		return "UTC", time.UTC, nil
	}
	return name, parsed, nil
}

// angularCuspDistance returns the shorter-arc distance from a longitude to
// the nearest angular cusp (houses 1, 4, 7, 10), feeding the scorer's
// 5-degree angularity rule.
func angularCuspDistance(longitude float64, cusps [12]float64) float64 {
	best := 180.0
	for _, house := range []int{1, 4, 7, 10} {
		diff := math.Abs(chart.NormalizeDegrees(longitude) - chart.NormalizeDegrees(cusps[house-1]))
		if diff > 180 {
			diff = 360 - diff
		}
		if diff < best {
			best = diff
		}
	}
	return best
}
