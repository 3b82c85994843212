// Package ephemeris supplies the chart builder's Ephemeris collaborator: a
// Provider abstraction with a primary/fallback Manager and caching for
// planetary-position lookups.
package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/observability"
)

// JulianDay is a Julian day number.
type JulianDay float64

// RawPosition is a single body's position as a Provider reports it, before
// the chart builder layers sign, house, and dignity onto it.
type RawPosition struct {
	Longitude      float64
	Latitude       float64
	DistanceAU     float64
	SpeedDegPerDay float64
}

// Provider is the ephemeris data source contract. A horary chart only ever
// needs the seven classical bodies; outer planets are not requested.
type Provider interface {
	GetPositions(ctx context.Context, jd JulianDay) (map[chart.Planet]RawPosition, error)
	IsAvailable(ctx context.Context) bool
	GetDataRange() (startJD, endJD JulianDay)
	GetProviderName() string
	Close() error
}

// Manager fronts a primary and fallback Provider with a shared Cache.
type Manager struct {
	primary  Provider
	fallback Provider
	cache    Cache
	observer observability.ObserverInterface
}

// NewManager builds a Manager. fallback and cache may both be nil.
func NewManager(primary, fallback Provider, cache Cache) *Manager {
	return &Manager{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		observer: observability.Observer(),
	}
}

// GetPositions returns every classical body's position for jd, checking the
// cache first and falling back to the secondary provider if the primary
// fails.
func (m *Manager) GetPositions(ctx context.Context, jd JulianDay) (map[chart.Planet]RawPosition, error) {
	ctx, span := m.observer.CreateSpan(ctx, "ephemeris.GetPositions")
	defer span.End()
	span.SetAttributes(attribute.Float64("julian_day", float64(jd)))

	key := fmt.Sprintf("positions_%f", float64(jd))
	if m.cache != nil {
		if cached, found := m.cache.Get(ctx, key); found {
			if positions, ok := cached.(map[chart.Planet]RawPosition); ok {
				span.SetAttributes(attribute.Bool("cache_hit", true))
				return positions, nil
			}
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	positions, err := m.tryProvider(ctx, m.primary, "primary", jd)
	if err != nil {
		span.AddEvent("primary provider failed, trying fallback")
		positions, err = m.tryProvider(ctx, m.fallback, "fallback", jd)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get positions from all providers: %w", err)
	}

	if m.cache != nil {
		m.cache.Set(ctx, key, positions, time.Hour)
	}
	return positions, nil
}

func (m *Manager) tryProvider(ctx context.Context, provider Provider, kind string, jd JulianDay) (map[chart.Planet]RawPosition, error) {
	if provider == nil {
		return nil, fmt.Errorf("%s provider is nil", kind)
	}

	ctx, span := m.observer.CreateSpan(ctx, fmt.Sprintf("ephemeris.try_%s_provider", kind))
	defer span.End()
	span.SetAttributes(attribute.String("provider_name", provider.GetProviderName()))

	start := time.Now()
	positions, err := provider.GetPositions(ctx, jd)
	span.SetAttributes(attribute.Int64("response_time_ms", time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return positions, nil
}

// Close closes both providers and the cache.
func (m *Manager) Close() error {
	var errs []error
	for _, p := range []Provider{m.primary, m.fallback} {
		if p != nil {
			if err := p.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing ephemeris manager: %v", errs)
	}
	return nil
}

// TimeToJulianDay converts a UTC time to a Julian day number.
func TimeToJulianDay(t time.Time) JulianDay {
	utc := t.UTC()
	year, month, day := utc.Year(), int(utc.Month()), utc.Day()

	if month <= 2 {
		year--
		month += 12
	}

	a := year / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + float64(b) - 1524.5

	hour, minute, second := float64(utc.Hour()), float64(utc.Minute()), float64(utc.Second())
	jd += hour/24.0 + minute/1440.0 + second/86400.0

	return JulianDay(jd)
}

// JulianDayToTime converts a Julian day number back to a UTC time.
func JulianDayToTime(jd JulianDay) time.Time {
	z := math.Floor(float64(jd) + 0.5)
	f := float64(jd) + 0.5 - z

	var a float64
	if z < 2299161 {
		a = z
	} else {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := int(b - d - math.Floor(30.6001*e) + f)
	var month int
	if e < 14 {
		month = int(e - 1)
	} else {
		month = int(e - 13)
	}
	var year int
	if month > 2 {
		year = int(c - 4716)
	} else {
		year = int(c - 4715)
	}

	hours := f * 24
	hour := int(hours)
	minutes := (hours - float64(hour)) * 60
	minute := int(minutes)
	seconds := (minutes - float64(minute)) * 60
	second := int(seconds)
	nanosecond := int((seconds - float64(second)) * 1e9)

	return time.Date(year, time.Month(month), day, hour, minute, second, nanosecond, time.UTC)
}
