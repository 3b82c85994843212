// Package geocode supplies the chart builder's Geocoder collaborator: a
// string-to-coordinates contract plus a built-in gazetteer implementation.
package geocode

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Location is a resolved geographic point. It carries no timezone;
// tzresolve owns that lookup.
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// LocationError is the engine's LocationError error kind: a geocoder query
// that could not be resolved to coordinates.
type LocationError struct {
	Query  string
	Reason string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("location error for %q: %s", e.Query, e.Reason)
}

// Geocoder is the chart builder's location-resolution collaborator.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
}

// entry is one gazetteer record. Aliases lets a single city answer to
// several common spellings without duplicating the coordinates.
type entry struct {
	canonical string
	latitude  float64
	longitude float64
	aliases   []string
}

// Gazetteer is a built-in Geocoder backed by a fixed table of well-known
// cities, sufficient for the horary chart's actual need — a single
// latitude/longitude pair per question, not a general-purpose atlas.
type Gazetteer struct {
	byKey map[string]entry
}

// NewGazetteer builds a Gazetteer pre-seeded with major world cities,
// indexed by every lowercase, comma-trimmed spelling in the table.
func NewGazetteer() *Gazetteer {
	g := &Gazetteer{byKey: make(map[string]entry)}
	for _, e := range builtinCities {
		g.index(e)
	}
	return g
}

func (g *Gazetteer) index(e entry) {
	g.byKey[normalize(e.canonical)] = e
	for _, alias := range e.aliases {
		g.byKey[normalize(alias)] = e
	}
}

// Geocode resolves query against the gazetteer. It first tries an exact
// normalized match, then the portion before the first comma (so "London, UK"
// falls back to "London"), returning a LocationError if neither resolves.
func (g *Gazetteer) Geocode(_ context.Context, query string) (Location, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Location{}, &LocationError{Query: query, Reason: "empty location"}
	}

	if e, ok := g.byKey[normalize(trimmed)]; ok {
		return toLocation(e), nil
	}

	if before, _, found := strings.Cut(trimmed, ","); found {
		if e, ok := g.byKey[normalize(before)]; ok {
			return toLocation(e), nil
		}
	}

	return Location{}, &LocationError{
		Query:  query,
		Reason: "no match in the built-in gazetteer",
	}
}

// Register adds or overrides a gazetteer entry. Useful for callers that
// want to extend the built-in table without replacing it.
func (g *Gazetteer) Register(name string, latitude, longitude float64, aliases ...string) {
	g.index(entry{canonical: name, latitude: latitude, longitude: longitude, aliases: aliases})
}

// Known returns every canonical place in the gazetteer, sorted by name.
func (g *Gazetteer) Known() []Location {
	seen := make(map[string]bool)
	var out []Location
	for _, e := range g.byKey {
		if seen[e.canonical] {
			continue
		}
		seen[e.canonical] = true
		out = append(out, toLocation(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func toLocation(e entry) Location {
	return Location{Latitude: e.latitude, Longitude: e.longitude, Name: e.canonical}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var builtinCities = []entry{
	{canonical: "Washington, DC", latitude: 38.9072, longitude: -77.0369, aliases: []string{"Washington DC", "Washington D.C.", "Washington"}},
	{canonical: "New York, NY", latitude: 40.7128, longitude: -74.0060, aliases: []string{"New York", "New York City", "NYC"}},
	{canonical: "Los Angeles, CA", latitude: 34.0522, longitude: -118.2437, aliases: []string{"Los Angeles", "LA"}},
	{canonical: "Chicago, IL", latitude: 41.8781, longitude: -87.6298, aliases: []string{"Chicago"}},
	{canonical: "London, UK", latitude: 51.5074, longitude: -0.1278, aliases: []string{"London"}},
	{canonical: "Paris, France", latitude: 48.8566, longitude: 2.3522, aliases: []string{"Paris"}},
	{canonical: "Berlin, Germany", latitude: 52.5200, longitude: 13.4050, aliases: []string{"Berlin"}},
	{canonical: "Rome, Italy", latitude: 41.9028, longitude: 12.4964, aliases: []string{"Rome"}},
	{canonical: "Madrid, Spain", latitude: 40.4168, longitude: -3.7038, aliases: []string{"Madrid"}},
	{canonical: "Mumbai, India", latitude: 19.0760, longitude: 72.8777, aliases: []string{"Mumbai", "Bombay"}},
	{canonical: "New Delhi, India", latitude: 28.6139, longitude: 77.2090, aliases: []string{"New Delhi", "Delhi"}},
	{canonical: "Chennai, India", latitude: 13.0827, longitude: 80.2707, aliases: []string{"Chennai", "Madras"}},
	{canonical: "Kolkata, India", latitude: 22.5726, longitude: 88.3639, aliases: []string{"Kolkata", "Calcutta"}},
	{canonical: "Bengaluru, India", latitude: 12.9716, longitude: 77.5946, aliases: []string{"Bengaluru", "Bangalore"}},
	{canonical: "Tokyo, Japan", latitude: 35.6762, longitude: 139.6503, aliases: []string{"Tokyo"}},
	{canonical: "Beijing, China", latitude: 39.9042, longitude: 116.4074, aliases: []string{"Beijing"}},
	{canonical: "Shanghai, China", latitude: 31.2304, longitude: 121.4737, aliases: []string{"Shanghai"}},
	{canonical: "Sydney, Australia", latitude: -33.8688, longitude: 151.2093, aliases: []string{"Sydney"}},
	{canonical: "Toronto, Canada", latitude: 43.6532, longitude: -79.3832, aliases: []string{"Toronto"}},
	{canonical: "Mexico City, Mexico", latitude: 19.4326, longitude: -99.1332, aliases: []string{"Mexico City"}},
	{canonical: "Sao Paulo, Brazil", latitude: -23.5505, longitude: -46.6333, aliases: []string{"Sao Paulo", "São Paulo"}},
	{canonical: "Cairo, Egypt", latitude: 30.0444, longitude: 31.2357, aliases: []string{"Cairo"}},
	{canonical: "Moscow, Russia", latitude: 55.7558, longitude: 37.6173, aliases: []string{"Moscow"}},
	{canonical: "Dubai, UAE", latitude: 25.2048, longitude: 55.2708, aliases: []string{"Dubai"}},
	{canonical: "Johannesburg, South Africa", latitude: -26.2041, longitude: 28.0473, aliases: []string{"Johannesburg"}},
}
