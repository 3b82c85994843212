// Package tzresolve supplies the chart builder's Timezone collaborator:
// parsing IANA identifiers and UTC-offset strings, plus resolving a
// latitude/longitude pair to an IANA zone through documented rectangular
// fallback boxes when no better lookup is wired in.
package tzresolve

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Resolver is the chart builder's Timezone collaborator: (lat, lon) -> IANA
// zone identifier, with region-box fallbacks when the primary lookup fails
// or returns an implausible result for the coordinates.
type Resolver struct {
	boxes []regionBox
}

// NewResolver returns a Resolver pre-seeded with the documented region
// boxes used as a last-resort fallback.
func NewResolver() *Resolver {
	return &Resolver{boxes: defaultRegionBoxes}
}

// regionBox is a coarse rectangular region mapped to a representative IANA
// zone — good enough to keep a chart buildable when no precise timezone
// database is wired in, not a substitute for one.
type regionBox struct {
	name                           string
	minLat, maxLat, minLon, maxLon float64
	zone                           string
}

var defaultRegionBoxes = []regionBox{
	{"continental US - eastern", 24, 50, -85, -66, "America/New_York"},
	{"continental US - central", 24, 50, -105, -85, "America/Chicago"},
	{"continental US - mountain", 24, 50, -115, -105, "America/Denver"},
	{"continental US - pacific", 24, 50, -125, -115, "America/Los_Angeles"},
	{"western europe", 36, 60, -10, 15, "Europe/Paris"},
	{"eastern europe", 36, 60, 15, 40, "Europe/Bucharest"},
	{"united kingdom and ireland", 49, 61, -11, 2, "Europe/London"},
	{"indian subcontinent", 6, 36, 68, 92, "Asia/Kolkata"},
	{"china", 18, 54, 73, 135, "Asia/Shanghai"},
	{"japan", 24, 46, 128, 146, "Asia/Tokyo"},
	{"australia - eastern", -44, -10, 141, 154, "Australia/Sydney"},
	{"australia - western", -36, -13, 112, 129, "Australia/Perth"},
	{"brazil", -34, 5, -74, -34, "America/Sao_Paulo"},
	{"middle east", 12, 42, 34, 63, "Asia/Dubai"},
	{"southern africa", -35, -22, 16, 33, "Africa/Johannesburg"},
}

// ResolveZone returns an IANA zone name for the given coordinates, falling
// back through the region boxes and finally UTC if no box matches.
func (r *Resolver) ResolveZone(latitude, longitude float64) string {
	for _, box := range r.boxes {
		if latitude >= box.minLat && latitude <= box.maxLat &&
			longitude >= box.minLon && longitude <= box.maxLon {
			return box.zone
		}
	}
	return "UTC"
}

// ParseTimezone parses tz (an IANA identifier, "UTC"/"GMT", or a UTC-offset
// string like "+05:30"/"-08:00"/"UTC+5:30") into a *time.Location.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" || tz == "GMT" {
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	if loc, err := parseUTCOffset(tz); err == nil {
		return loc, nil
	}

	return nil, fmt.Errorf("invalid timezone %q: must be a valid IANA timezone identifier (e.g. 'Asia/Kolkata') or UTC offset (e.g. '+05:30', '-08:00')", tz)
}

var utcOffsetPattern = regexp.MustCompile(`^(UTC|GMT)?([+-])(\d{1,2}):?(\d{2})?$`)

func parseUTCOffset(offset string) (*time.Location, error) {
	matches := utcOffsetPattern.FindStringSubmatch(offset)
	if matches == nil {
		return nil, fmt.Errorf("invalid UTC offset format")
	}

	sign, hoursStr, minutesStr := matches[2], matches[3], matches[4]

	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours < 0 || hours > 14 {
		return nil, fmt.Errorf("invalid hours in UTC offset: must be between 0 and 14")
	}

	minutes := 0
	if minutesStr != "" {
		minutes, err = strconv.Atoi(minutesStr)
		if err != nil || minutes < 0 || minutes > 59 {
			return nil, fmt.Errorf("invalid minutes in UTC offset: must be between 0 and 59")
		}
	}

	totalSeconds := hours*3600 + minutes*60
	if sign == "-" {
		totalSeconds = -totalSeconds
	}
	if totalSeconds < -14*3600 || totalSeconds > 14*3600 {
		return nil, fmt.Errorf("UTC offset out of range: must be between -14:00 and +14:00")
	}

	name := fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
	return time.FixedZone(name, totalSeconds), nil
}

// IsPlausibleForLongitude reports whether loc's current UTC offset is
// within a reasonable margin of what longitude alone would predict (15
// degrees per hour), used to detect an implausible primary-lookup result
// before falling back to the region boxes.
func IsPlausibleForLongitude(loc *time.Location, longitude float64, at time.Time) bool {
	expectedSeconds := longitude / 15.0 * 3600
	_, actualSeconds := at.In(loc).Zone()

	const varianceSeconds = 3 * 3600
	diff := float64(actualSeconds) - expectedSeconds
	return diff >= -varianceSeconds && diff <= varianceSeconds
}
