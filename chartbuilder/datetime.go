package chartbuilder

import (
	"strings"
	"time"
)

// dateTimeLayouts are tried in order; day-first formats win ambiguous
// strings like "05/03/2024", so that reads as 5 March.
var dateTimeLayouts = []string{
	"02/01/2006 15:04",
	"2006-01-02 15:04",
	"01/02/2006 15:04",
	"02-01-2006 15:04",
	"2006/01/02 15:04",
}

// ParseDateTime parses a caller-supplied date and time into a wall-clock
// moment in loc. A wall clock that never existed (spring-forward gap)
// advances by one hour; one that occurred twice (fall-back overlap)
// resolves to the standard-time occurrence.
func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	combined := strings.TrimSpace(dateStr) + " " + strings.TrimSpace(timeStr)
	for _, layout := range dateTimeLayouts {
		parsed, err := time.Parse(layout, combined)
		if err == nil {
			return resolveWallClock(parsed.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), loc), nil
		}
	}
	return time.Time{}, &InputError{
		Field:  "date",
		Reason: "unrecognized date/time format " + strings.TrimSpace(combined),
	}
}

func resolveWallClock(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	// Spring-forward gap: time.Date normalized the wall clock to something
	// else, so the requested time never existed. Advance one hour.
	if t.Hour() != hour || t.Minute() != minute {
		return time.Date(year, month, day, hour+1, minute, 0, 0, loc)
	}

	// Fall-back overlap: the same wall clock names two instants an hour
	// apart. Standard time carries the smaller UTC offset; prefer it.
	for _, delta := range []time.Duration{-time.Hour, time.Hour} {
		alt := t.Add(delta)
		if !sameWallClock(alt, year, month, day, hour, minute) {
			continue
		}
		_, chosenOffset := t.Zone()
		_, altOffset := alt.Zone()
		if altOffset < chosenOffset {
			return alt
		}
	}

	return t
}

func sameWallClock(t time.Time, year int, month time.Month, day, hour, minute int) bool {
	return t.Year() == year && t.Month() == month && t.Day() == day &&
		t.Hour() == hour && t.Minute() == minute
}
