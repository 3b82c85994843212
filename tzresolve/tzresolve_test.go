package tzresolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezoneAcceptsIANAIdentifier(t *testing.T) {
	loc, err := ParseTimezone("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestParseTimezoneDefaultsEmptyToUTC(t *testing.T) {
	loc, err := ParseTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestParseTimezoneAcceptsUTCOffset(t *testing.T) {
	loc, err := ParseTimezone("+05:30")
	require.NoError(t, err)
	_, offset := time.Now().In(loc).Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestParseTimezoneAcceptsNegativeOffsetWithoutMinutes(t *testing.T) {
	loc, err := ParseTimezone("-08")
	require.NoError(t, err)
	_, offset := time.Now().In(loc).Zone()
	assert.Equal(t, -8*3600, offset)
}

func TestParseTimezoneRejectsOutOfRangeOffset(t *testing.T) {
	_, err := ParseTimezone("+20:00")
	assert.Error(t, err)
}

func TestParseTimezoneRejectsGarbage(t *testing.T) {
	_, err := ParseTimezone("Definitely/Not/A/Zone")
	assert.Error(t, err)
}

func TestResolveZoneFallsBackToRegionBox(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "Asia/Kolkata", r.ResolveZone(19.0760, 72.8777))
	assert.Equal(t, "America/New_York", r.ResolveZone(38.9072, -77.0369))
}

func TestResolveZoneFallsBackToUTCOutsideAnyBox(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "UTC", r.ResolveZone(0, 0))
}

func TestIsPlausibleForLongitudeAcceptsMatchingOffset(t *testing.T) {
	loc, err := ParseTimezone("+05:30")
	require.NoError(t, err)
	assert.True(t, IsPlausibleForLongitude(loc, 77.0, time.Now()))
}

func TestIsPlausibleForLongitudeRejectsMismatchedOffset(t *testing.T) {
	loc, err := ParseTimezone("+05:30")
	require.NoError(t, err)
	assert.False(t, IsPlausibleForLongitude(loc, -120.0, time.Now()))
}
