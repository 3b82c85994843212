package chartbuilder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTimeAcceptedFormats(t *testing.T) {
	cases := []struct {
		date, time string
	}{
		{"03/02/2004", "22:00"},
		{"2004-02-03", "22:00"},
		{"03-02-2004", "22:00"},
		{"2004/02/03", "22:00"},
	}
	for _, c := range cases {
		parsed, err := ParseDateTime(c.date, c.time, time.UTC)
		require.NoError(t, err, "%s %s", c.date, c.time)
		assert.Equal(t, 2004, parsed.Year())
		assert.Equal(t, time.February, parsed.Month())
		assert.Equal(t, 3, parsed.Day())
		assert.Equal(t, 22, parsed.Hour())
	}
}

func TestParseDateTimeDayFirstWinsAmbiguousSlashes(t *testing.T) {
	parsed, err := ParseDateTime("05/03/2024", "12:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.March, parsed.Month(), "DD/MM/YYYY is tried before MM/DD/YYYY")
	assert.Equal(t, 5, parsed.Day())
}

func TestParseDateTimeMonthFirstFallback(t *testing.T) {
	// Day 25 cannot be a month, so only the MM/DD layout parses it once
	// DD/MM has failed.
	parsed, err := ParseDateTime("12/25/2024", "08:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.December, parsed.Month())
	assert.Equal(t, 25, parsed.Day())
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	_, err := ParseDateTime("sometime", "later", time.UTC)
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestSpringForwardGapAdvancesOneHour(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 02:30 never happened in New York.
	parsed, err := ParseDateTime("2024-03-10", "02:30", ny)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
}

func TestFallBackOverlapPrefersStandardTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-11-03 01:30 happened twice; the standard-time occurrence is EST.
	parsed, err := ParseDateTime("2024-11-03", "01:30", ny)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, -5*3600, offset)
	assert.Equal(t, 1, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
}
