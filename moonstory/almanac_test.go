package moonstory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMansion(t *testing.T) {
	number, name := Mansion(0)
	assert.Equal(t, 1, number)
	assert.Equal(t, "Al Sharatain", name)

	number, name = Mansion(359.9)
	assert.Equal(t, 28, number)
	assert.Equal(t, "Batn al Hut", name)

	// 360/28 is about 12.857, so 13 degrees is already the second mansion.
	number, name = Mansion(13)
	assert.Equal(t, 2, number)
	assert.Equal(t, "Al Butain", name)
}

func TestPhaseName(t *testing.T) {
	cases := []struct {
		sun, moon float64
		want      string
	}{
		{0, 0, "New Moon"},
		{0, 45, "Waxing Crescent"},
		{0, 90, "First Quarter"},
		{0, 130, "Waxing Gibbous"},
		{0, 180, "Full Moon"},
		{0, 220, "Waning Gibbous"},
		{0, 270, "Last Quarter"},
		{0, 310, "Waning Crescent"},
		{350, 10, "New Moon"}, // wraps 0 Aries
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PhaseName(c.sun, c.moon), "sun=%v moon=%v", c.sun, c.moon)
	}
}

func TestSpeedCategory(t *testing.T) {
	assert.Equal(t, "Very Slow", SpeedCategory(10.5))
	assert.Equal(t, "Slow", SpeedCategory(11.5))
	assert.Equal(t, "Average", SpeedCategory(13.2))
	assert.Equal(t, "Fast", SpeedCategory(14.5))
	assert.Equal(t, "Very Fast", SpeedCategory(15.3))
	assert.Equal(t, "Average", SpeedCategory(-13.2), "retrograde sign is ignored")
}
