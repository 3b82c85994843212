package moonstory

import (
	"math"

	"github.com/sabaa/horary/chart"
)

// lunarMansions lists the 28 mansions in zodiacal order from 0 Aries, each
// spanning 360/28 degrees.
var lunarMansions = [28]string{
	"Al Sharatain", "Al Butain", "Al Thurayya", "Al Dabaran",
	"Al Hak'ah", "Al Han'ah", "Al Dhira", "Al Nathrah",
	"Al Tarf", "Al Jabhah", "Al Zubrah", "Al Sarfah",
	"Al Awwa", "Al Simak", "Al Ghafr", "Al Jubana",
	"Iklil", "Al Qalb", "Al Shaula", "Al Na'am",
	"Al Baldah", "Sa'd al Dhabih", "Sa'd Bula", "Sa'd al Su'ud",
	"Sa'd al Akhbiya", "Al Fargh al Mukdim", "Al Fargh al Thani",
	"Batn al Hut",
}

// Mansion returns the 1-based lunar mansion number and its name for a Moon
// at the given ecliptic longitude.
func Mansion(moonLongitude float64) (int, string) {
	lon := chart.NormalizeDegrees(moonLongitude)
	index := int(lon / (360.0 / 28.0))
	if index > 27 {
		index = 27
	}
	return index + 1, lunarMansions[index]
}

// PhaseName names the Moon's phase from how far it has run ahead of the
// Sun: 0 is New, 180 is Full, the bands between are the crescents,
// quarters, and gibbous phases.
func PhaseName(sunLongitude, moonLongitude float64) string {
	elongation := chart.NormalizeDegrees(moonLongitude - sunLongitude)

	switch {
	case elongation < 30 || elongation >= 330:
		return "New Moon"
	case elongation < 60:
		return "Waxing Crescent"
	case elongation < 120:
		return "First Quarter"
	case elongation < 150:
		return "Waxing Gibbous"
	case elongation < 210:
		return "Full Moon"
	case elongation < 240:
		return "Waning Gibbous"
	case elongation < 300:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// SpeedCategory buckets the Moon's daily motion into the traditional
// fast/slow bands. The mean lunar motion is a little over 13 degrees a day.
func SpeedCategory(speedDegPerDay float64) string {
	speed := math.Abs(speedDegPerDay)
	switch {
	case speed < 11.0:
		return "Very Slow"
	case speed < 12.0:
		return "Slow"
	case speed < 14.0:
		return "Average"
	case speed < 15.0:
		return "Fast"
	default:
		return "Very Fast"
	}
}
