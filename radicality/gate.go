// Package radicality decomposes the radicality checks into small
// independent predicates, one per disqualifier, composed by Evaluate — the
// same decomposition the original engine's radicality module used rather
// than one monolithic check.
package radicality

import (
	"fmt"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
)

// Overrides lets a caller bypass individual radicality checks, each
// recorded in Result.Reasoning as "<check> bypassed by override".
type Overrides struct {
	IgnoreRadicality bool
	IgnoreSaturn7th  bool
	IgnoreVoidMoon   bool // consulted by the judgment composer, not this gate
}

// Result is the Radicality Gate's verdict: whether the chart may be judged,
// and the reasoning entries explaining why not when it may not.
type Result struct {
	Radical   bool
	Reasoning []string
}

// Evaluate runs every radicality disqualifier in turn and stops recording
// once ignoreRadicality suppresses the first stage; it never short-circuits
// before at least ascendant-degree and Saturn-in-7th are both considered,
// since both are independently overridable.
func Evaluate(cfg horaryconfig.RadicalityConfig, c *chart.HoraryChart, overrides Overrides) Result {
	result := Result{Radical: true}

	if overrides.IgnoreRadicality {
		result.Reasoning = append(result.Reasoning, "radicality checks bypassed by override")
		return result
	}

	if tooEarly(cfg, c) {
		result.Radical = false
		result.Reasoning = append(result.Reasoning, fmt.Sprintf("ascendant at %.1f degrees is too early to judge", chart.DegreeWithinSign(c.Ascendant)))
	}
	if tooLate(cfg, c) {
		result.Radical = false
		result.Reasoning = append(result.Reasoning, fmt.Sprintf("ascendant at %.1f degrees is too late to judge", chart.DegreeWithinSign(c.Ascendant)))
	}

	if saturnIn7th(c) {
		if overrides.IgnoreSaturn7th {
			result.Reasoning = append(result.Reasoning, "Saturn in the 7th house bypassed by override")
		} else {
			result.Radical = false
			result.Reasoning = append(result.Reasoning, "Saturn in the 7th house casts doubt on the question")
		}
	}

	if cfg.CheckViaCombusta && viaCombusta(cfg, c) {
		result.Radical = false
		result.Reasoning = append(result.Reasoning, "Moon in the Via Combusta invalidates the chart")
	}

	return result
}

func tooEarly(cfg horaryconfig.RadicalityConfig, c *chart.HoraryChart) bool {
	return chart.DegreeWithinSign(c.Ascendant) < cfg.AscendantTooEarlyDegrees
}

func tooLate(cfg horaryconfig.RadicalityConfig, c *chart.HoraryChart) bool {
	return chart.DegreeWithinSign(c.Ascendant) > cfg.AscendantTooLateDegrees
}

func saturnIn7th(c *chart.HoraryChart) bool {
	saturn, ok := c.Planets[chart.Saturn]
	if !ok {
		return false
	}
	return chart.HouseOfLongitude(saturn.Longitude, c.HouseCusps) == 7
}

// viaCombusta reports whether the Moon sits in the Via Combusta, the
// traditionally ill-omened stretch from late Libra through mid-Scorpio.
// Like the other disqualifiers it fails the chart, though an operator can
// switch the check off in configuration.
func viaCombusta(cfg horaryconfig.RadicalityConfig, c *chart.HoraryChart) bool {
	moon, ok := c.Planets[chart.Moon]
	if !ok {
		return false
	}
	lon := chart.NormalizeDegrees(moon.Longitude)
	return lon >= cfg.ViaCombustaStart && lon <= cfg.ViaCombustaEnd
}

// ViaCombusta exposes the same check for use outside the gate.
func ViaCombusta(cfg horaryconfig.RadicalityConfig, c *chart.HoraryChart) bool {
	return viaCombusta(cfg, c)
}
