// Package reception is the single source of truth for reception between two
// planets. No other package may reinvent domicile/exaltation/triplicity
// dignity checks for reception purposes; everyone imports this.
package reception

import (
	"fmt"
	"strings"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/dignity"
)

// Kind classifies the overall reception between a pair of planets.
type Kind string

const (
	None             Kind = "none"
	MutualRulership  Kind = "mutual_rulership"
	MutualExaltation Kind = "mutual_exaltation"
	Mixed            Kind = "mixed_reception"
	Unilateral       Kind = "unilateral"
)

// Result is the comprehensive reception report for an ordered pair of
// planets, returned by Calculate. It carries everything judgment, perfection
// and denial need so none of them has to recompute dignity sets.
type Result struct {
	Kind Kind

	Planet1, Planet2 chart.Planet
	// Planet1Receives lists the dignities by which Planet1 receives Planet2
	// (Planet2 stands in a sign where Planet1 has that domicile, exaltation
	// or triplicity — see Calculate).
	Planet1Receives []string
	Planet2Receives []string

	// For Unilateral only: which planet does the receiving.
	ReceivingPlanet chart.Planet
	ReceivedPlanet  chart.Planet

	DayChart bool
	Strength int
}

// Calculate computes the full reception relationship between planet1 and
// planet2 in the given chart. Direction matters only for Unilateral/Mixed
// results; the Kind itself is symmetric in planet1/planet2.
func Calculate(c *chart.HoraryChart, planet1, planet2 chart.Planet) Result {
	pos1 := c.Planets[planet1]
	pos2 := c.Planets[planet2]
	isDay := c.IsDayChart()

	receives1to2 := dignitiesOf(planet1, pos2.Sign, isDay)
	receives2to1 := dignitiesOf(planet2, pos1.Sign, isDay)

	kind, receiving, received, which := classify(planet1, planet2, receives1to2, receives2to1)

	result := Result{
		Kind:            kind,
		Planet1:         planet1,
		Planet2:         planet2,
		Planet1Receives: receives1to2,
		Planet2Receives: receives2to1,
		ReceivingPlanet: receiving,
		ReceivedPlanet:  received,
		DayChart:        isDay,
	}
	result.Strength = strength(kind, which)
	return result
}

// dignitiesOf returns every dignity by which receivingPlanet receives a
// planet standing in receivedSign, strongest first.
func dignitiesOf(receivingPlanet chart.Planet, receivedSign chart.Sign, isDay bool) []string {
	var out []string
	if dignity.HasDomicile(receivingPlanet, receivedSign) {
		out = append(out, "domicile")
	}
	if dignity.HasExaltation(receivingPlanet, receivedSign) {
		out = append(out, "exaltation")
	}
	if dignity.HasTriplicity(receivingPlanet, receivedSign, isDay) {
		out = append(out, "triplicity")
	}
	return out
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func classify(planet1, planet2 chart.Planet, receives1to2, receives2to1 []string) (kind Kind, receiving, received chart.Planet, unilateralDignities []string) {
	if len(receives1to2) == 0 && len(receives2to1) == 0 {
		return None, "", "", nil
	}

	if contains(receives1to2, "domicile") && contains(receives2to1, "domicile") {
		return MutualRulership, "", "", nil
	}
	if contains(receives1to2, "exaltation") && contains(receives2to1, "exaltation") {
		return MutualExaltation, "", "", nil
	}
	if len(receives1to2) > 0 && len(receives2to1) > 0 {
		return Mixed, "", "", nil
	}
	if len(receives1to2) > 0 {
		return Unilateral, planet1, planet2, receives1to2
	}
	return Unilateral, planet2, planet1, receives2to1
}

func strength(kind Kind, unilateralDignities []string) int {
	switch kind {
	case None:
		return 0
	case MutualRulership:
		return 10
	case MutualExaltation:
		return 8
	case Mixed:
		return 6
	case Unilateral:
		switch {
		case contains(unilateralDignities, "domicile"):
			return 5
		case contains(unilateralDignities, "exaltation"):
			return 4
		case contains(unilateralDignities, "triplicity"):
			return 3
		default:
			return 2
		}
	default:
		return 1
	}
}

// Display renders a reception result as a short reasoning-chain string.
func Display(r Result) string {
	switch r.Kind {
	case None:
		return "no reception"
	case MutualRulership:
		return fmt.Sprintf("%s/%s mutual domicile reception", r.Planet1, r.Planet2)
	case MutualExaltation:
		return fmt.Sprintf("%s/%s mutual exaltation reception", r.Planet1, r.Planet2)
	case Mixed:
		return fmt.Sprintf("%s/%s mixed reception (%s / %s)", r.Planet1, r.Planet2,
			strings.Join(r.Planet1Receives, ", "), strings.Join(r.Planet2Receives, ", "))
	case Unilateral:
		dignities := r.Planet1Receives
		if r.ReceivingPlanet == r.Planet2 {
			dignities = r.Planet2Receives
		}
		return fmt.Sprintf("%s receives %s by %s", r.ReceivingPlanet, r.ReceivedPlanet, strings.Join(dignities, ", "))
	default:
		return fmt.Sprintf("%s reception", r.Kind)
	}
}

// MutualOrBetter reports whether the reception is strong enough on its own
// to perfect a question (mutual rulership or mutual exaltation), per the
// Perfection Detector's reception-only branch.
func (r Result) MutualOrBetter() bool {
	return r.Kind == MutualRulership || r.Kind == MutualExaltation
}
