// Package judgment composes the Radicality Gate, Question Analyzer,
// Significator Assigner, Perfection Detector, and Denial & Prohibition
// Detector into one final verdict — the Judgment Composer.
package judgment

import (
	"fmt"
	"math"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/denial"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/moonstory"
	"github.com/sabaa/horary/perfection"
	"github.com/sabaa/horary/question"
	"github.com/sabaa/horary/radicality"
	"github.com/sabaa/horary/reception"
	"github.com/sabaa/horary/significator"
)

// Verdict is the composer's final word.
type Verdict string

const (
	Yes          Verdict = "YES"
	No           Verdict = "NO"
	Inconclusive Verdict = "INCONCLUSIVE"
	NotRadical   Verdict = "NOT_RADICAL"
	CannotJudge  Verdict = "CANNOT_JUDGE"
)

// Settings carries the operator's per-reading overrides. Overrides goes to
// the Radicality Gate and the void-Moon check; Judge does not read
// IgnoreCombustion.
type Settings struct {
	Overrides        radicality.Overrides
	IgnoreCombustion bool

	// ManualHouses overrides the Question Analyzer's derived querent/quesited
	// houses: element 0 replaces the querent house, element 1 (defaulting to
	// 7 when absent) replaces the quesited house.
	ManualHouses []int
}

// Output is the full judgment, detailed enough for a reader to trust the
// verdict without re-deriving it.
type Output struct {
	Verdict    Verdict
	Confidence int
	Reasoning  []string

	// Timing is the human-readable estimate of when the matter resolves,
	// empty when no perfecting aspect gives one.
	Timing string

	PerfectionType string
	Analysis       question.Analysis
	Assignment     significator.Assignment
}

// Judge runs the full thirteen-step judgment waterfall against a built
// chart and a free-text question: radicality, the void-of-course Moon hard
// denial, significator assignment, same-ruler unity, a solar-condition
// impediment check, the Perfection Detector, the Moon's own decisive
// testimony, general and domain denials, benefic secondary support, the
// pregnancy exception, and a last-resort assembled-reasons NO. Any step can
// return early; later steps never run once an earlier one has spoken.
func Judge(cfg horaryconfig.Config, c *chart.HoraryChart, raw string, settings Settings) Output {
	var reasoning []string

	// 1. Radicality.
	rad := radicality.Evaluate(cfg.Radicality, c, settings.Overrides)
	reasoning = append(reasoning, rad.Reasoning...)
	if !rad.Radical {
		return Output{Verdict: NotRadical, Confidence: 0, Reasoning: reasoning}
	}

	// 2. Void-Moon denial, ahead of significator identification.
	voidMoonCap := 0
	voidResult := denial.CheckVoidMoon(cfg, c, settings.Overrides.IgnoreVoidMoon)
	if voidResult.Denies {
		reasoning = append(reasoning, voidResult.Reason)
		return Output{
			Verdict: No, Confidence: voidResult.Confidence, Reasoning: reasoning,
			PerfectionType: string(denial.VoidMoon),
		}
	}
	if voidResult.Kind == denial.VoidMoon {
		reasoning = append(reasoning, voidResult.Reason)
		voidMoonCap = voidResult.Confidence
	}

	// 3. Significator identification.
	analysis := question.Analyze(raw)
	if len(settings.ManualHouses) > 0 {
		reasoning = append(reasoning, "manual house assignment bypassed derived houses")
		analysis.Houses = settings.ManualHouses
		analysis.Significators.QuerentHouse = settings.ManualHouses[0]
		analysis.Significators.QuesitedHouse = 7
		if len(settings.ManualHouses) > 1 {
			analysis.Significators.QuesitedHouse = settings.ManualHouses[1]
		}
	}
	assignment := significator.Assign(c, analysis)
	if !assignment.Valid {
		reasoning = append(reasoning, assignment.Reason)
		return Output{Verdict: CannotJudge, Confidence: 0, Reasoning: reasoning, Analysis: analysis}
	}
	reasoning = append(reasoning, assignment.Description)

	// 4. Same-ruler unity branch.
	if assignment.SameRuler != nil {
		out := judgeSameRuler(cfg, c, assignment, reasoning, analysis)
		if voidMoonCap > 0 && out.Confidence > voidMoonCap {
			out.Confidence = voidMoonCap
		}
		return out
	}

	primary, secondary := significatorPair(assignment)

	// 5. Solar condition review: two or more severe combustion/debilitation
	// impediments on the significators force NO before perfection is even
	// attempted.
	if impediment := denial.CheckImpediment(c, primary, secondary); impediment.Denies {
		reasoning = append(reasoning, impediment.Reason)
		return Output{
			Verdict: No, Confidence: impediment.Confidence, Reasoning: reasoning,
			PerfectionType: string(denial.Impediment), Analysis: analysis, Assignment: assignment,
		}
	}

	// 6+7. Transaction translation and the Perfection Detector proper — a
	// transaction pair already routes primary/secondary to querent/item, so
	// the same waterfall in perfection.Detect covers both.
	perf := perfection.Detect(cfg, c, primary, secondary)
	reasoning = append(reasoning, perf.Reason)

	if perf.Perfects {
		verdict := Yes
		if !perf.Favorable {
			verdict = No
		}
		confidence := perf.Confidence

		if prohibition := denial.CheckProhibition(cfg, c, primary, secondary); prohibition.Denies {
			reasoning = append(reasoning, prohibition.Reason)
			verdict = No
			confidence = prohibition.Confidence
		}

		if voidMoonCap > 0 && confidence > voidMoonCap {
			confidence = voidMoonCap
		}

		verdict, confidence = applyConfidenceThreshold(cfg.Confidence, verdict, confidence, &reasoning)
		return Output{
			Verdict: verdict, Confidence: confidence, Reasoning: reasoning,
			Timing:         perfectionTiming(cfg.Timing, c, perf),
			PerfectionType: string(perf.Kind), Analysis: analysis, Assignment: assignment,
		}
	}

	// 8. Moon's next applying aspect to a significator, if decisive on its
	// own.
	if out, decisive := moonNextAspectTestimony(cfg, c, primary, secondary, settings.Overrides.IgnoreVoidMoon); decisive {
		out.Reasoning = append(reasoning, out.Reasoning...)
		out.Analysis, out.Assignment = analysis, assignment
		if voidMoonCap > 0 && out.Confidence > voidMoonCap {
			out.Confidence = voidMoonCap
		}
		return out
	}

	// 9. Enhanced Moon testimony — gathered for the pregnancy exception and
	// the fallback reasoning below, never decisive by itself here.
	moonTest := enhancedMoonTestimony(c)

	// 10. General and domain-specific denial checks.
	if prohibition := denial.CheckProhibition(cfg, c, primary, secondary); prohibition.Denies {
		reasoning = append(reasoning, prohibition.Reason)
		return Output{
			Verdict: No, Confidence: prohibition.Confidence, Reasoning: reasoning,
			PerfectionType: string(denial.Prohibition), Analysis: analysis, Assignment: assignment,
		}
	}
	if domain := denial.CheckDomainDenial(cfg, c, string(analysis.Category), primary, secondary); domain.Denies {
		reasoning = append(reasoning, domain.Reason)
		return Output{
			Verdict: No, Confidence: domain.Confidence, Reasoning: reasoning,
			PerfectionType: string(denial.Domain), Analysis: analysis, Assignment: assignment,
		}
	}

	// 11. Benefic support — secondary testimony only; never a path to YES
	// on its own, and a severely weak quesited turns it into a confirming
	// NO.
	if support := beneficSupport(c, primary, secondary); support.Favorable {
		reasoning = append(reasoning, fmt.Sprintf("benefic support noted (%s) but insufficient without significator perfection", support.Reason))
		confidence := 85
		if pos, ok := c.Planets[secondary]; ok && (pos.DignityScore <= -4 || pos.Retrograde) {
			confidence = 80
			reasoning = append(reasoning, "quesited significator severely weak — confirms denial")
		}
		return Output{
			Verdict: No, Confidence: confidence, Reasoning: reasoning,
			PerfectionType: "none", Analysis: analysis, Assignment: assignment,
		}
	}

	// 12. Pregnancy exception.
	if analysis.Category == question.Pregnancy {
		rec := reception.Calculate(c, primary, secondary)
		hasReception := rec.Kind != reception.None
		hasMoonBenefic := moonTest.ToBenefic && moonTest.ToBeneficApplying && moonTest.ToBeneficFavorable

		if hasReception || hasMoonBenefic {
			confidence := 70
			var parts []string
			if hasReception {
				confidence += 5
				parts = append(parts, fmt.Sprintf("L1-L5 reception (%s)", reception.Display(rec)))
			}
			if hasMoonBenefic {
				confidence += 5
				parts = append(parts, "Moon applying to a benefic")
			}
			reasoning = append(reasoning, fmt.Sprintf("pregnancy sufficiency: %s", joinComma(parts)))
			return Output{
				Verdict: Yes, Confidence: confidence, Reasoning: reasoning,
				PerfectionType: "pregnancy_sufficiency", Analysis: analysis, Assignment: assignment,
			}
		}
	}

	// 13. Fallback: NO with an assembled, explicit list of denial reasons.
	var denialReasons []string
	rec := reception.Calculate(c, primary, secondary)
	if rec.Kind == reception.None {
		denialReasons = append(denialReasons, "no reception between significators")
	} else {
		denialReasons = append(denialReasons, fmt.Sprintf("insufficient perfection despite %s", reception.Display(rec)))
	}
	if moonTest.ToBenefic {
		if moonTest.ToBeneficApplying && moonTest.ToBeneficFavorable {
			denialReasons = append(denialReasons, fmt.Sprintf("%s noted but insufficient", moonTest.Description))
		} else {
			denialReasons = append(denialReasons, fmt.Sprintf("unfavorable %s", moonTest.Description))
		}
	} else {
		denialReasons = append(denialReasons, "no Moon-benefic testimony")
	}

	reasoning = append(reasoning, fmt.Sprintf("no perfection found: %s", joinComma(denialReasons)))
	confidence := cfg.Confidence.Base
	if voidMoonCap > 0 && confidence > voidMoonCap {
		confidence = voidMoonCap
	}

	return Output{
		Verdict: No, Confidence: confidence, Reasoning: reasoning,
		PerfectionType: string(perf.Kind), Analysis: analysis, Assignment: assignment,
	}
}

// perfectionTiming turns a perfecting aspect's degrees-to-exact into a
// human timing estimate using the Moon's real daily motion as the clock, the
// traditional timing measure.
func perfectionTiming(cfg horaryconfig.TimingConfig, c *chart.HoraryChart, perf perfection.Result) string {
	if perf.Aspect == nil {
		return ""
	}
	moon, ok := c.Planets[chart.Moon]
	if !ok || math.Abs(moon.SpeedDegPerDay) < 1e-6 {
		return ""
	}
	days := perf.Aspect.DegreesToExact / math.Abs(moon.SpeedDegPerDay)
	if cfg.DegreeToDayMultiplier > 0 {
		days *= cfg.DegreeToDayMultiplier
	}
	return moonstory.HumanETA(days)
}

// significatorPair resolves which two planets perfection is actually
// judged between: student vs. success for third-person education,
// querent vs. the natural significator of the item for a transaction, and
// querent vs. quesited otherwise.
func significatorPair(a significator.Assignment) (primary, secondary chart.Planet) {
	switch {
	case a.IsThirdPersonEducation:
		return a.StudentPlanet, a.SuccessPlanet
	case a.IsTransaction && a.ItemName != "":
		return a.Querent, a.Item
	default:
		return a.Querent, a.Quesited
	}
}

// judgeSameRuler handles the traditional "unity of purpose" reading: one
// planet ruling both querent and matter perfects the question outright
// unless the shared ruler is itself severely afflicted.
func judgeSameRuler(cfg horaryconfig.Config, c *chart.HoraryChart, a significator.Assignment, reasoning []string, analysis question.Analysis) Output {
	shared := a.SameRuler.SharedRuler
	pos, hasPos := c.Planets[shared]
	confidence := 75

	var prohibitions []string
	if hasPos && pos.DignityScore <= -10 {
		prohibitions = append(prohibitions, fmt.Sprintf("%s severely debilitated (dignity %d)", shared, pos.DignityScore))
	}
	if analysisEntry, ok := c.SolarAnalyses[shared]; ok && analysisEntry.Condition == chart.Combustion {
		prohibitions = append(prohibitions, fmt.Sprintf("%s combust", shared))
	}
	if hasPos && pos.Retrograde && pos.DignityScore < -5 {
		prohibitions = append(prohibitions, fmt.Sprintf("%s retrograde and weak (refranation)", shared))
	}

	if len(prohibitions) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("same-ruler unity denied: %s", joinComma(prohibitions)))
		return Output{
			Verdict: No, Confidence: 80, Reasoning: reasoning,
			PerfectionType: "same_ruler_denied", Analysis: analysis, Assignment: a,
		}
	}

	note := "same-ruler unity indicates direct perfection"
	if hasPos && pos.Retrograde {
		note = "same-ruler unity perfects with delays/renegotiation (retrograde)"
		confidence -= 5
	}
	if hasPos && pos.DignityScore < 0 && pos.DignityScore > -10 {
		note += "; with difficulty"
	}
	reasoning = append(reasoning, note)

	return Output{
		Verdict: Yes, Confidence: confidence, Reasoning: reasoning,
		PerfectionType: "same_ruler_unity", Analysis: analysis, Assignment: a,
	}
}

// applyConfidenceThreshold folds a raw confidence into the final verdict: a
// YES under InconclusiveThreshold collapses to NO capped at MinimumFloor, a
// YES between InconclusiveThreshold and YesThreshold softens to
// INCONCLUSIVE, and a NO is never upgraded regardless of confidence.
func applyConfidenceThreshold(cfg horaryconfig.ConfidenceConfig, verdict Verdict, confidence int, reasoning *[]string) (Verdict, int) {
	if verdict != Yes {
		return verdict, confidence
	}

	if confidence < cfg.InconclusiveThreshold {
		*reasoning = append(*reasoning, "confidence too low for a positive verdict; downgraded to NO")
		if confidence > cfg.MinimumFloor {
			confidence = cfg.MinimumFloor
		}
		return No, confidence
	}

	if confidence < cfg.YesThreshold {
		*reasoning = append(*reasoning, "confidence marginal; downgraded to INCONCLUSIVE")
		return Inconclusive, confidence
	}

	return Yes, confidence
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}
