// Package perfection implements the Perfection Detector: the ordered
// waterfall of traditional tests — direct aspect, translation of light,
// collection of light, reception-only — that decides whether the
// querent's and quesited's significators come together at all.
package perfection

import (
	"fmt"
	"math"

	"github.com/sabaa/horary/aspect"
	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/reception"
)

// Kind enumerates how (or whether) the significators perfect.
type Kind string

const (
	None             Kind = "none"
	Direct           Kind = "direct"
	DirectDenied     Kind = "direct_denied"
	CombustionDenial Kind = "combustion_denial"
	Translation      Kind = "translation"
	Collection       Kind = "collection"
	ReceptionOnly    Kind = "reception"
)

// Result is the Perfection Detector's verdict, carrying enough detail for
// the Judgment Composer to phrase its reasoning without re-deriving it.
type Result struct {
	Perfects   bool
	Kind       Kind
	Favorable  bool
	Confidence int
	Reason     string

	Aspect     *chart.AspectInfo
	Translator chart.Planet
	Collector  chart.Planet
	Reception  reception.Kind
}

// cadentHouses lists the houses whose significators need reception to
// perfect favorably even on an otherwise exact aspect.
var cadentHouses = map[int]bool{3: true, 6: true, 9: true, 12: true}

// Detect runs the waterfall: direct aspect first (with combustion and
// reception-weighted favorability), then translation of light, then
// collection of light, then reception standing alone — each only tried
// once the prior stages have found nothing.
func Detect(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet) Result {
	if direct, ok := directAspect(cfg, c, querent, quesited); ok {
		return direct
	}

	if t, ok := translationOfLight(cfg, c, querent, quesited); ok {
		return t
	}

	if col, ok := collectionOfLight(cfg, c, querent, quesited); ok {
		return col
	}

	rec := reception.Calculate(c, querent, quesited)
	switch rec.Kind {
	case reception.MutualRulership:
		return Result{
			Perfects: true, Kind: ReceptionOnly, Favorable: true,
			Confidence: cfg.Confidence.ReceptionBonus + cfg.Confidence.Base,
			Reason:     fmt.Sprintf("reception: %s — unconditional perfection", reception.Display(rec)),
			Reception:  rec.Kind,
		}
	case reception.MutualExaltation:
		boosted := min(100, cfg.Confidence.ReceptionBonus+cfg.Confidence.Base+cfg.Confidence.ExaltationConfidenceBoost)
		return Result{
			Perfects: true, Kind: ReceptionOnly, Favorable: true,
			Confidence: boosted,
			Reason:     fmt.Sprintf("reception: %s", reception.Display(rec)),
			Reception:  rec.Kind,
		}
	}

	return Result{Perfects: false, Kind: None, Reason: "no perfection found between significators"}
}

func directAspect(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet) (Result, bool) {
	found, ok := aspect.Find(c.Aspects, querent, quesited)
	if !ok || !found.Applying {
		return Result{}, false
	}
	info := &found

	if info.Aspect.Name == chart.Conjunction.Name {
		sunPlanet, otherPlanet, hasSun := sunAndOther(querent, quesited)
		if hasSun {
			if analysis, ok := c.SolarAnalyses[otherPlanet]; ok && analysis.Condition == chart.Combustion {
				return Result{
					Perfects: false, Kind: CombustionDenial, Favorable: false, Confidence: 85,
					Reason: fmt.Sprintf("combustion denial: %s conjunct %s causes combustion, not perfection", otherPlanet, sunPlanet),
					Aspect: info,
				}, true
			}
		}
	}

	rec := reception.Calculate(c, querent, quesited)
	switch rec.Kind {
	case reception.MutualRulership:
		return Result{
			Perfects: true, Kind: Direct, Favorable: true,
			Confidence: cfg.Confidence.Base + cfg.Confidence.MutualRulershipBonus,
			Reason:     fmt.Sprintf("direct perfection: %s %s %s with %s", querent, info.Aspect.Name, quesited, reception.Display(rec)),
			Aspect:     info, Reception: rec.Kind,
		}, true
	case reception.MutualExaltation:
		boosted := min(100, cfg.Confidence.Base+cfg.Confidence.MutualExaltationBonus+cfg.Confidence.ExaltationConfidenceBoost)
		return Result{
			Perfects: true, Kind: Direct, Favorable: true, Confidence: boosted,
			Reason: fmt.Sprintf("direct perfection: %s %s %s with %s", querent, info.Aspect.Name, quesited, reception.Display(rec)),
			Aspect: info, Reception: rec.Kind,
		}, true
	}

	favorable := isFavorable(info.Aspect, rec, c, querent, quesited)
	reason := fmt.Sprintf("%s between significators", info.Aspect.Name)
	confidence := 75
	kind := DirectDenied
	if favorable {
		confidence = cfg.Confidence.Base
		kind = Direct
	} else if rec.Kind == reception.None {
		var reasons []string
		if qPos, ok := c.Planets[quesited]; ok {
			if cadentHouses[qPos.House] {
				reasons = append(reasons, fmt.Sprintf("%s in cadent %dth house", quesited, qPos.House))
			}
			if qPos.DignityScore < -5 {
				reasons = append(reasons, fmt.Sprintf("%s severely weak (dignity %d)", quesited, qPos.DignityScore))
			}
		}
		if qPos, ok := c.Planets[querent]; ok {
			if cadentHouses[qPos.House] {
				reasons = append(reasons, fmt.Sprintf("%s in cadent %dth house", querent, qPos.House))
			}
			if qPos.DignityScore < -5 {
				reasons = append(reasons, fmt.Sprintf("%s severely weak (dignity %d)", querent, qPos.DignityScore))
			}
		}
		if len(reasons) > 0 {
			reason = fmt.Sprintf("%s found but denied: %s require reception for positive perfection", reason, joinSemicolon(reasons))
		} else {
			reason = reason + " found but unfavorable without reception"
		}
	}

	return Result{
		Perfects: favorable, Kind: kind, Favorable: favorable, Confidence: confidence,
		Reason: reason, Aspect: info, Reception: rec.Kind,
	}, true
}

func sunAndOther(p1, p2 chart.Planet) (sun, other chart.Planet, ok bool) {
	if p1 == chart.Sun {
		return p1, p2, true
	}
	if p2 == chart.Sun {
		return p2, p1, true
	}
	return "", "", false
}

// isFavorable requires a hard aspect (square/opposition) with weak/cadent
// significators to be backed by reception before it counts as perfecting.
func isFavorable(a chart.Aspect, rec reception.Result, c *chart.HoraryChart, querent, quesited chart.Planet) bool {
	hard := a.Name == chart.Square.Name || a.Name == chart.Opposition.Name
	if !hard {
		return true
	}
	if rec.MutualOrBetter() {
		return true
	}
	qPos, qOK := c.Planets[quesited]
	rPos, rOK := c.Planets[querent]
	weak := (qOK && (cadentHouses[qPos.House] || qPos.DignityScore < -5)) || (rOK && (cadentHouses[rPos.House] || rPos.DignityScore < -5))
	return !weak
}

func joinSemicolon(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += "; "
		}
		out += it
	}
	return out
}

// translationOfLight scans every non-significator body for one that
// separates from one significator and applies to the other in immediate
// sequence, faster than both.
func translationOfLight(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet) (Result, bool) {
	querentPos, ok1 := c.Planets[querent]
	quesitedPos, ok2 := c.Planets[quesited]
	if !ok1 || !ok2 {
		return Result{}, false
	}

	for _, planet := range chart.Bodies {
		if planet == querent || planet == quesited {
			continue
		}
		pos, ok := c.Planets[planet]
		if !ok {
			continue
		}

		translatorSpeed := math.Abs(pos.SpeedDegPerDay)
		if !(translatorSpeed > math.Abs(querentPos.SpeedDegPerDay) && translatorSpeed > math.Abs(quesitedPos.SpeedDegPerDay)) {
			continue
		}

		querentAspect, okQ := aspect.Find(c.Aspects, planet, querent)
		quesitedAspect, okS := aspect.Find(c.Aspects, planet, quesited)
		if !okQ || !okS {
			continue
		}

		var sequence string
		var separating, applying chart.AspectInfo
		switch {
		case !querentAspect.Applying && quesitedAspect.Applying:
			separating, applying = querentAspect, quesitedAspect
			sequence = fmt.Sprintf("separates from %s, applies to %s", querent, quesited)
		case !quesitedAspect.Applying && querentAspect.Applying:
			separating, applying = quesitedAspect, querentAspect
			sequence = fmt.Sprintf("separates from %s, applies to %s", quesited, querent)
		default:
			continue
		}

		// Sequence timing plausibility: a separation too far past exact is
		// stale, an application too far from exact is not yet a hand-off.
		if separating.DegreesToExact > cfg.Orbs.TranslationSeparationMax ||
			applying.DegreesToExact > cfg.Orbs.TranslationApplicationMax {
			continue
		}

		// Another applying aspect of the translator that completes first
		// carries the light elsewhere before the hand-off.
		if hasInterveningAspect(c, planet, querent, quesited, applying) {
			continue
		}

		recQuerent := reception.Calculate(c, planet, querent)
		recQuesited := reception.Calculate(c, planet, quesited)
		confidence := 65
		if recQuerent.Kind != reception.None || recQuesited.Kind != reception.None {
			confidence += 10
			sequence += " with reception"
		}

		if analysis, ok := c.SolarAnalyses[planet]; ok && analysis.Condition == chart.Combustion {
			confidence -= 15
		}

		favorable := true
		if hard(querentAspect.Aspect) || hard(quesitedAspect.Aspect) {
			favorable = false
			confidence -= 5
		}

		confidence = clamp(confidence, 35, 95)

		return Result{
			Perfects: true, Kind: Translation, Favorable: favorable, Confidence: confidence,
			Reason:     fmt.Sprintf("translation of light by %s — %s", planet, sequence),
			Translator: planet,
		}, true
	}

	return Result{}, false
}

// hasInterveningAspect reports whether the translator has an applying
// aspect to some third body that perfects before its application to the
// receiving significator.
func hasInterveningAspect(c *chart.HoraryChart, translator, querent, quesited chart.Planet, applying chart.AspectInfo) bool {
	for _, a := range c.Aspects {
		var other chart.Planet
		switch {
		case a.Planet1 == translator:
			other = a.Planet2
		case a.Planet2 == translator:
			other = a.Planet1
		default:
			continue
		}
		if other == querent || other == quesited {
			continue
		}
		if a.Applying && a.DegreesToExact < applying.DegreesToExact {
			return true
		}
	}
	return false
}

// collectionOfLight looks for a body slower than both significators,
// applied to by both, and essentially received by both — Lilly's
// "collects their light together" condition.
func collectionOfLight(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet) (Result, bool) {
	querentPos, ok1 := c.Planets[querent]
	quesitedPos, ok2 := c.Planets[quesited]
	if !ok1 || !ok2 {
		return Result{}, false
	}

	for _, planet := range chart.Bodies {
		if planet == querent || planet == quesited {
			continue
		}
		pos, ok := c.Planets[planet]
		if !ok {
			continue
		}

		collectorSpeed := math.Abs(pos.SpeedDegPerDay)
		if !(collectorSpeed < math.Abs(querentPos.SpeedDegPerDay) && collectorSpeed < math.Abs(quesitedPos.SpeedDegPerDay)) {
			continue
		}

		fromQuerent, okQ := aspect.Find(c.Aspects, querent, planet)
		fromQuesited, okS := aspect.Find(c.Aspects, quesited, planet)
		if !okQ || !okS || !fromQuerent.Applying || !fromQuesited.Applying {
			continue
		}

		querentReceives := reception.Calculate(c, querent, planet).MutualOrBetter() || dignifiedReception(c, querent, planet)
		quesitedReceives := reception.Calculate(c, quesited, planet).MutualOrBetter() || dignifiedReception(c, quesited, planet)
		if !(querentReceives && quesitedReceives) {
			continue
		}

		confidence := 60
		switch {
		case pos.DignityScore >= 3:
			confidence += 15
		case pos.DignityScore >= 0:
			confidence += 5
		default:
			confidence -= 10
		}
		if analysis, ok := c.SolarAnalyses[planet]; ok && analysis.Condition == chart.Combustion {
			confidence -= 20
		}

		favorable := true
		if hard(fromQuerent.Aspect) || hard(fromQuesited.Aspect) {
			favorable = false
			confidence -= 10
		}

		confidence = clamp(confidence, 30, 90)

		return Result{
			Perfects: true, Kind: Collection, Favorable: favorable, Confidence: confidence,
			Reason:    fmt.Sprintf("collection of light by %s", planet),
			Collector: planet,
		}, true
	}

	return Result{}, false
}

// dignifiedReception reports whether receiver essentially receives received
// (receiver stands in a sign received rules/is exalted/has triplicity in).
func dignifiedReception(c *chart.HoraryChart, receiver, received chart.Planet) bool {
	return len(reception.Calculate(c, receiver, received).Planet1Receives) > 0
}

func hard(a chart.Aspect) bool {
	return a.Name == chart.Square.Name || a.Name == chart.Opposition.Name
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
