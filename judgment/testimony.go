package judgment

import (
	"fmt"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/moonstory"
	"github.com/sabaa/horary/reception"
)

// benefics are the traditional benefic planets: Sun, Jupiter, Venus — the
// source treats the Sun as benefic for secondary-testimony purposes even
// though it never acts as a significator's natural ruler.
var benefics = map[chart.Planet]bool{chart.Sun: true, chart.Jupiter: true, chart.Venus: true}

func isBenefic(p chart.Planet) bool {
	return benefics[p]
}

// moonNextAspectTestimony evaluates the Moon's own next applying aspect:
// when it targets one of the significators directly, it is decisive
// testimony on its own — unless the Moon is void of course and the aspect
// is unfavorable, in which case it yields nothing rather than a verdict.
func moonNextAspectTestimony(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet, ignoreVoidMoon bool) (Output, bool) {
	next := c.MoonNextAspect
	if next == nil || (next.Planet != querent && next.Planet != quesited) {
		return Output{}, false
	}

	void := false
	if !ignoreVoidMoon {
		moon, ok := c.Planets[chart.Moon]
		void = ok && moonstory.IsVoidOfCourse(cfg.Moon, moon, c.Planets, next)
	}

	favorable := isFavorableAspect(next.Aspect)
	confidence := 65
	if favorable {
		confidence = 75
	}
	if void {
		confidence -= 15
	}
	if next.Orb <= 1.0 {
		confidence += 10
	}

	if void && !favorable {
		return Output{}, false
	}

	verdict := No
	if favorable {
		verdict = Yes
	}

	rec := reception.Calculate(c, chart.Moon, next.Planet)
	if !favorable && rec.Kind != reception.None {
		verdict = Inconclusive
	}

	confidence = clampInt(confidence, 15, 95)
	reason := fmt.Sprintf("Moon's next applying aspect decisive: Moon %s %s", next.Aspect.Name, next.Planet)
	if void {
		reason += " (void of course, reduces certainty)"
	}

	return Output{
		Verdict: verdict, Confidence: confidence, Reasoning: []string{reason},
		Timing:         next.PerfectionETAHuman,
		PerfectionType: "moon_next_aspect",
	}, true
}

func isFavorableAspect(a chart.Aspect) bool {
	return a.Name == chart.Conjunction.Name || a.Name == chart.Sextile.Name || a.Name == chart.Trine.Name
}

// moonTestimony is the gathered, non-decisive evidence from the Moon's
// condition used by the pregnancy exception and the fallback reasoning.
type moonTestimony struct {
	ToBenefic          bool
	ToBeneficApplying  bool
	ToBeneficFavorable bool
	Description        string
}

func enhancedMoonTestimony(c *chart.HoraryChart) moonTestimony {
	var fallback moonTestimony
	for _, a := range c.Aspects {
		var other chart.Planet
		switch {
		case a.Planet1 == chart.Moon:
			other = a.Planet2
		case a.Planet2 == chart.Moon:
			other = a.Planet1
		default:
			continue
		}
		if !isBenefic(other) {
			continue
		}
		fav := isFavorableAspect(a.Aspect)
		t := moonTestimony{
			ToBenefic: true, ToBeneficApplying: a.Applying, ToBeneficFavorable: fav,
			Description: fmt.Sprintf("Moon %s %s", a.Aspect.Name, other),
		}
		if a.Applying && fav {
			return t
		}
		if !fallback.ToBenefic {
			fallback = t
		}
	}
	return fallback
}

// beneficSupportResult is secondary-only testimony: benefic planets
// aspecting either significator add weight, but traditional horary never
// lets this substitute for significator perfection.
type beneficSupportResult struct {
	Favorable bool
	Reason    string
	Score     int
}

func beneficSupport(c *chart.HoraryChart, querent, quesited chart.Planet) beneficSupportResult {
	significators := map[chart.Planet]bool{querent: true, quesited: true}
	var best beneficSupportResult

	for benefic := range benefics {
		if significators[benefic] {
			continue
		}
		for sig := range significators {
			a, ok := aspectBetween(c, benefic, sig)
			if !ok {
				continue
			}
			score := beneficAspectStrength(c, benefic, a)
			if score <= 0 {
				continue
			}
			if score > best.Score {
				best = beneficSupportResult{
					Favorable: true, Score: score,
					Reason: fmt.Sprintf("%s %s %s", benefic, a.Aspect.Name, sig),
				}
			}
		}
	}
	return best
}

func beneficAspectStrength(c *chart.HoraryChart, benefic chart.Planet, a chart.AspectInfo) int {
	score := 5
	if a.Aspect.Name == chart.Trine.Name || a.Aspect.Name == chart.Sextile.Name {
		score += 5
	}
	if a.Applying {
		score += 3
	}
	if pos, ok := c.Planets[benefic]; ok && pos.DignityScore >= 3 {
		score += 5
	}
	return score
}

func aspectBetween(c *chart.HoraryChart, p1, p2 chart.Planet) (chart.AspectInfo, bool) {
	for _, a := range c.Aspects {
		if (a.Planet1 == p1 && a.Planet2 == p2) || (a.Planet1 == p2 && a.Planet2 == p1) {
			return a, true
		}
	}
	return chart.AspectInfo{}, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
