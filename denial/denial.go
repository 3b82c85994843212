// Package denial implements the Denial & Prohibition Detector: the checks
// that can override an otherwise-perfecting chart and rule the matter
// denied — prohibition by a third body, a void-of-course Moon, and
// combustion/debilitation impediments severe enough to deny outright.
package denial

import (
	"fmt"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/moonstory"
)

// Kind names which denial mechanism fired.
type Kind string

const (
	None        Kind = "none"
	Prohibition Kind = "prohibition"
	VoidMoon    Kind = "void_moon_denial"
	Impediment  Kind = "impediment_denial"
	Domain      Kind = "domain_denial"
)

// Result is the Denial Detector's verdict. A zero Result (Kind None) means
// nothing prevents the perfection the Perfection Detector already found.
type Result struct {
	Denies     bool
	Kind       Kind
	Confidence int
	Reason     string

	ProhibitingPlanet chart.Planet
	TargetSignificator chart.Planet
}

// CheckProhibition looks for a third planet whose applying aspect to either
// significator completes before the querent/quesited's own applying aspect
// does — Lilly's prohibition, where a stranger "steals" the aspect first.
// It only applies when querent and quesited themselves have a pending
// applying aspect; no pending perfection means no prohibition is possible.
func CheckProhibition(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet) Result {
	direct := findInfo(c.Aspects, querent, quesited)
	if direct == nil || !direct.Applying {
		return Result{Kind: None}
	}

	for _, a := range c.Aspects {
		if !a.Applying {
			continue
		}

		var target, prohibitor chart.Planet
		switch {
		case isSignificator(a.Planet1, querent, quesited) && !isSignificator(a.Planet2, querent, quesited):
			target, prohibitor = a.Planet1, a.Planet2
		case isSignificator(a.Planet2, querent, quesited) && !isSignificator(a.Planet1, querent, quesited):
			target, prohibitor = a.Planet2, a.Planet1
		default:
			continue
		}

		if a.DegreesToExact >= direct.DegreesToExact {
			continue
		}

		confidence := 70
		kind := "general"
		switch prohibitor {
		case chart.Saturn:
			confidence += 10
			kind = "Saturn"
		case chart.Mars:
			confidence += 5
			kind = "Mars"
		}

		if confidence > 85 {
			confidence = 85
		}

		return Result{
			Denies: true, Kind: Prohibition, Confidence: confidence,
			Reason:             fmt.Sprintf("prohibition by %s — aspects %s before significator perfection (%s)", prohibitor, target, kind),
			ProhibitingPlanet:  prohibitor,
			TargetSignificator: target,
		}
	}

	return Result{Kind: None}
}

func isSignificator(p, querent, quesited chart.Planet) bool {
	return p == querent || p == quesited
}

func findInfo(infos []chart.AspectInfo, p1, p2 chart.Planet) *chart.AspectInfo {
	for i := range infos {
		if (infos[i].Planet1 == p1 && infos[i].Planet2 == p2) || (infos[i].Planet1 == p2 && infos[i].Planet2 == p1) {
			return &infos[i]
		}
	}
	return nil
}

// CheckVoidMoon applies the hard void-of-course denial: if the Moon is void
// and no configured exception sign lifts it, the matter is denied outright
// unless allowOverride is set, in which case the judgment proceeds with
// confidence capped at cfg.Confidence.VoidMoonCap. The override is the
// caller's flag alone; no translation of light is looked for here.
func CheckVoidMoon(cfg horaryconfig.Config, c *chart.HoraryChart, allowOverride bool) Result {
	moon, ok := c.Planets[chart.Moon]
	if !ok {
		return Result{Kind: None}
	}

	void := moonstory.IsVoidOfCourse(cfg.Moon, moon, c.Planets, c.MoonNextAspect)
	if !void {
		return Result{Kind: None}
	}

	if allowOverride {
		return Result{
			Denies: false, Kind: VoidMoon, Confidence: cfg.Confidence.VoidMoonCap,
			Reason: "void Moon noted but overridden by the operator; confidence capped",
		}
	}

	return Result{
		Denies: true, Kind: VoidMoon, Confidence: 85,
		Reason: "the Moon is void of course and makes no further aspect before leaving its sign",
	}
}

// CheckImpediment denies outright when both significators are severely
// afflicted at once — close combustion stacked with severe debilitation on
// two or more bodies, which traditional sources treat as a denial rather
// than a mere difficulty.
func CheckImpediment(c *chart.HoraryChart, querent, quesited chart.Planet) Result {
	severe := 0
	var afflicted []string

	for _, planet := range []chart.Planet{querent, quesited} {
		analysis, hasSolar := c.SolarAnalyses[planet]
		pos, hasPos := c.Planets[planet]
		if !hasSolar || !hasPos {
			continue
		}
		if analysis.Condition != chart.Combustion {
			continue
		}
		if analysis.DistanceFromSun < 3.0 && pos.DignityScore <= -4 {
			severe++
			afflicted = append(afflicted, fmt.Sprintf("%s (combust at %.1f°, dignity %d)", planet, analysis.DistanceFromSun, pos.DignityScore))
		}
	}

	if severe < 2 {
		return Result{Kind: None}
	}

	return Result{
		Denies: true, Kind: Impediment, Confidence: 90,
		Reason: fmt.Sprintf("multiple severe impediments deny perfection: %s", joinComma(afflicted)),
	}
}

// CheckDomainDenial applies the category-specific traditional denial
// factors that only make sense once the question's subject matter is known:
// lost_object's recovery-denying combination, and travel's affliction
// combination when Jupiter rules the journey. Each collects independently;
// the matter is capped to NO only once enough of them stack up.
func CheckDomainDenial(cfg horaryconfig.Config, c *chart.HoraryChart, category string, querent, quesited chart.Planet) Result {
	switch category {
	case "lost_object":
		return checkLostObjectDenial(cfg, c, querent, quesited)
	case "travel":
		return checkTravelDenial(c, querent, quesited)
	default:
		return Result{Kind: None}
	}
}

func checkLostObjectDenial(cfg horaryconfig.Config, c *chart.HoraryChart, querent, quesited chart.Planet) Result {
	var reasons []string

	if ruler, ok := c.HouseRulers[2]; ok && ruler == quesited {
		if pos, ok := c.Planets[quesited]; ok && cadent[pos.House] && pos.DignityScore <= -5 {
			reasons = append(reasons, fmt.Sprintf("L2 (%s) cadent and severely afflicted (dignity %d) — item likely destroyed or irretrievable", quesited, pos.DignityScore))
		}
	}

	for _, planet := range []chart.Planet{querent, quesited} {
		if analysis, ok := c.SolarAnalyses[planet]; ok && analysis.Condition == chart.Combustion {
			reasons = append(reasons, fmt.Sprintf("combustion of %s significator — matter destroyed or hidden", planet))
		}
	}

	if moon, ok := c.Planets[chart.Moon]; ok {
		if moonstory.IsVoidOfCourse(cfg.Moon, moon, c.Planets, c.MoonNextAspect) {
			reasons = append(reasons, "Moon void of course — no recovery indicated")
		}
	}

	if saturn, ok := c.Planets[chart.Saturn]; ok && saturn.House == 7 {
		reasons = append(reasons, "Saturn in 7th house — traditional denial of recovery")
	}

	if mars, ok := c.Planets[chart.Mars]; ok && mars.DignityScore >= 3 {
		for _, sig := range []chart.Planet{querent, quesited} {
			sigPos, ok := c.Planets[sig]
			if !ok {
				continue
			}
			diff := chart.NormalizeDegrees(mars.Longitude - sigPos.Longitude)
			if diff > 180 {
				diff = 360 - diff
			}
			if diff >= 172 && diff <= 188 {
				reasons = append(reasons, fmt.Sprintf("well-dignified Mars opposes %s — theft or loss strongly indicated", sig))
			}
		}
	}

	if len(reasons) == 0 {
		return Result{Kind: None}
	}

	return Result{
		Denies: true, Kind: Domain, Confidence: 80,
		Reason: fmt.Sprintf("lost-object denial: %s", joinComma(reasons)),
	}
}

func checkTravelDenial(c *chart.HoraryChart, querent, quesited chart.Planet) Result {
	if quesited != chart.Jupiter {
		return Result{Kind: None}
	}

	var warnings []string
	jupiter := c.Planets[chart.Jupiter]
	if jupiter.Retrograde && jupiter.DignityScore < 0 {
		warnings = append(warnings, "Jupiter (travel ruler) retrograde and debilitated")
	}
	if jupiter.House == 6 {
		warnings = append(warnings, "Jupiter (travel ruler) in 6th house of illness")
	}
	if querentPos, ok := c.Planets[querent]; ok && querentPos.House == 8 {
		warnings = append(warnings, "querent in 8th house (danger/trouble)")
	}
	if moon, ok := c.Planets[chart.Moon]; ok && moon.House == 6 {
		warnings = append(warnings, "Moon in 6th house (health concerns)")
	}

	if len(warnings) < 2 {
		return Result{Kind: None}
	}

	return Result{
		Denies: true, Kind: Domain, Confidence: 85,
		Reason: fmt.Sprintf("travel impediments: %s", joinComma(warnings)),
	}
}

var cadent = map[int]bool{3: true, 6: true, 9: true, 12: true}

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
