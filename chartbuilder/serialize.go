package chartbuilder

import (
	"fmt"
	"time"

	"github.com/sabaa/horary/chart"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/moonstory"
	"github.com/sabaa/horary/radicality"
	"github.com/sabaa/horary/significator"
)

// PlanetData is one body's serialized state.
type PlanetData struct {
	Longitude       float64 `json:"longitude"`
	Latitude        float64 `json:"latitude"`
	Sign            string  `json:"sign"`
	House           int     `json:"house"`
	SpeedDegPerDay  float64 `json:"speed"`
	Retrograde      bool    `json:"retrograde"`
	DignityScore    int     `json:"dignity_score"`
	SolarCondition  string  `json:"solar_condition"`
	DistanceFromSun float64 `json:"distance_from_sun"`
}

// AspectData is one serialized aspect between two bodies.
type AspectData struct {
	Planet1        string  `json:"planet1"`
	Planet2        string  `json:"planet2"`
	Aspect         string  `json:"aspect"`
	Orb            float64 `json:"orb"`
	Applying       bool    `json:"applying"`
	DegreesToExact float64 `json:"degrees_to_exact"`
}

// LunarAspectData serializes one of the Moon's bracketing aspects.
type LunarAspectData struct {
	Planet   string  `json:"planet"`
	Aspect   string  `json:"aspect"`
	Orb      float64 `json:"orb"`
	Timing   string  `json:"timing"`
	Applying bool    `json:"applying"`
}

// ChartData is the full serialized chart a response carries.
type ChartData struct {
	Planets     map[string]PlanetData `json:"planets"`
	Aspects     []AspectData          `json:"aspects"`
	Ascendant   float64               `json:"ascendant"`
	Midheaven   float64               `json:"midheaven"`
	Houses      []float64             `json:"houses"`
	HouseRulers map[string]string     `json:"house_rulers"`

	MoonLastAspect *LunarAspectData `json:"moon_last_aspect"`
	MoonNextAspect *LunarAspectData `json:"moon_next_aspect"`
}

// GeneralInfo is the almanac block: planetary day and hour rulers plus the
// Moon's phase, mansion, and condition.
type GeneralInfo struct {
	PlanetaryDay  string `json:"planetary_day"`
	PlanetaryHour string `json:"planetary_hour"`
	MoonPhase     string `json:"moon_phase"`
	MoonMansion   struct {
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"moon_mansion"`
	MoonCondition struct {
		Sign          string  `json:"sign"`
		Speed         float64 `json:"speed"`
		SpeedCategory string  `json:"speed_category"`
		VoidOfCourse  bool    `json:"void_of_course"`
	} `json:"moon_condition"`
}

// Considerations reports the classical pre-judgment checks.
type Considerations struct {
	Radical        bool   `json:"radical"`
	RadicalReason  string `json:"radical_reason"`
	MoonVoid       bool   `json:"moon_void"`
	MoonVoidReason string `json:"moon_void_reason"`
}

// TimezoneInfo records how the moment of the question was located in time.
type TimezoneInfo struct {
	LocalTime    string `json:"local_time"`
	UTCTime      string `json:"utc_time"`
	Timezone     string `json:"timezone"`
	LocationName string `json:"location_name"`
	Coordinates  struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
}

// SolarFactors summarizes the significators' solar conditions.
type SolarFactors struct {
	Significant     bool              `json:"significant"`
	CazimiCount     int               `json:"cazimi_count"`
	CombustionCount int               `json:"combustion_count"`
	UnderBeamsCount int               `json:"under_beams_count"`
	Summary         string            `json:"summary"`
	Conditions      map[string]string `json:"conditions"`
}

// TraditionalFactors carries the judgment's classical context.
type TraditionalFactors struct {
	PerfectionType       string `json:"perfection_type"`
	SignificatorStrength string `json:"significator_strength"`
	MoonVoid             bool   `json:"moon_void"`
}

// chaldeanSequence orders the planets for hour rulership, slowest first.
var chaldeanSequence = []chart.Planet{
	chart.Saturn, chart.Jupiter, chart.Mars, chart.Sun,
	chart.Venus, chart.Mercury, chart.Moon,
}

// planetaryDayRulers maps Go weekdays to their traditional day rulers.
var planetaryDayRulers = map[time.Weekday]chart.Planet{
	time.Sunday:    chart.Sun,
	time.Monday:    chart.Moon,
	time.Tuesday:   chart.Mars,
	time.Wednesday: chart.Mercury,
	time.Thursday:  chart.Jupiter,
	time.Friday:    chart.Venus,
	time.Saturday:  chart.Saturn,
}

// SerializeChart flattens a chart into the wire shape.
func SerializeChart(c *chart.HoraryChart) *ChartData {
	data := &ChartData{
		Planets:     make(map[string]PlanetData, len(c.Planets)),
		Ascendant:   c.Ascendant,
		Midheaven:   c.Midheaven,
		Houses:      append([]float64(nil), c.HouseCusps[:]...),
		HouseRulers: make(map[string]string, len(c.HouseRulers)),
	}

	for planet, pos := range c.Planets {
		pd := PlanetData{
			Longitude:      pos.Longitude,
			Latitude:       pos.Latitude,
			Sign:           pos.Sign.Name,
			House:          pos.House,
			SpeedDegPerDay: pos.SpeedDegPerDay,
			Retrograde:     pos.Retrograde,
			DignityScore:   pos.DignityScore,
		}
		if sa, ok := c.SolarAnalyses[planet]; ok {
			pd.SolarCondition = sa.Condition.Name
			pd.DistanceFromSun = sa.DistanceFromSun
		}
		data.Planets[string(planet)] = pd
	}

	for _, a := range c.Aspects {
		data.Aspects = append(data.Aspects, AspectData{
			Planet1:        string(a.Planet1),
			Planet2:        string(a.Planet2),
			Aspect:         a.Aspect.Name,
			Orb:            a.Orb,
			Applying:       a.Applying,
			DegreesToExact: a.DegreesToExact,
		})
	}

	for house, ruler := range c.HouseRulers {
		data.HouseRulers[fmt.Sprintf("%d", house)] = string(ruler)
	}

	data.MoonLastAspect = serializeLunarAspect(c.MoonLastAspect)
	data.MoonNextAspect = serializeLunarAspect(c.MoonNextAspect)

	return data
}

func serializeLunarAspect(la *chart.LunarAspect) *LunarAspectData {
	if la == nil {
		return nil
	}
	return &LunarAspectData{
		Planet:   string(la.Planet),
		Aspect:   la.Aspect.Name,
		Orb:      la.Orb,
		Timing:   la.PerfectionETAHuman,
		Applying: la.Applying,
	}
}

// BuildGeneralInfo computes the almanac block for a chart.
func BuildGeneralInfo(cfg horaryconfig.MoonConfig, c *chart.HoraryChart) GeneralInfo {
	info := GeneralInfo{}

	dayRuler := planetaryDayRulers[c.DateTimeLocal.Weekday()]
	info.PlanetaryDay = string(dayRuler)

	startIdx := 0
	for i, p := range chaldeanSequence {
		if p == dayRuler {
			startIdx = i
			break
		}
	}
	info.PlanetaryHour = string(chaldeanSequence[(startIdx+c.DateTimeLocal.Hour())%7])

	moon, hasMoon := c.Planets[chart.Moon]
	sun := c.Planets[chart.Sun]
	if hasMoon {
		info.MoonPhase = moonstory.PhaseName(sun.Longitude, moon.Longitude)
		number, name := moonstory.Mansion(moon.Longitude)
		info.MoonMansion.Number = number
		info.MoonMansion.Name = name
		info.MoonCondition.Sign = moon.Sign.Name
		info.MoonCondition.Speed = moon.SpeedDegPerDay
		info.MoonCondition.SpeedCategory = moonstory.SpeedCategory(moon.SpeedDegPerDay)
		info.MoonCondition.VoidOfCourse = moonstory.IsVoidOfCourse(cfg, moon, c.Planets, c.MoonNextAspect)
	}

	return info
}

// BuildConsiderations re-runs the radicality and void checks without
// overrides, so the response reports what the chart itself says even when
// the caller bypassed a check.
func BuildConsiderations(cfg horaryconfig.Config, c *chart.HoraryChart) Considerations {
	rad := radicality.Evaluate(cfg.Radicality, c, radicality.Overrides{})

	out := Considerations{Radical: rad.Radical, RadicalReason: "chart is radical"}
	if !rad.Radical && len(rad.Reasoning) > 0 {
		out.RadicalReason = rad.Reasoning[len(rad.Reasoning)-1]
	}

	if moon, ok := c.Planets[chart.Moon]; ok {
		out.MoonVoid = moonstory.IsVoidOfCourse(cfg.Moon, moon, c.Planets, c.MoonNextAspect)
		if out.MoonVoid {
			out.MoonVoidReason = "Moon makes no further aspect before leaving " + moon.Sign.Name
		} else if c.MoonNextAspect != nil {
			out.MoonVoidReason = fmt.Sprintf("Moon next applies to %s by %s",
				c.MoonNextAspect.Planet, c.MoonNextAspect.Aspect.Name)
		}
	}

	return out
}

// BuildTimezoneInfo records the resolved place and times.
func BuildTimezoneInfo(c *chart.HoraryChart) TimezoneInfo {
	info := TimezoneInfo{
		LocalTime:    c.DateTimeLocal.Format(time.RFC3339),
		UTCTime:      c.DateTimeUTC.Format(time.RFC3339),
		Timezone:     c.TimezoneName,
		LocationName: c.Location.Name,
	}
	info.Coordinates.Latitude = c.Location.Latitude
	info.Coordinates.Longitude = c.Location.Longitude
	return info
}

// BuildSolarFactors records the solar condition of every body that is not
// free of the Sun, counts cazimi, combustion and under-the-beams cases across
// the chart, and summarizes the two significators' conditions.
func BuildSolarFactors(c *chart.HoraryChart, querent, quesited chart.Planet) SolarFactors {
	factors := SolarFactors{Conditions: make(map[string]string)}

	for planet, sa := range c.SolarAnalyses {
		if sa.Condition == chart.FreeOfSun {
			continue
		}
		factors.Conditions[string(planet)] = sa.Condition.Name
		switch sa.Condition.Name {
		case chart.Cazimi.Name:
			factors.CazimiCount++
		case chart.Combustion.Name:
			factors.CombustionCount++
		case chart.UnderBeams.Name:
			factors.UnderBeamsCount++
		}
	}

	for _, sig := range []chart.Planet{querent, quesited} {
		if sa, ok := c.SolarAnalyses[sig]; ok && sa.Condition != chart.FreeOfSun {
			factors.Significant = true
			if factors.Summary != "" {
				factors.Summary += "; "
			}
			factors.Summary += fmt.Sprintf("%s is %s (%.2f from Sun)", sig, sa.Condition.Name, sa.DistanceFromSun)
		}
	}
	if factors.Summary == "" {
		factors.Summary = "both significators free of the Sun"
	}

	return factors
}

// BuildTraditionalFactors records the perfection route and significator
// strength backing the verdict.
func BuildTraditionalFactors(c *chart.HoraryChart, cfg horaryconfig.Config, perfectionType string, assignment significator.Assignment) TraditionalFactors {
	factors := TraditionalFactors{PerfectionType: perfectionType}

	if qPos, ok := c.Planets[assignment.Querent]; ok {
		if sPos, ok2 := c.Planets[assignment.Quesited]; ok2 {
			factors.SignificatorStrength = fmt.Sprintf("Querent: %+d, Quesited: %+d",
				qPos.DignityScore, sPos.DignityScore)
		}
	}

	if moon, ok := c.Planets[chart.Moon]; ok {
		factors.MoonVoid = moonstory.IsVoidOfCourse(cfg.Moon, moon, c.Planets, c.MoonNextAspect)
	}

	return factors
}
