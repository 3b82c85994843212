package chart

// SolarCondition classifies a planet's proximity to the Sun. Each condition
// carries the signed dignity modifier the Dignity Scorer applies directly.
type SolarCondition struct {
	Name             string
	DignityModifier  int
	Description      string
}

var (
	Cazimi      = SolarCondition{"Cazimi", 6, "Heart of the Sun - maximum dignity"}
	Combustion  = SolarCondition{"Combustion", -5, "Burnt by the Sun - severely weakened"}
	UnderBeams  = SolarCondition{"Under the Beams", -3, "Obscured by the Sun - moderately weakened"}
	FreeOfSun   = SolarCondition{"Free of Sun", 0, "Not affected by solar rays"}
)

// SolarAnalysis records a single body's relationship to the Sun at the
// chart's moment.
type SolarAnalysis struct {
	Planet               Planet
	DistanceFromSun      float64
	Condition            SolarCondition
	ExactCazimi          bool
	TraditionalException bool
}
