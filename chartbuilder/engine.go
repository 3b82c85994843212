package chartbuilder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sabaa/horary/geocode"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/judgment"
	"github.com/sabaa/horary/observability"
	"github.com/sabaa/horary/question"
	"github.com/sabaa/horary/radicality"
	"github.com/sabaa/horary/significator"
)

// TimeframeData serializes a parsed question deadline.
type TimeframeData struct {
	Type    string `json:"type"`
	EndDate string `json:"end_date,omitempty"`
}

// QuestionAnalysisData serializes the Question Analyzer's verdict.
type QuestionAnalysisData struct {
	QuestionType   string         `json:"question_type"`
	RelevantHouses []int          `json:"relevant_houses"`
	ThirdPerson    bool           `json:"third_person"`
	SubjectHouse   int            `json:"subject_house,omitempty"`
	Timeframe      *TimeframeData `json:"timeframe,omitempty"`
	Significators  struct {
		Querent     string `json:"querent"`
		Quesited    string `json:"quesited"`
		Description string `json:"description"`
	} `json:"significators"`
}

// Output is the complete judgment record a caller receives: the verdict
// itself plus the chart, analysis, and almanac blocks backing it.
type Output struct {
	Question   string   `json:"question"`
	Judgment   string   `json:"judgment"`
	Confidence int      `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
	Timing     *string  `json:"timing"`

	ChartData          *ChartData            `json:"chart_data,omitempty"`
	QuestionAnalysis   *QuestionAnalysisData `json:"question_analysis,omitempty"`
	TraditionalFactors *TraditionalFactors   `json:"traditional_factors,omitempty"`
	SolarFactors       *SolarFactors         `json:"solar_factors,omitempty"`
	GeneralInfo        *GeneralInfo          `json:"general_info,omitempty"`
	Considerations     *Considerations       `json:"considerations,omitempty"`
	TimezoneInfo       *TimezoneInfo         `json:"timezone_info,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

// Engine is the public face of the judgment pipeline: it builds the chart,
// runs the Judgment Composer, and assembles the structured output.
type Engine struct {
	cfg      horaryconfig.Config
	builder  *Builder
	observer observability.ObserverInterface
}

// NewEngine builds an Engine over a Builder. The config snapshot is taken
// here and never re-read.
func NewEngine(cfg horaryconfig.Config, builder *Builder) *Engine {
	return &Engine{cfg: cfg, builder: builder, observer: observability.Observer()}
}

// Judge answers one horary question. Geocoding failures surface as
// LOCATION_ERROR, bad input and collaborator failures as ERROR; everything
// else flows through the Judgment Composer's waterfall.
func (e *Engine) Judge(ctx context.Context, questionText string, settings Settings) Output {
	ctx, span := e.observer.CreateSpan(ctx, "engine.Judge")
	defer span.End()

	if strings.TrimSpace(questionText) == "" {
		err := &InputError{Field: "question", Reason: "question text is required"}
		return errorOutput(questionText, err)
	}

	c, err := e.builder.Build(ctx, settings)
	if err != nil {
		return errorOutput(questionText, err)
	}

	cfg := e.cfg
	if settings.ExaltationConfidenceBoost != nil {
		cfg.Confidence.ExaltationConfidenceBoost = *settings.ExaltationConfidenceBoost
	}

	result := judgment.Judge(cfg, c, questionText, judgment.Settings{
		Overrides: radicality.Overrides{
			IgnoreRadicality: settings.IgnoreRadicality,
			IgnoreSaturn7th:  settings.IgnoreSaturn7th,
			IgnoreVoidMoon:   settings.IgnoreVoidMoon,
		},
		IgnoreCombustion: settings.IgnoreCombustion,
		ManualHouses:     settings.ManualHouses,
	})

	out := Output{
		Question:   questionText,
		Judgment:   string(result.Verdict),
		Confidence: result.Confidence,
		Reasoning:  result.Reasoning,
		ChartData:  SerializeChart(c),
	}
	if result.Timing != "" {
		timing := result.Timing
		out.Timing = &timing
	}

	// An early radicality or void-Moon exit never reaches the Question
	// Analyzer inside the composer; the response still reports the analysis.
	analysis := result.Analysis
	if analysis.Category == "" {
		analysis = question.Analyze(questionText)
	}
	out.QuestionAnalysis = serializeAnalysis(analysis, result.Assignment, c.DateTimeLocal)

	querent, quesited := result.Assignment.Querent, result.Assignment.Quesited
	solarFactors := BuildSolarFactors(c, querent, quesited)
	traditional := BuildTraditionalFactors(c, cfg, result.PerfectionType, result.Assignment)
	generalInfo := BuildGeneralInfo(cfg.Moon, c)
	considerations := BuildConsiderations(cfg, c)
	timezoneInfo := BuildTimezoneInfo(c)

	out.SolarFactors = &solarFactors
	out.TraditionalFactors = &traditional
	out.GeneralInfo = &generalInfo
	out.Considerations = &considerations
	out.TimezoneInfo = &timezoneInfo

	return out
}

func serializeAnalysis(a question.Analysis, assignment significator.Assignment, asked time.Time) *QuestionAnalysisData {
	data := &QuestionAnalysisData{
		QuestionType:   string(a.Category),
		RelevantHouses: a.Houses,
		ThirdPerson:    a.ThirdPerson.IsThirdPerson,
		SubjectHouse:   a.ThirdPerson.SubjectHouse,
	}
	data.Significators.Querent = string(assignment.Querent)
	data.Significators.Quesited = string(assignment.Quesited)
	data.Significators.Description = assignment.Description

	if a.Timeframe.HasTimeframe {
		tf := &TimeframeData{Type: a.Timeframe.Type}
		if end, ok := a.Timeframe.EndDate(asked); ok {
			tf.EndDate = end.Format("2006-01-02")
		}
		data.Timeframe = tf
	}
	return data
}

func errorOutput(questionText string, err error) Output {
	kind := errorKind(err)

	judgmentName := "ERROR"
	if kind == "LocationError" {
		judgmentName = "LOCATION_ERROR"
	}

	return Output{
		Question:   questionText,
		Judgment:   judgmentName,
		Confidence: 0,
		Reasoning:  []string{kind + ": " + err.Error()},
		Error:      err.Error(),
		ErrorType:  kind,
	}
}

func errorKind(err error) string {
	var locErr *geocode.LocationError
	var inputErr *InputError
	var calcErr *CalculationError
	var loadErr *horaryconfig.LoadError

	switch {
	case errors.As(err, &locErr):
		return "LocationError"
	case errors.As(err, &inputErr):
		return "InputError"
	case errors.As(err, &calcErr):
		return "CalculationError"
	case errors.As(err, &loadErr):
		return "ConfigurationError"
	default:
		return "Error"
	}
}
