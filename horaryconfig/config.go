// Package horaryconfig loads the judgment engine's external Configuration
// collaborator: an immutable, process-wide snapshot of the magic numbers
// traditional doctrine hangs on — orbs, dignity weights, confidence caps,
// Moon-story timing bands, radicality thresholds and retrograde handling.
// Not every threshold lives here: several downstream rules (confidence
// values in judgment, perfection and denial among them) use literal numbers
// of their own.
package horaryconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OrbConfig holds a base orb, in degrees, for each major aspect, plus the
// solar-condition boundaries used by the solar package. The aspect package
// does not read the five aspect orbs; it bounds each pair's orb by the
// per-planet values in aspect.Moieties.
type OrbConfig struct {
	Conjunction float64 `yaml:"conjunction"`
	Sextile     float64 `yaml:"sextile"`
	Square      float64 `yaml:"square"`
	Trine       float64 `yaml:"trine"`
	Opposition  float64 `yaml:"opposition"`

	CazimiOrbArcmin float64 `yaml:"cazimi_orb_arcmin"`
	CombustionOrb   float64 `yaml:"combustion_orb"`
	UnderBeamsOrb   float64 `yaml:"under_beams_orb"`

	// TranslationSeparationMax and TranslationApplicationMax bound how far
	// a translator may be past exact with one significator and short of
	// exact with the other before the sequence stops being plausible.
	TranslationSeparationMax  float64 `yaml:"translation_separation_max"`
	TranslationApplicationMax float64 `yaml:"translation_application_max"`
}

// DignityConfig holds the accidental/motion/sect weights the Dignity Scorer
// composes into a planet's final score.
type DignityConfig struct {
	EssentialDomicile   int `yaml:"essential_domicile"`
	EssentialExaltation int `yaml:"essential_exaltation"`
	EssentialTriplicity int `yaml:"essential_triplicity"`
	EssentialDetriment  int `yaml:"essential_detriment"`
	EssentialFall       int `yaml:"essential_fall"`

	AccidentalJoy            int `yaml:"accidental_joy"`
	AccidentalAngular        int `yaml:"accidental_angular"`
	AccidentalSuccedent      int `yaml:"accidental_succedent"`
	AccidentalCadent         int `yaml:"accidental_cadent"`
	AngularCuspOrbDegrees    float64 `yaml:"angular_cusp_orb_degrees"`

	MotionFastThresholdDegPerDay float64 `yaml:"motion_fast_threshold_deg_per_day"`
	MotionFastBonus              int     `yaml:"motion_fast_bonus"`
	MotionSlowPenalty             int    `yaml:"motion_slow_penalty"`
	MotionStationaryOrbDegPerDay  float64 `yaml:"motion_stationary_orb_deg_per_day"`
	MotionRetrogradePenalty       int     `yaml:"motion_retrograde_penalty"`

	SectHayzBonus         int `yaml:"sect_hayz_bonus"`
	SectContrarietyPenalty int `yaml:"sect_contrariety_penalty"`

	ExactCazimiBonus int `yaml:"exact_cazimi_bonus"`
}

// ConfidenceConfig holds the Judgment Composer's base confidence and the
// thresholds that fold a raw confidence into YES/NO/INCONCLUSIVE.
type ConfidenceConfig struct {
	Base                     int `yaml:"base"`
	MutualRulershipBonus     int `yaml:"mutual_rulership_bonus"`
	MutualExaltationBonus    int `yaml:"mutual_exaltation_bonus"`
	ReceptionBonus           int `yaml:"reception_bonus"`
	TranslationBonus         int `yaml:"translation_bonus"`
	CollectionBonus          int `yaml:"collection_bonus"`
	ExaltationConfidenceBoost int `yaml:"exaltation_confidence_boost"`

	YesThreshold          int `yaml:"yes_threshold"`
	InconclusiveThreshold int `yaml:"inconclusive_threshold"`
	VoidMoonCap           int `yaml:"void_moon_cap"`
	MinimumFloor          int `yaml:"minimum_floor"`
}

// MoonConfig drives the Moon Story and its void-of-course policy.
type MoonConfig struct {
	VoidOfCourseMethod string   `yaml:"void_of_course_method"` // by_sign, by_orb, lilly
	VoidExceptionSigns []string `yaml:"void_exception_signs"`

	// VoidOrbDegrees is the orb the by_orb method tests: the Moon is void
	// when no Ptolemaic aspect to any body is within this many degrees.
	VoidOrbDegrees float64 `yaml:"void_orb_degrees"`
}

// RadicalityConfig drives the Radicality Gate thresholds.
type RadicalityConfig struct {
	AscendantTooEarlyDegrees float64 `yaml:"ascendant_too_early_degrees"`
	AscendantTooLateDegrees  float64 `yaml:"ascendant_too_late_degrees"`
	CheckViaCombusta         bool    `yaml:"check_via_combusta"`
	ViaCombustaStart         float64 `yaml:"via_combusta_start"`
	ViaCombustaEnd           float64 `yaml:"via_combusta_end"`
}

// RetrogradeConfig holds a retrograde penalty that no package reads; the
// Dignity Scorer's motion term uses DignityConfig.MotionRetrogradePenalty.
type RetrogradeConfig struct {
	Penalty int `yaml:"penalty"`
}

// TimingConfig drives the Judgment Composer's timing-estimate text through
// DegreeToDayMultiplier; no package reads CardinalSignSpeedsUp.
type TimingConfig struct {
	DegreeToDayMultiplier float64 `yaml:"degree_to_day_multiplier"`
	CardinalSignSpeedsUp  bool    `yaml:"cardinal_sign_speeds_up"`
}

// Config is the full immutable configuration snapshot. It is loaded once at
// startup and never mutated; every collaborator that needs a tunable value
// takes a Config (or one of its sections) as a plain argument.
type Config struct {
	Orbs       OrbConfig        `yaml:"orbs"`
	Dignity    DignityConfig    `yaml:"dignity"`
	Confidence ConfidenceConfig `yaml:"confidence"`
	Moon       MoonConfig       `yaml:"moon"`
	Radicality RadicalityConfig `yaml:"radicality"`
	Retrograde RetrogradeConfig `yaml:"retrograde"`
	Timing     TimingConfig     `yaml:"timing"`
}

// Default returns the configuration traditional sources (Lilly, Bonatti)
// imply when no override file is supplied.
func Default() Config {
	return Config{
		Orbs: OrbConfig{
			Conjunction: 8, Sextile: 6, Square: 7, Trine: 8, Opposition: 8,
			CazimiOrbArcmin: 17, CombustionOrb: 8.5, UnderBeamsOrb: 15,
			TranslationSeparationMax: 10, TranslationApplicationMax: 15,
		},
		Dignity: DignityConfig{
			EssentialDomicile: 5, EssentialExaltation: 4, EssentialTriplicity: 3,
			EssentialDetriment: -5, EssentialFall: -4,
			AccidentalJoy: 2, AccidentalAngular: 4, AccidentalSuccedent: 2, AccidentalCadent: -2,
			AngularCuspOrbDegrees: 5,
			MotionFastThresholdDegPerDay: 1.0, MotionFastBonus: 2, MotionSlowPenalty: -1,
			MotionStationaryOrbDegPerDay: 0.05, MotionRetrogradePenalty: -3,
			SectHayzBonus: 2, SectContrarietyPenalty: -2,
			ExactCazimiBonus: 2,
		},
		Confidence: ConfidenceConfig{
			Base: 50, MutualRulershipBonus: 25, MutualExaltationBonus: 18, ReceptionBonus: 10,
			TranslationBonus: 12, CollectionBonus: 10, ExaltationConfidenceBoost: 5,
			YesThreshold: 50, InconclusiveThreshold: 30, VoidMoonCap: 30, MinimumFloor: 20,
		},
		Moon: MoonConfig{
			VoidOfCourseMethod: "by_sign",
			VoidExceptionSigns: []string{"Cancer", "Sagittarius", "Taurus"},
			VoidOrbDegrees:     6,
		},
		Radicality: RadicalityConfig{
			AscendantTooEarlyDegrees: 3, AscendantTooLateDegrees: 27,
			CheckViaCombusta: true,
			ViaCombustaStart: 195, ViaCombustaEnd: 225,
		},
		Retrograde: RetrogradeConfig{Penalty: -3},
		Timing: TimingConfig{
			DegreeToDayMultiplier: 1.0, CardinalSignSpeedsUp: true,
		},
	}
}

// ErrorKind distinguishes the configuration-load failure modes callers need
// to branch on.
type ErrorKind string

const ConfigurationError ErrorKind = "ConfigurationError"

// LoadError wraps a configuration load/validation failure with its kind.
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a YAML configuration file and overlays it onto Default(),
// returning a *LoadError with kind ConfigurationError on any I/O, parse or
// validation failure.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{Kind: ConfigurationError, Err: fmt.Errorf("reading config file: %w", err)}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &LoadError{Kind: ConfigurationError, Err: fmt.Errorf("parsing config file: %w", err)}
	}

	if err := validate(cfg); err != nil {
		return Config{}, &LoadError{Kind: ConfigurationError, Err: err}
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Orbs.Conjunction <= 0 {
		return fmt.Errorf("orbs.conjunction must be positive")
	}
	if cfg.Confidence.YesThreshold <= cfg.Confidence.InconclusiveThreshold {
		return fmt.Errorf("confidence.yes_threshold must exceed confidence.inconclusive_threshold")
	}
	switch cfg.Moon.VoidOfCourseMethod {
	case "by_sign", "by_orb", "lilly":
	default:
		return fmt.Errorf("moon.void_of_course_method must be one of by_sign, by_orb, lilly")
	}
	return nil
}
