package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sabaa/horary/chartbuilder"
	"github.com/sabaa/horary/ephemeris"
	"github.com/sabaa/horary/geocode"
	"github.com/sabaa/horary/horaryconfig"
	"github.com/sabaa/horary/logging"
	"github.com/sabaa/horary/tzresolve"
)

var (
	configPath   string
	outputFormat string
	timeout      time.Duration
	verbose      bool
)

const version = "1.0.0"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "horary-cli",
		Short: "Traditional horary astrology judgment from the command line",
		Long: `Horary CLI - judge a horary question the way Lilly would.

Given a question, a place, and a moment, the engine casts the chart,
assigns significators, searches for perfection (direct aspect, translation
or collection of light, mutual reception), checks prohibitions and the
Moon's condition, and returns a YES/NO/INCONCLUSIVE verdict with the
reasoning chain behind it.

Examples:
  # Judge a question for a past moment
  horary-cli judge "Will he marry me?" --location "Washington, DC" --date 03/02/2004 --time 22:00

  # Judge with the current moment and explicit coordinates
  horary-cli judge "Will I get the job?" --lat 51.5074 --lon -0.1278 --now

  # Print the cast chart without judging
  horary-cli chart --location London --date 2024-06-15 --time 12:00

  # List the places the built-in gazetteer resolves
  horary-cli locations`,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "Judgment timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(createJudgeCommand())
	rootCmd.AddCommand(createChartCommand())
	rootCmd.AddCommand(createLocationsCommand())
	rootCmd.AddCommand(createHealthCommand())
	rootCmd.AddCommand(createVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (horaryconfig.Config, error) {
	if configPath == "" {
		return horaryconfig.Default(), nil
	}
	return horaryconfig.Load(configPath)
}

func newEngine() (*chartbuilder.Engine, error) {
	if verbose {
		logging.Logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	manager := ephemeris.NewManager(ephemeris.NewAnalyticalProvider(), nil, nil)
	builder := chartbuilder.New(cfg, geocode.NewGazetteer(), tzresolve.NewResolver(), manager)
	return chartbuilder.NewEngine(cfg, builder), nil
}

type settingsFlags struct {
	location string
	lat, lon float64
	date     string
	timeStr  string
	tz       string
	now      bool

	ignoreRadicality bool
	ignoreVoidMoon   bool
	ignoreCombustion bool
	ignoreSaturn7th  bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "Location name (resolved by the built-in gazetteer)")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "Latitude (overrides --location)")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "Longitude (overrides --location)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Question date (DD/MM/YYYY, YYYY-MM-DD, ...)")
	cmd.Flags().StringVar(&f.timeStr, "time", "", "Question time (HH:MM)")
	cmd.Flags().StringVar(&f.tz, "timezone", "", "IANA timezone (resolved from coordinates when empty)")
	cmd.Flags().BoolVar(&f.now, "now", false, "Use the current moment")
	cmd.Flags().BoolVar(&f.ignoreRadicality, "ignore-radicality", false, "Judge even a non-radical chart")
	cmd.Flags().BoolVar(&f.ignoreVoidMoon, "ignore-void-moon", false, "Suppress the void-of-course Moon denial")
	cmd.Flags().BoolVar(&f.ignoreCombustion, "ignore-combustion", false, "Suppress combustion penalties")
	cmd.Flags().BoolVar(&f.ignoreSaturn7th, "ignore-saturn-7th", false, "Suppress the Saturn-in-7th disqualifier")
}

func (f *settingsFlags) toSettings(cmd *cobra.Command) chartbuilder.Settings {
	s := chartbuilder.Settings{
		Location:         f.location,
		Date:             f.date,
		Time:             f.timeStr,
		Timezone:         f.tz,
		UseCurrentTime:   f.now,
		IgnoreRadicality: f.ignoreRadicality,
		IgnoreVoidMoon:   f.ignoreVoidMoon,
		IgnoreCombustion: f.ignoreCombustion,
		IgnoreSaturn7th:  f.ignoreSaturn7th,
	}
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		lat, lon := f.lat, f.lon
		s.Latitude = &lat
		s.Longitude = &lon
	}
	return s
}

func createJudgeCommand() *cobra.Command {
	flags := &settingsFlags{}
	cmd := &cobra.Command{
		Use:   "judge <question>",
		Short: "Judge a horary question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			out := engine.Judge(ctx, strings.Join(args, " "), flags.toSettings(cmd))

			switch outputFormat {
			case "json":
				return outputJSON(out)
			case "yaml":
				return outputYAML(out)
			default:
				return outputText(out)
			}
		},
	}
	flags.register(cmd)
	return cmd
}

func createChartCommand() *cobra.Command {
	flags := &settingsFlags{}
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Cast and print a chart without judging a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			// A neutral question exercises the full chart pipeline; only
			// the chart block is printed.
			out := engine.Judge(ctx, "What does this chart show?", flags.toSettings(cmd))
			if out.ChartData == nil {
				return fmt.Errorf("chart could not be cast: %s", out.Error)
			}

			switch outputFormat {
			case "json":
				return outputJSON(out.ChartData)
			case "yaml":
				return outputYAML(out.ChartData)
			default:
				printChartTable(out)
				return nil
			}
		},
	}
	flags.register(cmd)
	return cmd
}

func createLocationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the places the built-in gazetteer resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Available locations:")
			fmt.Printf("%-28s %s\n", "NAME", "COORDINATES")
			for _, loc := range geocode.NewGazetteer().Known() {
				fmt.Printf("%-28s %.4f, %.4f\n", loc.Name, loc.Latitude, loc.Longitude)
			}
			return nil
		},
	}
}

func createHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the engine's collaborators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if _, err := loadConfig(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			fmt.Println("config:    ok")

			provider := ephemeris.NewAnalyticalProvider()
			if !provider.IsAvailable(ctx) {
				return fmt.Errorf("ephemeris provider %s unavailable", provider.GetProviderName())
			}
			start, end := provider.GetDataRange()
			fmt.Printf("ephemeris: ok (%s, JD %.1f-%.1f)\n", provider.GetProviderName(), float64(start), float64(end))

			if _, err := geocode.NewGazetteer().Geocode(ctx, "London"); err != nil {
				return fmt.Errorf("gazetteer: %w", err)
			}
			fmt.Println("gazetteer: ok")
			return nil
		},
	}
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("horary-cli %s\n", version)
		},
	}
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func outputText(out chartbuilder.Output) error {
	fmt.Printf("Question:   %s\n", out.Question)
	fmt.Printf("Judgment:   %s (%d%%)\n", out.Judgment, out.Confidence)
	if out.Timing != nil {
		fmt.Printf("Timing:     %s\n", *out.Timing)
	}
	fmt.Println("Reasoning:")
	for i, r := range out.Reasoning {
		fmt.Printf("  %d. %s\n", i+1, r)
	}
	if out.Error != "" {
		fmt.Printf("Error:      %s (%s)\n", out.Error, out.ErrorType)
	}
	return nil
}

func printChartTable(out chartbuilder.Output) {
	cd := out.ChartData
	if out.TimezoneInfo != nil {
		fmt.Printf("Chart for %s at %s (%s)\n\n",
			out.TimezoneInfo.LocationName, out.TimezoneInfo.LocalTime, out.TimezoneInfo.Timezone)
	}
	fmt.Printf("Ascendant: %.2f  Midheaven: %.2f\n\n", cd.Ascendant, cd.Midheaven)
	fmt.Printf("%-10s %-12s %-6s %-10s %-6s %s\n", "PLANET", "SIGN", "HOUSE", "LONGITUDE", "DIG", "SOLAR")
	for name, p := range cd.Planets {
		fmt.Printf("%-10s %-12s %-6d %-10.2f %-6d %s\n",
			name, p.Sign, p.House, p.Longitude, p.DignityScore, p.SolarCondition)
	}
	fmt.Println("\nAspects:")
	for _, a := range cd.Aspects {
		state := "separating"
		if a.Applying {
			state = "applying"
		}
		fmt.Printf("  %s %s %s (%.2f orb, %s)\n", a.Planet1, a.Aspect, a.Planet2, a.Orb, state)
	}
}
