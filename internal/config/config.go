package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

// ErrInvalidConfig marks every configuration failure; it is fatal before any simulation runs.
var ErrInvalidConfig = crerr.New("invalid configuration")

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"

	PlotHeatmap      = "heatmap"
	PlotDistribution = "distribution"
	PlotComparison   = "comparison"
	PlotStats        = "stats"
)

// Config stores one league's forecast configuration.
type Config struct {
	League          LeagueConfig        `yaml:"league"`
	DataDir         string              `yaml:"data_dir"`
	DataSources     DataSources         `yaml:"data_sources"`
	Columns         Columns             `yaml:"columns"`
	TeamNameMapping map[string]string   `yaml:"team_name_mapping"`
	Simulation      SimulationConfig    `yaml:"simulation"`
	Zones           []Zone              `yaml:"zones" validate:"unique=Name,dive"`
	Output          OutputConfig        `yaml:"output"`
	LogLevel        string              `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat       string              `yaml:"log_format" validate:"omitempty,oneof=json console"`
	Observability   ObservabilityConfig `yaml:"observability"`
}

type LeagueConfig struct {
	Name           string `yaml:"name" validate:"required"`
	MatchesPerTeam int    `yaml:"matches_per_team" validate:"gt=0"`
}

type DataSource struct {
	Filename string `yaml:"filename" validate:"required"`
}

type DataSources struct {
	AllMatches      DataSource `yaml:"all_matches"`
	MatchStatistics DataSource `yaml:"match_statistics"`
}

// FixtureColumns maps canonical fixture columns to the source file's header names.
type FixtureColumns struct {
	HomeTeam    string `yaml:"home_team" validate:"required"`
	AwayTeam    string `yaml:"away_team" validate:"required"`
	Result      string `yaml:"result" validate:"required"`
	RoundNumber string `yaml:"round_number"`
}

// MatchStatsColumns maps canonical match statistics columns to the source file's header names.
type MatchStatsColumns struct {
	Date              string `yaml:"date"`
	HomeTeam          string `yaml:"home_team" validate:"required"`
	AwayTeam          string `yaml:"away_team" validate:"required"`
	HomeGoals         string `yaml:"home_goals" validate:"required"`
	AwayGoals         string `yaml:"away_goals" validate:"required"`
	Result            string `yaml:"result"`
	HomeShots         string `yaml:"home_shots" validate:"required"`
	AwayShots         string `yaml:"away_shots" validate:"required"`
	HomeShotsOnTarget string `yaml:"home_shots_on_target"`
	AwayShotsOnTarget string `yaml:"away_shots_on_target"`
}

type Columns struct {
	AllMatches FixtureColumns    `yaml:"all_matches"`
	MatchStats MatchStatsColumns `yaml:"match_stats"`
}

type SimulationConfig struct {
	NSimulations       int     `yaml:"n_simulations" validate:"gt=0"`
	RandomSeed         int64   `yaml:"random_seed"`
	Workers            int     `yaml:"workers" validate:"gte=0"`
	KeepTables         bool    `yaml:"keep_tables"`
	MinExpectedGoals   float64 `yaml:"min_expected_goals" validate:"gt=0"`
	MaxExpectedGoals   float64 `yaml:"max_expected_goals" validate:"gtfield=MinExpectedGoals"`
	FallbackEfficiency float64 `yaml:"fallback_efficiency" validate:"gte=0,lte=1"`
}

// Zone is a named rank range counted from the top or from the bottom of the table.
type Zone struct {
	Name   string `yaml:"name" validate:"required"`
	Top    int    `yaml:"top" validate:"gte=0,required_without=Bottom,excluded_with=Bottom"`
	Bottom int    `yaml:"bottom" validate:"gte=0,required_without=Top,excluded_with=Top"`
}

type OutputConfig struct {
	Dir        string   `yaml:"dir" validate:"required"`
	Formats    []string `yaml:"formats" validate:"dive,oneof=json csv text"`
	Plots      []string `yaml:"plots" validate:"dive,oneof=heatmap distribution comparison stats"`
	PlotFormat string   `yaml:"plot_format" validate:"oneof=svg png"`
	Teams      []string `yaml:"teams"`
}

type ObservabilityConfig struct {
	TraceFile  string `yaml:"trace_file"`
	CPUProfile string `yaml:"cpu_profile"`
}

// Default returns the configuration used for every key the YAML file omits.
func Default() Config {
	return Config{
		DataDir: "data/raw",
		Columns: Columns{
			AllMatches: FixtureColumns{
				HomeTeam:    "Home Team",
				AwayTeam:    "Away Team",
				Result:      "Result",
				RoundNumber: "Round Number",
			},
			MatchStats: MatchStatsColumns{
				Date:              "Date",
				HomeTeam:          "HomeTeam",
				AwayTeam:          "AwayTeam",
				HomeGoals:         "FTHG",
				AwayGoals:         "FTAG",
				Result:            "FTR",
				HomeShots:         "HS",
				AwayShots:         "AS",
				HomeShotsOnTarget: "HST",
				AwayShotsOnTarget: "AST",
			},
		},
		Simulation: SimulationConfig{
			NSimulations:       1000,
			RandomSeed:         42,
			KeepTables:         true,
			MinExpectedGoals:   0.05,
			MaxExpectedGoals:   20,
			FallbackEfficiency: 0.1,
		},
		Zones: []Zone{
			{Name: "top_4", Top: 4},
			{Name: "top_6", Top: 6},
			{Name: "relegation", Bottom: 3},
		},
		Output: OutputConfig{
			Dir:        "out",
			Formats:    []string{FormatJSON, FormatCSV, FormatText},
			Plots:      []string{PlotHeatmap},
			PlotFormat: "svg",
		},
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads the YAML file at path on top of Default, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, crerr.Mark(crerr.Wrapf(err, "read config %s", path), ErrInvalidConfig)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, crerr.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

// Parse decodes YAML bytes the same way Load does.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, crerr.Mark(crerr.Wrap(err, "decode yaml"), ErrInvalidConfig)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field eagerly and reports all violations at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !crerr.As(err, &fieldErrs) {
		return crerr.Mark(crerr.Wrap(err, "validate config"), ErrInvalidConfig)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problem := fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			problem += fmt.Sprintf(" (%s)", fe.Param())
		}
		problems = append(problems, problem)
	}

	return crerr.Mark(crerr.Newf("validate config: %s", strings.Join(problems, "; ")), ErrInvalidConfig)
}

// DataPath resolves a data source filename against DataDir.
func (c Config) DataPath(source DataSource) string {
	if filepath.IsAbs(source.Filename) || c.DataDir == "" {
		return source.Filename
	}
	return filepath.Join(c.DataDir, source.Filename)
}

func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

func (c *Config) normalize() {
	c.League.Name = strings.TrimSpace(c.League.Name)
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	c.Output.PlotFormat = strings.ToLower(strings.TrimSpace(c.Output.PlotFormat))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	for i := range c.Output.Formats {
		c.Output.Formats[i] = strings.ToLower(strings.TrimSpace(c.Output.Formats[i]))
	}
	for i := range c.Output.Plots {
		c.Output.Plots[i] = strings.ToLower(strings.TrimSpace(c.Output.Plots[i]))
	}

	if len(c.TeamNameMapping) > 0 {
		mapping := make(map[string]string, len(c.TeamNameMapping))
		for from, to := range c.TeamNameMapping {
			mapping[strings.TrimSpace(from)] = strings.TrimSpace(to)
		}
		c.TeamNameMapping = mapping
	}
}

func applyEnvOverrides(cfg *Config) error {
	n, err := getEnvAsInt("FORECAST_N_SIMULATIONS", cfg.Simulation.NSimulations)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "parse FORECAST_N_SIMULATIONS"), ErrInvalidConfig)
	}
	cfg.Simulation.NSimulations = n

	workers, err := getEnvAsInt("FORECAST_WORKERS", cfg.Simulation.Workers)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "parse FORECAST_WORKERS"), ErrInvalidConfig)
	}
	cfg.Simulation.Workers = workers

	if raw := strings.TrimSpace(os.Getenv("FORECAST_RANDOM_SEED")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return crerr.Mark(crerr.Wrap(err, "parse FORECAST_RANDOM_SEED"), ErrInvalidConfig)
		}
		cfg.Simulation.RandomSeed = seed
	}

	cfg.DataDir = getEnv("FORECAST_DATA_DIR", cfg.DataDir)
	cfg.Output.Dir = getEnv("FORECAST_OUTPUT_DIR", cfg.Output.Dir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
