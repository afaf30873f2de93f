package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

const minimalYAML = `
league:
  name: Premier League
  matches_per_team: 38
data_sources:
  all_matches:
    filename: fixtures.csv
  match_statistics:
    filename: stats.csv
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Simulation.NSimulations != 1000 {
		t.Fatalf("unexpected NSimulations: %d", cfg.Simulation.NSimulations)
	}
	if cfg.Simulation.RandomSeed != 42 {
		t.Fatalf("unexpected RandomSeed: %d", cfg.Simulation.RandomSeed)
	}
	if cfg.Simulation.MinExpectedGoals != 0.05 || cfg.Simulation.MaxExpectedGoals != 20 {
		t.Fatalf("unexpected expected-goal bounds: %+v", cfg.Simulation)
	}
	if cfg.Columns.MatchStats.HomeShots != "HS" {
		t.Fatalf("unexpected default shots column: %q", cfg.Columns.MatchStats.HomeShots)
	}
	if len(cfg.Zones) != 3 || cfg.Zones[2].Name != "relegation" || cfg.Zones[2].Bottom != 3 {
		t.Fatalf("unexpected default zones: %+v", cfg.Zones)
	}
	if got := cfg.DataPath(cfg.DataSources.AllMatches); got != filepath.Join("data/raw", "fixtures.csv") {
		t.Fatalf("unexpected data path: %s", got)
	}
	if cfg.Level() != logging.LevelInfo {
		t.Fatalf("unexpected level: %v", cfg.Level())
	}
}

func TestLoad_ParsesFullDocument(t *testing.T) {
	body := minimalYAML + `
columns:
  all_matches:
    home_team: Home
    away_team: Away
    result: Score
    round_number: Round
  match_stats:
    home_team: HomeTeam
    away_team: AwayTeam
    home_goals: FTHG
    away_goals: FTAG
    home_shots: HS
    away_shots: AS
team_name_mapping:
  " Man United ": "Man Utd"
simulation:
  n_simulations: 250
  random_seed: 7
  workers: 3
zones:
  - name: champions
    top: 1
output:
  dir: reports
  formats: [JSON]
  plots: [heatmap, stats]
  plot_format: png
log_level: debug
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Columns.AllMatches.Result != "Score" {
		t.Fatalf("unexpected result column: %q", cfg.Columns.AllMatches.Result)
	}
	if cfg.TeamNameMapping["Man United"] != "Man Utd" {
		t.Fatalf("expected trimmed mapping, got %+v", cfg.TeamNameMapping)
	}
	if cfg.Simulation.NSimulations != 250 || cfg.Simulation.RandomSeed != 7 || cfg.Simulation.Workers != 3 {
		t.Fatalf("unexpected simulation config: %+v", cfg.Simulation)
	}
	if len(cfg.Zones) != 1 || cfg.Zones[0].Top != 1 {
		t.Fatalf("expected zones to replace defaults, got %+v", cfg.Zones)
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != FormatJSON {
		t.Fatalf("unexpected formats: %+v", cfg.Output.Formats)
	}
	if cfg.Level() != logging.LevelDebug {
		t.Fatalf("unexpected level: %v", cfg.Level())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FORECAST_N_SIMULATIONS", "5000")
	t.Setenv("FORECAST_RANDOM_SEED", "-3")
	t.Setenv("FORECAST_OUTPUT_DIR", "/tmp/forecast")

	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Simulation.NSimulations != 5000 {
		t.Fatalf("unexpected NSimulations: %d", cfg.Simulation.NSimulations)
	}
	if cfg.Simulation.RandomSeed != -3 {
		t.Fatalf("unexpected RandomSeed: %d", cfg.Simulation.RandomSeed)
	}
	if cfg.Output.Dir != "/tmp/forecast" {
		t.Fatalf("unexpected output dir: %s", cfg.Output.Dir)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "missing league name",
			body:    strings.Replace(minimalYAML, "name: Premier League", "name: \"\"", 1),
			wantMsg: "League.Name",
		},
		{
			name:    "zero simulations",
			body:    minimalYAML + "simulation:\n  n_simulations: 0\n",
			wantMsg: "NSimulations",
		},
		{
			name:    "unknown key",
			body:    minimalYAML + "simulations: 10\n",
			wantMsg: "decode yaml",
		},
		{
			name:    "zone with top and bottom",
			body:    minimalYAML + "zones:\n  - {name: odd, top: 2, bottom: 2}\n",
			wantMsg: "Zones[0]",
		},
		{
			name:    "duplicate zone names",
			body:    minimalYAML + "zones:\n  - {name: a, top: 2}\n  - {name: a, bottom: 2}\n",
			wantMsg: "Zones",
		},
		{
			name:    "inverted goal bounds",
			body:    minimalYAML + "simulation:\n  min_expected_goals: 5\n  max_expected_goals: 1\n",
			wantMsg: "MaxExpectedGoals",
		},
		{
			name:    "bad plot format",
			body:    minimalYAML + "output:\n  plot_format: gif\n",
			wantMsg: "PlotFormat",
		},
		{
			name:    "bad env seed",
			body:    minimalYAML,
			env:     map[string]string{"FORECAST_RANDOM_SEED": "abc"},
			wantMsg: "FORECAST_RANDOM_SEED",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !crerr.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in error, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !crerr.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
