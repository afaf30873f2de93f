package app

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"

	"github.com/riskibarqy/league-forecast/internal/config"
	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/forecast"
	"github.com/riskibarqy/league-forecast/internal/domain/matchmodel"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
	"github.com/riskibarqy/league-forecast/internal/infrastructure/report"
	"github.com/riskibarqy/league-forecast/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-forecast/internal/infrastructure/repository/csvfile"
	idgen "github.com/riskibarqy/league-forecast/internal/platform/id"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
	"github.com/riskibarqy/league-forecast/internal/usecase"
)

var appTracer = otel.Tracer("league-forecast/internal/app")

// Forecaster wires configuration, data sources and use cases for the CLI commands.
type Forecaster struct {
	cfg     config.Config
	service *usecase.ForecastService
	logger  *logging.Logger
}

// NewForecaster reads both data sources from the CSV files named in cfg.
func NewForecaster(cfg config.Config, logger *logging.Logger) *Forecaster {
	reader := csvfile.NewReader(nil)
	names := csvfile.TeamNames(cfg.TeamNameMapping)

	fixtureRepo := csvfile.NewFixtureRepository(
		reader,
		cfg.DataPath(cfg.DataSources.AllMatches),
		csvfile.FixtureColumns(cfg.Columns.AllMatches),
		names,
	)
	matchRepo := csvfile.NewMatchRepository(
		reader,
		cfg.DataPath(cfg.DataSources.MatchStatistics),
		csvfile.MatchStatsColumns(cfg.Columns.MatchStats),
		names,
	)

	return NewForecasterWithRepositories(cfg, fixtureRepo, matchRepo, logger)
}

func NewForecasterWithRepositories(
	cfg config.Config,
	fixtureRepo fixture.Repository,
	matchRepo matchstats.Repository,
	logger *logging.Logger,
) *Forecaster {
	if logger == nil {
		logger = logging.Default()
	}

	statistics := usecase.NewStatisticsService(
		cfg.Simulation.FallbackEfficiency,
		cfg.League.MatchesPerTeam,
		logger,
	)
	simulation := usecase.NewSimulationService(
		cfg.Simulation.Workers,
		matchmodel.Bounds{Min: cfg.Simulation.MinExpectedGoals, Max: cfg.Simulation.MaxExpectedGoals},
		logger,
	)

	var zones []forecast.Zone
	for _, z := range cfg.Zones {
		zones = append(zones, forecast.Zone{Name: z.Name, Top: z.Top, Bottom: z.Bottom})
	}

	service := usecase.NewForecastService(
		cache.NewFixtureRepository(fixtureRepo, nil),
		cache.NewMatchRepository(matchRepo, nil),
		statistics,
		simulation,
		zones,
		idgen.NewRunIDGenerator(),
		logger,
	)

	return &Forecaster{cfg: cfg, service: service, logger: logger}
}

// Predict runs the full forecast, writes the configured reports and plots and
// prints the summary to out.
func (f *Forecaster) Predict(ctx context.Context, out io.Writer) (usecase.Forecast, error) {
	ctx, span := appTracer.Start(ctx, "app.Predict")
	defer span.End()

	result, err := f.service.Predict(ctx, usecase.PredictInput{
		Trials:       f.cfg.Simulation.NSimulations,
		Seed:         uint64(f.cfg.Simulation.RandomSeed),
		RetainTables: f.cfg.Simulation.KeepTables,
	})
	if err != nil {
		return usecase.Forecast{}, err
	}

	in := report.Input{
		RunID:         result.RunID,
		GeneratedAt:   result.GeneratedAt,
		League:        f.cfg.League.Name,
		Seed:          result.Seed,
		Matrix:        result.Simulation.Matrix,
		Current:       result.Data.Current,
		Summaries:     result.Summaries,
		MeanHomeGoals: result.Simulation.MeanHomeGoals,
		MeanAwayGoals: result.Simulation.MeanAwayGoals,
	}
	written, err := report.Save(report.Options{
		Dir:        f.cfg.Output.Dir,
		Formats:    f.cfg.Output.Formats,
		Plots:      f.cfg.Output.Plots,
		PlotFormat: f.cfg.Output.PlotFormat,
		Teams:      f.cfg.Output.Teams,
	}, in, result.Data.Stats)
	if err != nil {
		return usecase.Forecast{}, fmt.Errorf("write reports: %w", err)
	}
	for _, path := range written {
		f.logger.InfoContext(ctx, "report written", "run_id", result.RunID, "path", path)
	}

	if _, err := fmt.Fprintf(out, "%s: %d simulations, seed %d, run %s\n\n",
		f.cfg.League.Name, result.Simulation.Matrix.Trials, result.Seed, result.RunID); err != nil {
		return usecase.Forecast{}, err
	}
	if err := report.WriteSummary(out, result.Summaries); err != nil {
		return usecase.Forecast{}, fmt.Errorf("print summary: %w", err)
	}

	return result, nil
}

// Table prints the current league table built from played fixtures.
func (f *Forecaster) Table(ctx context.Context, out io.Writer) error {
	ctx, span := appTracer.Start(ctx, "app.Table")
	defer span.End()

	prepared, err := f.service.Prepare(ctx)
	if err != nil {
		return err
	}
	return report.WriteTable(out, prepared.Current)
}

// Stats prints per-team venue statistics and efficiencies.
func (f *Forecaster) Stats(ctx context.Context, out io.Writer) error {
	ctx, span := appTracer.Start(ctx, "app.Stats")
	defer span.End()

	prepared, err := f.service.Prepare(ctx)
	if err != nil {
		return err
	}
	return report.WriteStatistics(out, prepared.Stats, prepared.Averages)
}
