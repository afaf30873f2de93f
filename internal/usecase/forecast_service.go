package usecase

import (
	"context"
	"fmt"
	"time"

	concpool "github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/forecast"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
	idgen "github.com/riskibarqy/league-forecast/internal/platform/id"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

type PredictInput struct {
	Trials       int
	Seed         uint64
	RetainTables bool
}

// Forecast is the complete output of one prediction run.
type Forecast struct {
	RunID       string
	GeneratedAt time.Time
	Seed        uint64
	Data        Preprocessed
	Simulation  SimulationResult
	Summaries   []forecast.Summary
	Zones       []forecast.Zone
}

// ForecastService runs the pipeline: load, preprocess, simulate, summarize.
type ForecastService struct {
	fixtureRepo fixture.Repository
	matchRepo   matchstats.Repository
	statistics  *StatisticsService
	simulation  *SimulationService
	zones       []forecast.Zone
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewForecastService(
	fixtureRepo fixture.Repository,
	matchRepo matchstats.Repository,
	statistics *StatisticsService,
	simulation *SimulationService,
	zones []forecast.Zone,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ForecastService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewRunIDGenerator()
	}
	if zones == nil {
		zones = forecast.DefaultZones()
	}
	return &ForecastService{
		fixtureRepo: fixtureRepo,
		matchRepo:   matchRepo,
		statistics:  statistics,
		simulation:  simulation,
		zones:       zones,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// Load reads both data sources concurrently. The first failure cancels the other.
func (s *ForecastService) Load(ctx context.Context) (DataSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForecastService.Load")
	defer span.End()

	var data DataSet
	p := concpool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		fixtures, err := s.fixtureRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		data.Fixtures = fixtures
		return nil
	})
	p.Go(func(ctx context.Context) error {
		matches, err := s.matchRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list match statistics: %w", err)
		}
		data.Matches = matches
		return nil
	})
	if err := p.Wait(); err != nil {
		return DataSet{}, err
	}

	s.logger.DebugContext(ctx, "data sources loaded",
		"fixtures", len(data.Fixtures),
		"matches", len(data.Matches),
	)
	return data, nil
}

// Prepare loads and preprocesses without simulating.
func (s *ForecastService) Prepare(ctx context.Context) (Preprocessed, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return Preprocessed{}, err
	}
	return s.statistics.Preprocess(ctx, data)
}

func (s *ForecastService) Predict(ctx context.Context, input PredictInput) (Forecast, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForecastService.Predict")
	defer span.End()

	runID, err := s.idGen.NewID()
	if err != nil {
		return Forecast{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := s.logger.With("run_id", runID)

	prepared, err := s.Prepare(ctx)
	if err != nil {
		return Forecast{}, err
	}

	result, err := s.simulation.Run(ctx, SimulationInput{
		Roster:       prepared.Roster,
		Played:       prepared.Played,
		Unplayed:     prepared.Unplayed,
		Stats:        prepared.StatsByTeam,
		Trials:       input.Trials,
		Seed:         input.Seed,
		RetainTables: input.RetainTables,
	})
	if err != nil {
		return Forecast{}, fmt.Errorf("run simulation: %w", err)
	}

	current := make(map[string]int, len(prepared.Current))
	for _, row := range prepared.Current {
		current[row.Team] = row.Position
	}
	summaries := forecast.Summarize(result.Matrix, s.zones, current)

	logger.InfoContext(ctx, "forecast completed",
		"teams", len(prepared.Roster),
		"trials", result.Matrix.Trials,
	)

	return Forecast{
		RunID:       runID,
		GeneratedAt: s.now().UTC(),
		Seed:        input.Seed,
		Data:        prepared,
		Simulation:  result,
		Summaries:   summaries,
		Zones:       s.zones,
	}, nil
}
