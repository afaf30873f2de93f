package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/forecast"
	"github.com/riskibarqy/league-forecast/internal/domain/leaguestanding"
	"github.com/riskibarqy/league-forecast/internal/domain/matchmodel"
	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

// cancelCheckInterval is how many trials a worker runs between context checks.
const cancelCheckInterval = 64

type SimulationInput struct {
	Roster       []string
	Played       []leaguestanding.Result
	Unplayed     []fixture.Fixture
	Stats        map[string]teamstats.TeamStatistics
	Trials       int
	Seed         uint64
	RetainTables bool
}

// SimulationResult holds the outcome of all trials. Matrix rows follow the
// current table order. Tables is indexed by trial and empty unless retained.
type SimulationResult struct {
	Tables        []leaguestanding.Table
	Matrix        forecast.PositionMatrix
	MeanHomeGoals float64
	MeanAwayGoals float64
}

type SimulationService struct {
	workers int
	bounds  matchmodel.Bounds
	logger  *logging.Logger
}

func NewSimulationService(workers int, bounds matchmodel.Bounds, logger *logging.Logger) *SimulationService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &SimulationService{
		workers: workers,
		bounds:  bounds,
		logger:  logger,
	}
}

// simulatedFixture is an unplayed fixture resolved to roster indices with its
// Poisson rates computed once for all trials.
type simulatedFixture struct {
	home       int
	away       int
	lambdaHome float64
	lambdaAway float64
}

type trialRange struct {
	from int
	to   int
}

type workerOutput struct {
	matrix    forecast.PositionMatrix
	homeGoals int64
	awayGoals int64
}

func (s *SimulationService) Run(ctx context.Context, input SimulationInput) (SimulationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.Run")
	defer span.End()

	if input.Trials <= 0 {
		return SimulationResult{}, fmt.Errorf("%w: trials must be > 0, got %d", ErrInvalidInput, input.Trials)
	}
	if len(input.Roster) == 0 {
		return SimulationResult{}, fmt.Errorf("%w: roster is empty", ErrInvalidInput)
	}
	if err := s.bounds.Validate(); err != nil {
		return SimulationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	base := leaguestanding.NewTally(input.Roster)
	for _, result := range input.Played {
		if err := base.Add(result); err != nil {
			return SimulationResult{}, fmt.Errorf("%w: played result %s-%s: %w", ErrUnknownTeam, result.HomeTeam, result.AwayTeam, err)
		}
	}

	fixtures, err := s.prepareFixtures(base, input)
	if err != nil {
		return SimulationResult{}, err
	}

	// Rows follow the current table; rowToRoster maps each row to its tally index.
	teams := base.Table().Teams()
	rowToRoster := make([]int, len(teams))
	for row, team := range teams {
		rowToRoster[row], _ = base.Index(team)
	}

	workerCount := min(s.workers, input.Trials)
	ranges := splitTrials(input.Trials, workerCount)
	outputs := make([]workerOutput, len(ranges))
	var tables []leaguestanding.Table
	if input.RetainTables {
		tables = make([]leaguestanding.Table, input.Trials)
	}

	span.SetAttributes(
		attribute.Int("simulation.trials", input.Trials),
		attribute.Int("simulation.workers", workerCount),
		attribute.Int("simulation.unplayed", len(fixtures)),
	)
	s.logger.InfoContext(ctx, "simulation started",
		"trials", input.Trials,
		"workers", workerCount,
		"teams", len(teams),
		"unplayed", len(fixtures),
		"seed", input.Seed,
	)
	start := time.Now()

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for w, r := range ranges {
		w, r := w, r
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outputs[w] = runTrials(ctx, r, input.Seed, base, fixtures, teams, rowToRoster, tables)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return SimulationResult{}, fmt.Errorf("submit trials to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.WarnContext(ctx, "simulation cancelled", "error", err)
		return SimulationResult{}, fmt.Errorf("simulation cancelled: %w", err)
	}

	matrix := forecast.NewPositionMatrix(teams)
	var homeGoals, awayGoals int64
	for _, out := range outputs {
		if err := matrix.Merge(out.matrix); err != nil {
			return SimulationResult{}, fmt.Errorf("merge worker counts: %w", err)
		}
		homeGoals += out.homeGoals
		awayGoals += out.awayGoals
	}

	result := SimulationResult{
		Tables: tables,
		Matrix: matrix,
	}
	if played := int64(len(fixtures)) * int64(input.Trials); played > 0 {
		result.MeanHomeGoals = float64(homeGoals) / float64(played)
		result.MeanAwayGoals = float64(awayGoals) / float64(played)
	}

	s.logger.InfoContext(ctx, "simulation finished",
		"trials", matrix.Trials,
		"duration_ms", time.Since(start).Milliseconds(),
		"mean_home_goals", result.MeanHomeGoals,
		"mean_away_goals", result.MeanAwayGoals,
	)
	return result, nil
}

func (s *SimulationService) prepareFixtures(base *leaguestanding.Tally, input SimulationInput) ([]simulatedFixture, error) {
	out := make([]simulatedFixture, 0, len(input.Unplayed))
	for _, item := range input.Unplayed {
		home, ok := base.Index(item.HomeTeam)
		if !ok {
			return nil, fmt.Errorf("%w: %s in fixture %s is not on the roster", ErrUnknownTeam, item.HomeTeam, item)
		}
		away, ok := base.Index(item.AwayTeam)
		if !ok {
			return nil, fmt.Errorf("%w: %s in fixture %s is not on the roster", ErrUnknownTeam, item.AwayTeam, item)
		}
		homeStats, ok := input.Stats[item.HomeTeam]
		if !ok {
			return nil, fmt.Errorf("%w: %s in fixture %s has no match statistics", ErrUnknownTeam, item.HomeTeam, item)
		}
		awayStats, ok := input.Stats[item.AwayTeam]
		if !ok {
			return nil, fmt.Errorf("%w: %s in fixture %s has no match statistics", ErrUnknownTeam, item.AwayTeam, item)
		}

		lambdaHome, lambdaAway := matchmodel.ExpectedGoals(matchmodel.InputFor(homeStats, awayStats), s.bounds)
		out = append(out, simulatedFixture{
			home:       home,
			away:       away,
			lambdaHome: lambdaHome,
			lambdaAway: lambdaAway,
		})
	}
	return out, nil
}

// runTrials plays trials [r.from, r.to). Trial i always draws from
// PCG(seed, i), so results do not depend on how trials are split.
func runTrials(
	ctx context.Context,
	r trialRange,
	seed uint64,
	base *leaguestanding.Tally,
	fixtures []simulatedFixture,
	teams []string,
	rowToRoster []int,
	tables []leaguestanding.Table,
) workerOutput {
	out := workerOutput{matrix: forecast.NewPositionMatrix(teams)}
	src := rand.NewPCG(seed, 0)
	tally := base.Clone()
	positions := make([]int, len(teams))
	order := make([]int, len(teams))
	rowPositions := make([]int, len(teams))

	for i := r.from; i < r.to; i++ {
		if (i-r.from)%cancelCheckInterval == 0 && ctx.Err() != nil {
			return out
		}

		src.Seed(seed, uint64(i))
		tally.Reset(base)
		for _, fx := range fixtures {
			homeGoals, awayGoals := matchmodel.Draw(src, fx.lambdaHome, fx.lambdaAway)
			tally.AddIndexed(fx.home, fx.away, homeGoals, awayGoals)
			out.homeGoals += int64(homeGoals)
			out.awayGoals += int64(awayGoals)
		}

		positions = tally.Positions(positions, order)
		for row, idx := range rowToRoster {
			rowPositions[row] = positions[idx]
		}
		out.matrix.RecordPositions(rowPositions)

		if tables != nil {
			tables[i] = tally.Table()
		}
	}
	return out
}

// splitTrials divides n trials into at most parts contiguous ranges.
func splitTrials(n, parts int) []trialRange {
	if parts <= 0 {
		parts = 1
	}
	size := n / parts
	extra := n % parts
	out := make([]trialRange, 0, parts)
	from := 0
	for p := 0; p < parts; p++ {
		to := from + size
		if p < extra {
			to++
		}
		if to > from {
			out = append(out, trialRange{from: from, to: to})
		}
		from = to
	}
	return out
}
