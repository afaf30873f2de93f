package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/leaguestanding"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

// DataSet is the raw input of one forecast run.
type DataSet struct {
	Fixtures []fixture.Fixture
	Matches  []matchstats.Match
}

// Preprocessed is everything the simulation needs, derived from a DataSet.
type Preprocessed struct {
	Roster      []string
	Current     leaguestanding.Table
	Stats       []teamstats.TeamStatistics
	StatsByTeam map[string]teamstats.TeamStatistics
	Averages    teamstats.LeagueAverages
	Played      []leaguestanding.Result
	Unplayed    []fixture.Fixture
}

type StatisticsService struct {
	fallbackEfficiency float64
	matchesPerTeam     int
	logger             *logging.Logger
}

func NewStatisticsService(fallbackEfficiency float64, matchesPerTeam int, logger *logging.Logger) *StatisticsService {
	if logger == nil {
		logger = logging.Default()
	}
	if fallbackEfficiency <= 0 || fallbackEfficiency > 1 {
		fallbackEfficiency = teamstats.DefaultFallbackEfficiency
	}
	return &StatisticsService{
		fallbackEfficiency: fallbackEfficiency,
		matchesPerTeam:     matchesPerTeam,
		logger:             logger,
	}
}

func (s *StatisticsService) Preprocess(ctx context.Context, data DataSet) (Preprocessed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Preprocess")
	defer span.End()

	if len(data.Fixtures) == 0 {
		return Preprocessed{}, fmt.Errorf("%w: no fixtures loaded", ErrInvalidInput)
	}
	for _, item := range data.Fixtures {
		if strings.TrimSpace(item.HomeTeam) == "" || strings.TrimSpace(item.AwayTeam) == "" {
			return Preprocessed{}, fmt.Errorf("%w: fixture %s has an empty team name", ErrInvalidInput, item)
		}
		if item.HomeTeam == item.AwayTeam {
			return Preprocessed{}, fmt.Errorf("%w: fixture %s has a team playing itself", ErrInvalidInput, item)
		}
	}

	roster := fixture.Teams(data.Fixtures)
	s.checkMatchesPerTeam(ctx, data.Fixtures, roster)

	playedFixtures, unplayed := fixture.Partition(data.Fixtures)
	played := make([]leaguestanding.Result, 0, len(playedFixtures))
	for _, item := range playedFixtures {
		result, _ := leaguestanding.ResultFromFixture(item)
		played = append(played, result)
	}

	current, err := leaguestanding.Calculate(roster, played)
	if err != nil {
		return Preprocessed{}, fmt.Errorf("calculate current table: %w", err)
	}

	stats, averages := teamstats.Calculate(data.Matches, s.fallbackEfficiency)
	byTeam := teamstats.ByTeam(stats)
	for _, item := range stats {
		if item.HasFallback() {
			s.logger.DebugContext(ctx, "team statistics use league fallback",
				"team", item.Team,
				"home_matches", item.Home.Matches,
				"away_matches", item.Away.Matches,
			)
		}
	}

	if err := requireStats(unplayed, byTeam); err != nil {
		return Preprocessed{}, err
	}

	s.logger.InfoContext(ctx, "statistics preprocessed",
		"teams", len(roster),
		"played", len(played),
		"unplayed", len(unplayed),
		"stat_rows", len(data.Matches),
	)

	return Preprocessed{
		Roster:      roster,
		Current:     current,
		Stats:       stats,
		StatsByTeam: byTeam,
		Averages:    averages,
		Played:      played,
		Unplayed:    unplayed,
	}, nil
}

func (s *StatisticsService) checkMatchesPerTeam(ctx context.Context, fixtures []fixture.Fixture, roster []string) {
	if s.matchesPerTeam <= 0 {
		return
	}
	counts := make(map[string]int, len(roster))
	for _, item := range fixtures {
		counts[item.HomeTeam]++
		counts[item.AwayTeam]++
	}
	for _, team := range roster {
		if counts[team] != s.matchesPerTeam {
			s.logger.WarnContext(ctx, "fixture count differs from configured matches per team",
				"team", team,
				"fixtures", counts[team],
				"matches_per_team", s.matchesPerTeam,
			)
		}
	}
}

// requireStats rejects unplayed fixtures naming a team without statistics.
func requireStats(unplayed []fixture.Fixture, stats map[string]teamstats.TeamStatistics) error {
	for _, item := range unplayed {
		for _, team := range []string{item.HomeTeam, item.AwayTeam} {
			if _, ok := stats[team]; !ok {
				return fmt.Errorf("%w: %s in fixture %s has no match statistics", ErrUnknownTeam, team, item)
			}
		}
	}
	return nil
}
