package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/matchmodel"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

type stubFixtureRepository struct {
	fixtures []fixture.Fixture
	err      error
}

func (s *stubFixtureRepository) List(context.Context) ([]fixture.Fixture, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fixtures, nil
}

type stubMatchRepository struct {
	matches []matchstats.Match
	err     error
}

func (s *stubMatchRepository) List(context.Context) ([]matchstats.Match, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.matches, nil
}

type stubIDGenerator struct {
	id string
}

func (s stubIDGenerator) NewID() (string, error) {
	return s.id, nil
}

func intp(v int) *int { return &v }

func played(round int, home, away string, hg, ag int) fixture.Fixture {
	return fixture.Fixture{Round: round, HomeTeam: home, AwayTeam: away, Result: &fixture.Score{Home: hg, Away: ag}}
}

func unplayed(round int, home, away string) fixture.Fixture {
	return fixture.Fixture{Round: round, HomeTeam: home, AwayTeam: away}
}

// fourTeamSeason is a double round robin with the first three rounds played.
func fourTeamSeason() []fixture.Fixture {
	return []fixture.Fixture{
		played(1, "Arsenal", "Burnley", 2, 0),
		played(1, "Chelsea", "Everton", 1, 1),
		played(2, "Burnley", "Chelsea", 0, 3),
		played(2, "Everton", "Arsenal", 1, 2),
		played(3, "Arsenal", "Chelsea", 1, 1),
		played(3, "Burnley", "Everton", 2, 1),
		unplayed(4, "Burnley", "Arsenal"),
		unplayed(4, "Everton", "Chelsea"),
		unplayed(5, "Chelsea", "Burnley"),
		unplayed(5, "Arsenal", "Everton"),
		unplayed(6, "Chelsea", "Arsenal"),
		unplayed(6, "Everton", "Burnley"),
	}
}

// fourTeamStats mirrors the played fixtures with shot counts.
func fourTeamStats() []matchstats.Match {
	row := func(home, away string, hg, ag, hs, as int) matchstats.Match {
		return matchstats.Match{
			HomeTeam: home, AwayTeam: away,
			HomeGoals: intp(hg), AwayGoals: intp(ag),
			HomeShots: intp(hs), AwayShots: intp(as),
		}
	}
	return []matchstats.Match{
		row("Arsenal", "Burnley", 2, 0, 16, 6),
		row("Chelsea", "Everton", 1, 1, 12, 9),
		row("Burnley", "Chelsea", 0, 3, 8, 15),
		row("Everton", "Arsenal", 1, 2, 10, 13),
		row("Arsenal", "Chelsea", 1, 1, 11, 10),
		row("Burnley", "Everton", 2, 1, 9, 11),
	}
}

func uniformStats(teams ...string) map[string]teamstats.TeamStatistics {
	venue := teamstats.VenueStats{
		Matches:           5,
		AvgShotsMade:      12,
		AvgShotsConceded:  12,
		AttackEfficiency:  0.11,
		DefenseEfficiency: 0.11,
	}
	out := make(map[string]teamstats.TeamStatistics, len(teams))
	for _, team := range teams {
		out[team] = teamstats.TeamStatistics{Team: team, Home: venue, Away: venue}
	}
	return out
}

func newTestSimulationService(workers int) *SimulationService {
	return NewSimulationService(workers, matchmodel.DefaultBounds(), logging.NewNop())
}

func mustPreprocess(data DataSet) Preprocessed {
	service := NewStatisticsService(0.1, 0, logging.NewNop())
	out, err := service.Preprocess(context.Background(), data)
	if err != nil {
		panic(fmt.Sprintf("preprocess test data: %v", err))
	}
	return out
}
