package memory

import (
	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
)

const (
	TeamPersija   = "Persija Jakarta"
	TeamPersib    = "Persib Bandung"
	TeamPersebaya = "Persebaya Surabaya"
	TeamBali      = "Bali United"
)

type seedMatch struct {
	round      int
	home, away string
	score      *fixture.Score
	homeShots  int
	awayShots  int
}

// seedSeason is a four team double round robin with four of six rounds played.
var seedSeason = []seedMatch{
	{1, TeamPersija, TeamPersib, &fixture.Score{Home: 2, Away: 1}, 15, 9},
	{1, TeamPersebaya, TeamBali, &fixture.Score{Home: 0, Away: 0}, 8, 11},
	{2, TeamPersib, TeamPersebaya, &fixture.Score{Home: 3, Away: 1}, 17, 7},
	{2, TeamBali, TeamPersija, &fixture.Score{Home: 1, Away: 1}, 12, 13},
	{3, TeamPersija, TeamPersebaya, &fixture.Score{Home: 2, Away: 0}, 16, 6},
	{3, TeamPersib, TeamBali, &fixture.Score{Home: 0, Away: 1}, 14, 8},
	{4, TeamPersib, TeamPersija, &fixture.Score{Home: 1, Away: 1}, 10, 12},
	{4, TeamBali, TeamPersebaya, &fixture.Score{Home: 2, Away: 2}, 13, 10},
	{5, TeamPersebaya, TeamPersib, nil, 0, 0},
	{5, TeamPersija, TeamBali, nil, 0, 0},
	{6, TeamPersebaya, TeamPersija, nil, 0, 0},
	{6, TeamBali, TeamPersib, nil, 0, 0},
}

// SeedFixtures returns the full sample season, played and unplayed.
func SeedFixtures() []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(seedSeason))
	for _, item := range seedSeason {
		f := fixture.Fixture{Round: item.round, HomeTeam: item.home, AwayTeam: item.away}
		if item.score != nil {
			score := *item.score
			f.Result = &score
		}
		out = append(out, f)
	}
	return out
}

// SeedMatches returns goal and shot statistics for the played sample fixtures.
func SeedMatches() []matchstats.Match {
	out := make([]matchstats.Match, 0, len(seedSeason))
	for i, item := range seedSeason {
		if item.score == nil {
			continue
		}
		homeGoals, awayGoals := item.score.Home, item.score.Away
		homeShots, awayShots := item.homeShots, item.awayShots
		out = append(out, matchstats.Match{
			Row:       i + 2,
			HomeTeam:  item.home,
			AwayTeam:  item.away,
			HomeGoals: &homeGoals,
			AwayGoals: &awayGoals,
			HomeShots: &homeShots,
			AwayShots: &awayShots,
			Result:    string(item.score.Outcome()),
		})
	}
	return out
}
