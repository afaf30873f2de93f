package teamstats

// VenueStats holds one team's per-match averages at home or away and the
// shot-efficiency ratios derived from them.
type VenueStats struct {
	Matches                  int
	AvgGoalsScored           float64
	AvgGoalsConceded         float64
	AvgShotsMade             float64
	AvgShotsConceded         float64
	AvgShotsOnTargetMade     float64
	AvgShotsOnTargetConceded float64
	// AttackEfficiency is goals scored per shot made, in [0,1].
	AttackEfficiency float64
	// DefenseEfficiency is goals conceded per shot faced, in [0,1].
	DefenseEfficiency float64
	// ChanceCreation compares shots made with the league average at the opposite venue.
	ChanceCreation float64
	// ChanceSuppression compares shots conceded with the league average at the opposite venue.
	ChanceSuppression float64
	// Fallback is set when any value was replaced by a league average or the fallback constant.
	Fallback bool
}

type TeamStatistics struct {
	Team string
	Home VenueStats
	Away VenueStats
}

func (s TeamStatistics) HasFallback() bool {
	return s.Home.Fallback || s.Away.Fallback
}

// LeagueAverages are the means over teams with data at each venue.
type LeagueAverages struct {
	Home VenueStats
	Away VenueStats
}

// ByTeam indexes statistics by team name.
func ByTeam(stats []TeamStatistics) map[string]TeamStatistics {
	out := make(map[string]TeamStatistics, len(stats))
	for _, item := range stats {
		out[item.Team] = item
	}
	return out
}
