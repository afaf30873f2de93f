package teamstats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
)

// DefaultFallbackEfficiency is used when no team in the league has shot data.
const DefaultFallbackEfficiency = 0.1

type venueTotals struct {
	goalMatches  int
	goalsFor     int
	goalsAgainst int

	shotMatches  int
	shotsFor     int
	shotsAgainst int

	sotMatches int
	sotFor     int
	sotAgainst int

	// Efficiency uses only matches where both goals and shots are known.
	effGoalsFor     int
	effShotsFor     int
	effGoalsAgainst int
	effShotsAgainst int
}

func (t *venueTotals) add(m matchstats.Match, home bool) {
	goalsFor, goalsAgainst := m.HomeGoals, m.AwayGoals
	shotsFor, shotsAgainst := m.HomeShots, m.AwayShots
	sotFor, sotAgainst := m.HomeShotsOnTarget, m.AwayShotsOnTarget
	if !home {
		goalsFor, goalsAgainst = goalsAgainst, goalsFor
		shotsFor, shotsAgainst = shotsAgainst, shotsFor
		sotFor, sotAgainst = sotAgainst, sotFor
	}

	if m.HasGoals() {
		t.goalMatches++
		t.goalsFor += *goalsFor
		t.goalsAgainst += *goalsAgainst
	}
	if m.HasShots() {
		t.shotMatches++
		t.shotsFor += *shotsFor
		t.shotsAgainst += *shotsAgainst
	}
	if m.HasShotsOnTarget() {
		t.sotMatches++
		t.sotFor += *sotFor
		t.sotAgainst += *sotAgainst
	}
	if m.HasGoals() && m.HasShots() {
		t.effGoalsFor += *goalsFor
		t.effShotsFor += *shotsFor
		t.effGoalsAgainst += *goalsAgainst
		t.effShotsAgainst += *shotsAgainst
	}
}

// metric indices into a venue's value vector.
const (
	mGoalsScored = iota
	mGoalsConceded
	mShotsMade
	mShotsConceded
	mSOTMade
	mSOTConceded
	mAttackEff
	mDefenseEff
	metricCount
)

type venueValues struct {
	matches int
	value   [metricCount]float64
	defined [metricCount]bool
}

func (t venueTotals) values() venueValues {
	var v venueValues
	v.matches = t.goalMatches
	if t.goalMatches > 0 {
		n := float64(t.goalMatches)
		v.set(mGoalsScored, float64(t.goalsFor)/n)
		v.set(mGoalsConceded, float64(t.goalsAgainst)/n)
	}
	if t.shotMatches > 0 {
		n := float64(t.shotMatches)
		v.set(mShotsMade, float64(t.shotsFor)/n)
		v.set(mShotsConceded, float64(t.shotsAgainst)/n)
	}
	if t.sotMatches > 0 {
		n := float64(t.sotMatches)
		v.set(mSOTMade, float64(t.sotFor)/n)
		v.set(mSOTConceded, float64(t.sotAgainst)/n)
	}
	if t.effShotsFor > 0 {
		v.set(mAttackEff, clampUnit(float64(t.effGoalsFor)/float64(t.effShotsFor)))
	}
	if t.effShotsAgainst > 0 {
		v.set(mDefenseEff, clampUnit(float64(t.effGoalsAgainst)/float64(t.effShotsAgainst)))
	}
	return v
}

func (v *venueValues) set(metric int, value float64) {
	v.value[metric] = value
	v.defined[metric] = true
}

// Calculate derives per-team home and away statistics from played matches.
// Missing cells are excluded from averages. Metrics a team cannot support
// (no matches at a venue, zero shots) take the league average for that metric,
// or fallback for efficiencies when no team has data.
func Calculate(matches []matchstats.Match, fallback float64) ([]TeamStatistics, LeagueAverages) {
	if fallback < 0 || fallback > 1 {
		fallback = DefaultFallbackEfficiency
	}

	home := make(map[string]*venueTotals)
	away := make(map[string]*venueTotals)
	totalsFor := func(set map[string]*venueTotals, team string) *venueTotals {
		t, ok := set[team]
		if !ok {
			t = &venueTotals{}
			set[team] = t
		}
		return t
	}

	teamSet := make(map[string]struct{})
	for _, m := range matches {
		if m.HomeTeam == "" || m.AwayTeam == "" {
			continue
		}
		teamSet[m.HomeTeam] = struct{}{}
		teamSet[m.AwayTeam] = struct{}{}
		totalsFor(home, m.HomeTeam).add(m, true)
		totalsFor(away, m.AwayTeam).add(m, false)
	}

	teams := make([]string, 0, len(teamSet))
	for team := range teamSet {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	homeValues := make([]venueValues, len(teams))
	awayValues := make([]venueValues, len(teams))
	for i, team := range teams {
		if t, ok := home[team]; ok {
			homeValues[i] = t.values()
		}
		if t, ok := away[team]; ok {
			awayValues[i] = t.values()
		}
	}

	homeAvg := leagueMeans(homeValues, fallback)
	awayAvg := leagueMeans(awayValues, fallback)

	out := make([]TeamStatistics, len(teams))
	for i, team := range teams {
		out[i] = TeamStatistics{
			Team: team,
			Home: resolve(homeValues[i], homeAvg, awayAvg),
			Away: resolve(awayValues[i], awayAvg, homeAvg),
		}
	}

	averages := LeagueAverages{
		Home: resolve(homeAvg, homeAvg, awayAvg),
		Away: resolve(awayAvg, awayAvg, homeAvg),
	}

	return out, averages
}

// leagueMeans averages each metric over teams that define it.
func leagueMeans(values []venueValues, fallback float64) venueValues {
	var out venueValues
	for metric := 0; metric < metricCount; metric++ {
		sample := make([]float64, 0, len(values))
		for _, v := range values {
			if v.defined[metric] {
				sample = append(sample, v.value[metric])
			}
		}
		switch {
		case len(sample) > 0:
			out.set(metric, stat.Mean(sample, nil))
		case metric == mAttackEff || metric == mDefenseEff:
			out.set(metric, fallback)
		default:
			out.set(metric, 0)
		}
	}
	for _, v := range values {
		out.matches += v.matches
	}
	if len(values) > 0 {
		out.matches /= len(values)
	}
	return out
}

// resolve fills undefined metrics from league and computes chance ratios
// against the opposite venue's league averages.
func resolve(v, league, opposite venueValues) VenueStats {
	fell := false
	value := func(metric int) float64 {
		if v.defined[metric] {
			return v.value[metric]
		}
		// Shots on target are reported only; they never drive the model.
		if metric != mSOTMade && metric != mSOTConceded {
			fell = true
		}
		return league.value[metric]
	}

	out := VenueStats{
		Matches:                  v.matches,
		AvgGoalsScored:           value(mGoalsScored),
		AvgGoalsConceded:         value(mGoalsConceded),
		AvgShotsMade:             value(mShotsMade),
		AvgShotsConceded:         value(mShotsConceded),
		AvgShotsOnTargetMade:     value(mSOTMade),
		AvgShotsOnTargetConceded: value(mSOTConceded),
		AttackEfficiency:         clampUnit(value(mAttackEff)),
		DefenseEfficiency:        clampUnit(value(mDefenseEff)),
	}
	out.ChanceCreation = ratioOrNeutral(out.AvgShotsMade, opposite.value[mShotsMade])
	out.ChanceSuppression = ratioOrNeutral(out.AvgShotsConceded, opposite.value[mShotsConceded])
	out.Fallback = fell
	return out
}

func ratioOrNeutral(num, den float64) float64 {
	if den <= 0 {
		return 1
	}
	return num / den
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
