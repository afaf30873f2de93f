package teamstats

import (
	"math"
	"testing"

	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
)

func intp(v int) *int { return &v }

func match(home, away string, hg, ag, hs, as *int) matchstats.Match {
	return matchstats.Match{
		HomeTeam: home, AwayTeam: away,
		HomeGoals: hg, AwayGoals: ag,
		HomeShots: hs, AwayShots: as,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculate_AveragesExcludeMissingCells(t *testing.T) {
	t.Parallel()

	matches := []matchstats.Match{
		match("A", "B", intp(2), intp(1), intp(10), intp(5)),
		match("B", "A", intp(0), intp(0), intp(4), intp(8)),
		// Goals missing: counts for shot averages only.
		match("A", "B", nil, nil, intp(6), intp(6)),
	}

	stats, _ := Calculate(matches, DefaultFallbackEfficiency)
	byTeam := ByTeam(stats)

	a := byTeam["A"].Home
	if a.Matches != 1 {
		t.Fatalf("A home matches=%d want 1", a.Matches)
	}
	if !almostEqual(a.AvgGoalsScored, 2) || !almostEqual(a.AvgGoalsConceded, 1) {
		t.Fatalf("unexpected A home goals: %+v", a)
	}
	if !almostEqual(a.AvgShotsMade, 8) || !almostEqual(a.AvgShotsConceded, 5.5) {
		t.Fatalf("unexpected A home shots: %+v", a)
	}
	if !almostEqual(a.AttackEfficiency, 0.2) || !almostEqual(a.DefenseEfficiency, 0.2) {
		t.Fatalf("unexpected A home efficiency: %+v", a)
	}
	if a.Fallback {
		t.Fatalf("A home should not fall back: %+v", a)
	}

	b := byTeam["B"].Away
	if !almostEqual(b.AvgShotsMade, 5.5) || !almostEqual(b.AvgShotsConceded, 8) {
		t.Fatalf("unexpected B away shots: %+v", b)
	}
	if !almostEqual(b.AttackEfficiency, 0.2) || !almostEqual(b.DefenseEfficiency, 0.2) {
		t.Fatalf("unexpected B away efficiency: %+v", b)
	}
}

func TestCalculate_FallsBackToLeagueAverage(t *testing.T) {
	t.Parallel()

	matches := []matchstats.Match{
		match("A", "B", intp(2), intp(1), intp(10), intp(5)),
		// B takes no shots at home.
		match("B", "C", intp(1), intp(1), intp(0), intp(5)),
	}

	stats, averages := Calculate(matches, DefaultFallbackEfficiency)
	byTeam := ByTeam(stats)

	bHome := byTeam["B"].Home
	if !bHome.Fallback {
		t.Fatalf("expected B home fallback")
	}
	if !almostEqual(bHome.AttackEfficiency, 0.2) {
		t.Fatalf("B home attack=%v want league average 0.2", bHome.AttackEfficiency)
	}
	if !almostEqual(bHome.DefenseEfficiency, 0.2) {
		t.Fatalf("B home defense=%v want own 0.2", bHome.DefenseEfficiency)
	}

	cHome := byTeam["C"].Home
	if !cHome.Fallback || cHome.Matches != 0 {
		t.Fatalf("expected C home to be fully derived from league averages: %+v", cHome)
	}
	if !almostEqual(cHome.AvgGoalsScored, averages.Home.AvgGoalsScored) || !almostEqual(cHome.AvgGoalsScored, 1.5) {
		t.Fatalf("C home goals=%v league=%v", cHome.AvgGoalsScored, averages.Home.AvgGoalsScored)
	}
	if cHome.AttackEfficiency == 0 {
		t.Fatalf("team without history must not get zero scoring efficiency")
	}
	if !byTeam["C"].HasFallback() {
		t.Fatalf("expected HasFallback for C")
	}
}

func TestCalculate_EfficiencyBounds(t *testing.T) {
	t.Parallel()

	matches := []matchstats.Match{
		// More goals than shots is clamped to 1.
		match("A", "B", intp(3), intp(0), intp(2), intp(9)),
		match("B", "A", intp(0), intp(4), intp(1), intp(3)),
	}

	stats, _ := Calculate(matches, DefaultFallbackEfficiency)
	for _, s := range stats {
		for _, v := range []VenueStats{s.Home, s.Away} {
			for _, eff := range []float64{v.AttackEfficiency, v.DefenseEfficiency} {
				if eff < 0 || eff > 1 {
					t.Fatalf("%s efficiency out of [0,1]: %+v", s.Team, v)
				}
			}
		}
	}
	if got := ByTeam(stats)["A"].Home.AttackEfficiency; got != 1 {
		t.Fatalf("A home attack=%v want clamped 1", got)
	}
}

func TestCalculate_NoDataUsesFallbackConstant(t *testing.T) {
	t.Parallel()

	matches := []matchstats.Match{
		match("A", "B", intp(1), intp(0), nil, nil),
	}

	stats, averages := Calculate(matches, 0.15)
	if !almostEqual(averages.Home.AttackEfficiency, 0.15) {
		t.Fatalf("league attack=%v want fallback 0.15", averages.Home.AttackEfficiency)
	}
	a := ByTeam(stats)["A"].Home
	if !almostEqual(a.AttackEfficiency, 0.15) || !a.Fallback {
		t.Fatalf("unexpected A home: %+v", a)
	}
	if a.ChanceCreation != 1 {
		t.Fatalf("chance creation with no shot data must be neutral, got %v", a.ChanceCreation)
	}
}
