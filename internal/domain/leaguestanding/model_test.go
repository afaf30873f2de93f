package leaguestanding

import (
	"errors"
	"reflect"
	"testing"
)

func TestCalculate_TieBreakOrder(t *testing.T) {
	t.Parallel()

	roster := []string{"Burnley", "Arsenal", "Chelsea", "Derby"}
	results := []Result{
		{HomeTeam: "Arsenal", AwayTeam: "Burnley", HomeGoals: 3, AwayGoals: 2},
		{HomeTeam: "Chelsea", AwayTeam: "Arsenal", HomeGoals: 1, AwayGoals: 0},
		{HomeTeam: "Burnley", AwayTeam: "Chelsea", HomeGoals: 3, AwayGoals: 2},
	}

	table, err := Calculate(roster, results)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}

	// Arsenal, Burnley and Chelsea all have 3 points and zero goal difference.
	// Goals for splits Burnley (5) from Arsenal and Chelsea (3 each), then name order.
	wantOrder := []string{"Burnley", "Arsenal", "Chelsea", "Derby"}
	if got := table.Teams(); !reflect.DeepEqual(got, wantOrder) {
		t.Fatalf("order=%v want %v", got, wantOrder)
	}
	for i, row := range table {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d", i, row.Position)
		}
	}

	derby, ok := table.Find("Derby")
	if !ok || derby.Played != 0 || derby.Points != 0 {
		t.Fatalf("expected empty Derby row, got %+v", derby)
	}

	burnley, _ := table.Find("Burnley")
	want := Standing{
		Team: "Burnley", Position: 1, Played: 2, Won: 1, Lost: 1,
		GoalsFor: 5, GoalsAgainst: 5, GoalDifference: 0, Points: 3,
	}
	if burnley != want {
		t.Fatalf("burnley=%+v want %+v", burnley, want)
	}
}

func TestCalculate_Draw(t *testing.T) {
	t.Parallel()

	table, err := Calculate([]string{"A", "B"}, []Result{{HomeTeam: "A", AwayTeam: "B", HomeGoals: 1, AwayGoals: 1}})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	for _, row := range table {
		if row.Points != 1 || row.Draw != 1 || row.Played != 1 {
			t.Fatalf("unexpected draw row: %+v", row)
		}
	}
}

func TestCalculate_UnknownTeam(t *testing.T) {
	t.Parallel()

	_, err := Calculate([]string{"A"}, []Result{{HomeTeam: "A", AwayTeam: "Z"}})
	if !errors.Is(err, ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}

func TestTally_CloneIsolatesTrials(t *testing.T) {
	t.Parallel()

	base := NewTally([]string{"A", "B"})
	if err := base.Add(Result{HomeTeam: "A", AwayTeam: "B", HomeGoals: 1}); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	trial := base.Clone()
	trial.AddIndexed(1, 0, 4, 0)

	baseTable := base.Table()
	if baseTable[0].Team != "A" || baseTable[0].Points != 3 || baseTable[0].Played != 1 {
		t.Fatalf("base mutated by trial: %+v", baseTable)
	}
	trialTable := trial.Table()
	if trialTable[0].Team != "B" || trialTable[0].GoalDifference != 3 {
		t.Fatalf("unexpected trial table: %+v", trialTable)
	}

	reused := NewTally(nil)
	reused.Reset(base)
	if got := reused.Table(); !reflect.DeepEqual(got, baseTable) {
		t.Fatalf("Reset table=%+v want %+v", got, baseTable)
	}
}

func TestTally_PositionsMatchTable(t *testing.T) {
	t.Parallel()

	tally := NewTally([]string{"C", "B", "A"})
	tally.AddIndexed(0, 1, 2, 2)
	tally.AddIndexed(2, 0, 0, 1)

	positions := tally.Positions(nil, nil)
	table := tally.Table()
	for _, row := range table {
		idx, _ := tally.Index(row.Team)
		if positions[idx] != row.Position {
			t.Fatalf("team %s: positions=%d table=%d", row.Team, positions[idx], row.Position)
		}
	}

	seen := make(map[int]bool)
	for _, p := range positions {
		if p < 1 || p > 3 || seen[p] {
			t.Fatalf("ranks must be a permutation of 1..3, got %v", positions)
		}
		seen[p] = true
	}
}
