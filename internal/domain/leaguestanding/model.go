package leaguestanding

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
)

var ErrUnknownTeam = errors.New("team is not on the league roster")

// Standing represents a league table row for one team.
type Standing struct {
	Team           string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// Table is a ranked league table; positions run 1..len(Table) in slice order.
type Table []Standing

func (t Table) Find(team string) (Standing, bool) {
	for _, row := range t {
		if row.Team == team {
			return row, true
		}
	}
	return Standing{}, false
}

func (t Table) Teams() []string {
	out := make([]string, len(t))
	for i, row := range t {
		out[i] = row.Team
	}
	return out
}

// Result is a decided match folded into a table, historical or simulated.
type Result struct {
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
}

// ResultFromFixture converts a played fixture. ok is false for unplayed fixtures.
func ResultFromFixture(f fixture.Fixture) (Result, bool) {
	if f.Result == nil {
		return Result{}, false
	}
	return Result{
		HomeTeam:  f.HomeTeam,
		AwayTeam:  f.AwayTeam,
		HomeGoals: f.Result.Home,
		AwayGoals: f.Result.Away,
	}, true
}

// Ranks orders a before b: points, goal difference and goals for descending,
// then team name ascending so every trial yields a total order.
func Ranks(a, b Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.Team < b.Team
}

// Calculate folds results into a ranked table covering every roster team.
func Calculate(roster []string, results []Result) (Table, error) {
	tally := NewTally(roster)
	for _, result := range results {
		if err := tally.Add(result); err != nil {
			return nil, err
		}
	}
	return tally.Table(), nil
}

// Tally accumulates standings by roster index. Clone is cheap, which lets a
// simulation start every trial from the same historical base.
type Tally struct {
	index map[string]int
	rows  []Standing
}

func NewTally(roster []string) *Tally {
	index := make(map[string]int, len(roster))
	rows := make([]Standing, 0, len(roster))
	for _, team := range roster {
		if _, dup := index[team]; dup {
			continue
		}
		index[team] = len(rows)
		rows = append(rows, Standing{Team: team})
	}
	return &Tally{index: index, rows: rows}
}

// Index returns the roster index of team.
func (t *Tally) Index(team string) (int, bool) {
	i, ok := t.index[team]
	return i, ok
}

func (t *Tally) Len() int {
	return len(t.rows)
}

// Clone copies the running rows. The roster index is shared and never mutated.
func (t *Tally) Clone() *Tally {
	rows := make([]Standing, len(t.rows))
	copy(rows, t.rows)
	return &Tally{index: t.index, rows: rows}
}

// Reset overwrites the running rows with base's rows, reusing the receiver's storage.
func (t *Tally) Reset(base *Tally) {
	t.index = base.index
	if cap(t.rows) < len(base.rows) {
		t.rows = make([]Standing, len(base.rows))
	}
	t.rows = t.rows[:len(base.rows)]
	copy(t.rows, base.rows)
}

func (t *Tally) Add(result Result) error {
	home, ok := t.index[result.HomeTeam]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, result.HomeTeam)
	}
	away, ok := t.index[result.AwayTeam]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, result.AwayTeam)
	}
	t.AddIndexed(home, away, result.HomeGoals, result.AwayGoals)
	return nil
}

// AddIndexed folds a result using roster indices from Index.
func (t *Tally) AddIndexed(home, away, homeGoals, awayGoals int) {
	h := &t.rows[home]
	a := &t.rows[away]

	h.Played++
	a.Played++
	h.GoalsFor += homeGoals
	h.GoalsAgainst += awayGoals
	a.GoalsFor += awayGoals
	a.GoalsAgainst += homeGoals
	h.GoalDifference = h.GoalsFor - h.GoalsAgainst
	a.GoalDifference = a.GoalsFor - a.GoalsAgainst

	outcome := fixture.Score{Home: homeGoals, Away: awayGoals}.Outcome()
	homePts, awayPts := outcome.Points()
	h.Points += homePts
	a.Points += awayPts
	switch outcome {
	case fixture.OutcomeHomeWin:
		h.Won++
		a.Lost++
	case fixture.OutcomeAwayWin:
		a.Won++
		h.Lost++
	default:
		h.Draw++
		a.Draw++
	}
}

// Table returns a ranked copy of the running rows.
func (t *Tally) Table() Table {
	out := make(Table, len(t.rows))
	copy(out, t.rows)
	sort.Slice(out, func(i, j int) bool {
		return Ranks(out[i], out[j])
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// Positions writes the final rank of every roster index into dst and returns it.
// order is scratch space of at least Len() entries; both may be reused across calls.
func (t *Tally) Positions(dst, order []int) []int {
	n := len(t.rows)
	if cap(dst) < n {
		dst = make([]int, n)
	}
	dst = dst[:n]
	if cap(order) < n {
		order = make([]int, n)
	}
	order = order[:n]
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return Ranks(t.rows[order[i]], t.rows[order[j]])
	})
	for rank, idx := range order {
		dst[idx] = rank + 1
	}
	return dst
}
