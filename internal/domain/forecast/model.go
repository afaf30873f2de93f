package forecast

import (
	"errors"
	"fmt"
)

var ErrMatrixMismatch = errors.New("position matrices do not share a roster")

// PositionMatrix counts how often each team finished in each rank.
// Counts[i][p] is the number of trials team Teams[i] finished in rank p+1.
type PositionMatrix struct {
	Teams  []string
	Counts [][]int
	Trials int

	index map[string]int
}

func NewPositionMatrix(teams []string) PositionMatrix {
	m := PositionMatrix{
		Teams:  append([]string(nil), teams...),
		Counts: make([][]int, len(teams)),
		index:  make(map[string]int, len(teams)),
	}
	for i, team := range teams {
		m.Counts[i] = make([]int, len(teams))
		m.index[team] = i
	}
	return m
}

// RecordPositions adds one trial where positions[i] is the 1-based rank of Teams[i].
func (m *PositionMatrix) RecordPositions(positions []int) {
	for i, pos := range positions {
		m.Counts[i][pos-1]++
	}
	m.Trials++
}

// Merge adds other's counts into m.
func (m *PositionMatrix) Merge(other PositionMatrix) error {
	if len(other.Teams) != len(m.Teams) {
		return fmt.Errorf("%w: %d vs %d teams", ErrMatrixMismatch, len(m.Teams), len(other.Teams))
	}
	for i, team := range m.Teams {
		if other.Teams[i] != team {
			return fmt.Errorf("%w: row %d is %s vs %s", ErrMatrixMismatch, i, team, other.Teams[i])
		}
		for p, c := range other.Counts[i] {
			m.Counts[i][p] += c
		}
	}
	m.Trials += other.Trials
	return nil
}

func (m PositionMatrix) Index(team string) (int, bool) {
	if m.index == nil {
		for i, name := range m.Teams {
			if name == team {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := m.index[team]
	return i, ok
}

// Probability returns the empirical probability of team finishing in rank pos (1-based).
func (m PositionMatrix) Probability(team string, pos int) float64 {
	i, ok := m.Index(team)
	if !ok || pos < 1 || pos > len(m.Teams) || m.Trials == 0 {
		return 0
	}
	return float64(m.Counts[i][pos-1]) / float64(m.Trials)
}

// Row returns the probability of team finishing in each rank, indexed from rank 1.
func (m PositionMatrix) Row(team string) ([]float64, bool) {
	i, ok := m.Index(team)
	if !ok {
		return nil, false
	}
	return m.row(i), true
}

func (m PositionMatrix) row(i int) []float64 {
	out := make([]float64, len(m.Teams))
	if m.Trials == 0 {
		return out
	}
	for p, c := range m.Counts[i] {
		out[p] = float64(c) / float64(m.Trials)
	}
	return out
}

// Probabilities returns the full team × rank probability grid.
func (m PositionMatrix) Probabilities() [][]float64 {
	out := make([][]float64, len(m.Teams))
	for i := range m.Teams {
		out[i] = m.row(i)
	}
	return out
}
