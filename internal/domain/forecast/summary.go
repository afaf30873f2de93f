package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Zone is a named rank range: the top Top ranks or the bottom Bottom ranks.
type Zone struct {
	Name   string
	Top    int
	Bottom int
}

func DefaultZones() []Zone {
	return []Zone{
		{Name: "top_4", Top: 4},
		{Name: "top_6", Top: 6},
		{Name: "relegation", Bottom: 3},
	}
}

// Range returns the inclusive 1-based rank range of the zone in a league of n teams.
func (z Zone) Range(n int) (from, to int) {
	switch {
	case z.Top > 0:
		return 1, min(z.Top, n)
	case z.Bottom > 0:
		return max(n-z.Bottom+1, 1), n
	default:
		return 0, -1
	}
}

type ZoneProbability struct {
	Zone        string
	From        int
	To          int
	Probability float64
}

// Summary describes one team's final-position distribution.
type Summary struct {
	Team                  string
	CurrentPosition       int
	MostLikelyPosition    int
	MostLikelyProbability float64
	ExpectedPosition      float64
	StdDevPosition        float64
	Zones                 []ZoneProbability
}

// Summarize derives per-team summaries in matrix row order. current maps a team
// to its position in the current table and may be nil.
func Summarize(m PositionMatrix, zones []Zone, current map[string]int) []Summary {
	n := len(m.Teams)
	positions := make([]float64, n)
	for p := range positions {
		positions[p] = float64(p + 1)
	}

	out := make([]Summary, 0, n)
	for i, team := range m.Teams {
		probs := m.row(i)

		best := 0
		for p := range probs {
			if probs[p] > probs[best] {
				best = p
			}
		}

		s := Summary{
			Team:                  team,
			CurrentPosition:       current[team],
			MostLikelyPosition:    best + 1,
			MostLikelyProbability: probs[best],
		}
		if m.Trials > 0 {
			s.ExpectedPosition, s.StdDevPosition = stat.PopMeanStdDev(positions, probs)
			if math.IsNaN(s.StdDevPosition) {
				s.StdDevPosition = 0
			}
		}

		for _, z := range zones {
			from, to := z.Range(n)
			var total float64
			for p := from; p <= to; p++ {
				total += probs[p-1]
			}
			s.Zones = append(s.Zones, ZoneProbability{Zone: z.Name, From: from, To: to, Probability: total})
		}

		out = append(out, s)
	}
	return out
}
