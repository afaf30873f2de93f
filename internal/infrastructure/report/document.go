package report

import (
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/league-forecast/internal/domain/forecast"
	"github.com/riskibarqy/league-forecast/internal/domain/leaguestanding"
)

// Input is everything a forecast report shows.
type Input struct {
	RunID         string
	GeneratedAt   time.Time
	League        string
	Seed          uint64
	Matrix        forecast.PositionMatrix
	Current       leaguestanding.Table
	Summaries     []forecast.Summary
	MeanHomeGoals float64
	MeanAwayGoals float64
}

type Document struct {
	RunID         string               `json:"runId"`
	GeneratedAt   string               `json:"generatedAt"`
	League        string               `json:"league"`
	Seed          uint64               `json:"seed"`
	Trials        int                  `json:"trials"`
	MeanHomeGoals float64              `json:"meanHomeGoals"`
	MeanAwayGoals float64              `json:"meanAwayGoals"`
	Teams         []string             `json:"teams"`
	CurrentTable  []standingDTO        `json:"currentTable"`
	Probabilities map[string][]float64 `json:"probabilities"`
	Summaries     []summaryDTO         `json:"summaries"`
}

type standingDTO struct {
	Team           string `json:"team"`
	Position       int    `json:"position"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type summaryDTO struct {
	Team                  string             `json:"team"`
	CurrentPosition       int                `json:"currentPosition"`
	MostLikelyPosition    int                `json:"mostLikelyPosition"`
	MostLikelyProbability float64            `json:"mostLikelyProbability"`
	ExpectedPosition      float64            `json:"expectedPosition"`
	StdDevPosition        float64            `json:"stdDevPosition"`
	Zones                 map[string]float64 `json:"zones"`
}

func NewDocument(in Input) Document {
	doc := Document{
		RunID:         in.RunID,
		GeneratedAt:   in.GeneratedAt.UTC().Format(time.RFC3339),
		League:        in.League,
		Seed:          in.Seed,
		Trials:        in.Matrix.Trials,
		MeanHomeGoals: in.MeanHomeGoals,
		MeanAwayGoals: in.MeanAwayGoals,
		Teams:         append([]string(nil), in.Matrix.Teams...),
		CurrentTable:  make([]standingDTO, 0, len(in.Current)),
		Probabilities: make(map[string][]float64, len(in.Matrix.Teams)),
		Summaries:     make([]summaryDTO, 0, len(in.Summaries)),
	}

	for _, row := range in.Current {
		doc.CurrentTable = append(doc.CurrentTable, standingDTO(row))
	}
	for _, team := range in.Matrix.Teams {
		doc.Probabilities[team], _ = in.Matrix.Row(team)
	}
	for _, s := range in.Summaries {
		zones := make(map[string]float64, len(s.Zones))
		for _, z := range s.Zones {
			zones[z.Zone] = z.Probability
		}
		doc.Summaries = append(doc.Summaries, summaryDTO{
			Team:                  s.Team,
			CurrentPosition:       s.CurrentPosition,
			MostLikelyPosition:    s.MostLikelyPosition,
			MostLikelyProbability: s.MostLikelyProbability,
			ExpectedPosition:      s.ExpectedPosition,
			StdDevPosition:        s.StdDevPosition,
			Zones:                 zones,
		})
	}
	return doc
}

// WriteJSON writes doc as indented JSON with sorted map keys.
func WriteJSON(w io.Writer, doc Document) error {
	encoded, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')
	_, err = w.Write(encoded)
	return err
}
