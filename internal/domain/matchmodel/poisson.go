package matchmodel

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
)

var ErrInvalidBounds = errors.New("invalid expected goal bounds")

// Bounds clamps expected goals so a draw never uses a degenerate rate.
type Bounds struct {
	Min float64
	Max float64
}

func DefaultBounds() Bounds {
	return Bounds{Min: 0.05, Max: 20}
}

func (b Bounds) Validate() error {
	if b.Min <= 0 {
		return fmt.Errorf("%w: min must be > 0, got %v", ErrInvalidBounds, b.Min)
	}
	if b.Max < b.Min {
		return fmt.Errorf("%w: max %v below min %v", ErrInvalidBounds, b.Max, b.Min)
	}
	return nil
}

func (b Bounds) clamp(v float64) float64 {
	if v < b.Min || math.IsNaN(v) {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// MatchInput carries the efficiency metrics of one fixture: the home side's
// home figures and the away side's away figures.
type MatchInput struct {
	HomeAttackEff  float64
	HomeDefenseEff float64
	AwayAttackEff  float64
	AwayDefenseEff float64
	AvgHomeShots   float64
	AvgAwayShots   float64
}

// InputFor builds the fixture input from the two teams' statistics.
func InputFor(home, away teamstats.TeamStatistics) MatchInput {
	return MatchInput{
		HomeAttackEff:  home.Home.AttackEfficiency,
		HomeDefenseEff: home.Home.DefenseEfficiency,
		AwayAttackEff:  away.Away.AttackEfficiency,
		AwayDefenseEff: away.Away.DefenseEfficiency,
		AvgHomeShots:   home.Home.AvgShotsMade,
		AvgAwayShots:   away.Away.AvgShotsMade,
	}
}

// ExpectedGoals returns the clamped Poisson rates for both sides:
// shots × own attack efficiency × (1 − opponent defense efficiency).
func ExpectedGoals(in MatchInput, bounds Bounds) (home, away float64) {
	home = in.AvgHomeShots * in.HomeAttackEff * (1 - in.AwayDefenseEff)
	away = in.AvgAwayShots * in.AwayAttackEff * (1 - in.HomeDefenseEff)
	return bounds.clamp(home), bounds.clamp(away)
}

// SimulateMatch draws a final score. Home and away goals are independent
// Poisson draws; src fully determines the outcome.
func SimulateMatch(src rand.Source, in MatchInput, bounds Bounds) (homeGoals, awayGoals int) {
	lambdaHome, lambdaAway := ExpectedGoals(in, bounds)
	return Draw(src, lambdaHome, lambdaAway)
}

// Draw samples a score from precomputed rates.
func Draw(src rand.Source, lambdaHome, lambdaAway float64) (homeGoals, awayGoals int) {
	homeGoals = int(distuv.Poisson{Lambda: lambdaHome, Src: src}.Rand())
	awayGoals = int(distuv.Poisson{Lambda: lambdaAway, Src: src}.Rand())
	return homeGoals, awayGoals
}

// GetMatchResult maps a score to its outcome; Outcome.Points gives 3/1/0.
func GetMatchResult(homeGoals, awayGoals int) fixture.Outcome {
	return fixture.Score{Home: homeGoals, Away: awayGoals}.Outcome()
}
