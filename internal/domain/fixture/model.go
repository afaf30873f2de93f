package fixture

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrMalformedResult = errors.New("malformed result")

// Outcome is the full-time result code of a match.
type Outcome string

const (
	OutcomeHomeWin Outcome = "H"
	OutcomeDraw    Outcome = "D"
	OutcomeAwayWin Outcome = "A"
)

// Points returns league points awarded to the home and away side.
func (o Outcome) Points() (home, away int) {
	switch o {
	case OutcomeHomeWin:
		return 3, 0
	case OutcomeAwayWin:
		return 0, 3
	default:
		return 1, 1
	}
}

// Score is a decided full-time score.
type Score struct {
	Home int
	Away int
}

func (s Score) Outcome() Outcome {
	switch {
	case s.Home > s.Away:
		return OutcomeHomeWin
	case s.Away > s.Home:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// Fixture represents one scheduled match. Result is nil until the match is played.
type Fixture struct {
	Round    int
	HomeTeam string
	AwayTeam string
	Result   *Score
}

func (f Fixture) IsPlayed() bool {
	return f.Result != nil
}

func (f Fixture) String() string {
	if f.Result == nil {
		return fmt.Sprintf("round %d %s v %s", f.Round, f.HomeTeam, f.AwayTeam)
	}
	return fmt.Sprintf("round %d %s %s %s", f.Round, f.HomeTeam, f.Result, f.AwayTeam)
}

// ParseResult parses a "home-away" score. Blank input means the fixture is unplayed.
func ParseResult(raw string) (*Score, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedResult, raw)
	}

	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedResult, raw)
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedResult, raw)
	}
	if home < 0 || away < 0 {
		return nil, fmt.Errorf("%w: negative goals in %q", ErrMalformedResult, raw)
	}

	return &Score{Home: home, Away: away}, nil
}

// Partition splits fixtures into played and unplayed, preserving input order.
func Partition(fixtures []Fixture) (played, unplayed []Fixture) {
	for _, item := range fixtures {
		if item.IsPlayed() {
			played = append(played, item)
			continue
		}
		unplayed = append(unplayed, item)
	}
	return played, unplayed
}

// Teams returns the sorted set of team names appearing in fixtures.
func Teams(fixtures []Fixture) []string {
	seen := make(map[string]struct{})
	for _, item := range fixtures {
		seen[item.HomeTeam] = struct{}{}
		seen[item.AwayTeam] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
