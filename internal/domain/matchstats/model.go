package matchstats

// Match is one played match with per-side goals and shots. Nil fields are
// cells missing from the source data.
type Match struct {
	Row               int
	Date              string
	HomeTeam          string
	AwayTeam          string
	HomeGoals         *int
	AwayGoals         *int
	HomeShots         *int
	AwayShots         *int
	HomeShotsOnTarget *int
	AwayShotsOnTarget *int
	Result            string
}

func (m Match) HasGoals() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

func (m Match) HasShots() bool {
	return m.HomeShots != nil && m.AwayShots != nil
}

func (m Match) HasShotsOnTarget() bool {
	return m.HomeShotsOnTarget != nil && m.AwayShotsOnTarget != nil
}
