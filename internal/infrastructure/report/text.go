package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/league-forecast/internal/domain/forecast"
	"github.com/riskibarqy/league-forecast/internal/domain/leaguestanding"
	"github.com/riskibarqy/league-forecast/internal/domain/teamstats"
)

// WriteProbabilityCSV writes one row per team in matrix order with the
// probability of each final rank.
func WriteProbabilityCSV(w io.Writer, m forecast.PositionMatrix) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	out := csv.NewWriter(buf)
	header := make([]string, 0, len(m.Teams)+1)
	header = append(header, "team")
	for pos := 1; pos <= len(m.Teams); pos++ {
		header = append(header, strconv.Itoa(pos))
	}
	if err := out.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, row := range m.Teams {
		probs, _ := m.Row(row)
		record[0] = row
		for i, p := range probs {
			record[i+1] = strconv.FormatFloat(p, 'f', 4, 64)
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}

// WriteTable writes an aligned league table.
func WriteTable(w io.Writer, table leaguestanding.Table) error {
	return writeAligned(w, func(tw io.Writer) {
		fmt.Fprintln(tw, "Pos\tTeam\tP\tW\tD\tL\tGF\tGA\tGD\tPts\t")
		for _, row := range table {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t\n",
				row.Position, row.Team, row.Played, row.Won, row.Draw, row.Lost,
				row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points)
		}
	})
}

// WriteSummary writes one line per team with its position distribution summary
// and a column per zone.
func WriteSummary(w io.Writer, summaries []forecast.Summary) error {
	return writeAligned(w, func(tw io.Writer) {
		fmt.Fprint(tw, "Team\tNow\tLikely\tP(likely)\tE[pos]\tStd\t")
		if len(summaries) > 0 {
			for _, z := range summaries[0].Zones {
				fmt.Fprintf(tw, "%s\t", z.Zone)
			}
		}
		fmt.Fprintln(tw)

		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.2f\t%.2f\t",
				s.Team, positionLabel(s.CurrentPosition), s.MostLikelyPosition,
				percent(s.MostLikelyProbability), s.ExpectedPosition, s.StdDevPosition)
			for _, z := range s.Zones {
				fmt.Fprintf(tw, "%s\t", percent(z.Probability))
			}
			fmt.Fprintln(tw)
		}
	})
}

// WriteStatistics writes per team venue averages and efficiencies. Rows that
// relied on league fallbacks are marked with an asterisk.
func WriteStatistics(w io.Writer, stats []teamstats.TeamStatistics, averages teamstats.LeagueAverages) error {
	return writeAligned(w, func(tw io.Writer) {
		fmt.Fprintln(tw, "Team\tVenue\tM\tGF/m\tGA/m\tShots/m\tShotsA/m\tAttEff\tDefEff\tCreate\tSuppress\t")
		line := func(team, venue string, v teamstats.VenueStats) {
			if v.Fallback {
				team += " *"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\t%.3f\t%.2f\t%.2f\t\n",
				team, venue, v.Matches, v.AvgGoalsScored, v.AvgGoalsConceded,
				v.AvgShotsMade, v.AvgShotsConceded, v.AttackEfficiency, v.DefenseEfficiency,
				v.ChanceCreation, v.ChanceSuppression)
		}
		for _, s := range stats {
			line(s.Team, "home", s.Home)
			line(s.Team, "away", s.Away)
		}
		line("League", "home", averages.Home)
		line("League", "away", averages.Away)
	})
}

func writeAligned(w io.Writer, fill func(tw io.Writer)) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fill(tw)
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}

func percent(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}

func positionLabel(pos int) string {
	if pos <= 0 {
		return "-"
	}
	return strconv.Itoa(pos)
}
