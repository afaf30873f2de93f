package csvfile

import (
	"context"

	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
)

// MatchStatsColumns names the header of each statistics field in the source file.
// Date, Result and the shots on target columns are optional.
type MatchStatsColumns struct {
	Date              string
	HomeTeam          string
	AwayTeam          string
	HomeGoals         string
	AwayGoals         string
	Result            string
	HomeShots         string
	AwayShots         string
	HomeShotsOnTarget string
	AwayShotsOnTarget string
}

type MatchRepository struct {
	reader  *Reader
	path    string
	columns MatchStatsColumns
	names   TeamNames
}

func NewMatchRepository(reader *Reader, path string, columns MatchStatsColumns, names TeamNames) *MatchRepository {
	return &MatchRepository{reader: reader, path: path, columns: columns, names: names}
}

func (r *MatchRepository) List(ctx context.Context) ([]matchstats.Match, error) {
	sheet, err := r.reader.Read(ctx, r.path)
	if err != nil {
		return nil, err
	}

	required := make(map[string]int, 6)
	for _, name := range []string{
		r.columns.HomeTeam, r.columns.AwayTeam,
		r.columns.HomeGoals, r.columns.AwayGoals,
		r.columns.HomeShots, r.columns.AwayShots,
	} {
		col, err := sheet.RequireColumn(name)
		if err != nil {
			return nil, err
		}
		required[name] = col
	}
	dateCol := sheet.OptionalColumn(r.columns.Date)
	resultCol := sheet.OptionalColumn(r.columns.Result)
	homeSOTCol := sheet.OptionalColumn(r.columns.HomeShotsOnTarget)
	awaySOTCol := sheet.OptionalColumn(r.columns.AwayShotsOnTarget)

	out := make([]matchstats.Match, 0, len(sheet.Rows))
	for row := range sheet.Rows {
		item := matchstats.Match{
			Row:      sheet.Lines[row],
			Date:     sheet.Cell(row, dateCol),
			HomeTeam: r.names.Canonical(sheet.Cell(row, required[r.columns.HomeTeam])),
			AwayTeam: r.names.Canonical(sheet.Cell(row, required[r.columns.AwayTeam])),
			Result:   sheet.Cell(row, resultCol),
		}
		if item.HomeTeam == "" || item.AwayTeam == "" {
			return nil, sheet.rowError(row, "empty team name")
		}

		for _, cell := range []struct {
			dst **int
			col int
		}{
			{&item.HomeGoals, required[r.columns.HomeGoals]},
			{&item.AwayGoals, required[r.columns.AwayGoals]},
			{&item.HomeShots, required[r.columns.HomeShots]},
			{&item.AwayShots, required[r.columns.AwayShots]},
			{&item.HomeShotsOnTarget, homeSOTCol},
			{&item.AwayShotsOnTarget, awaySOTCol},
		} {
			v, err := sheet.Int(row, cell.col)
			if err != nil {
				return nil, err
			}
			*cell.dst = v
		}

		out = append(out, item)
	}
	return out, nil
}
