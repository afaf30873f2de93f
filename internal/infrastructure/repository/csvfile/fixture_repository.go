package csvfile

import (
	"context"
	"strconv"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
)

// FixtureColumns names the header of each fixture field in the source file.
type FixtureColumns struct {
	HomeTeam    string
	AwayTeam    string
	Result      string
	RoundNumber string
}

type FixtureRepository struct {
	reader  *Reader
	path    string
	columns FixtureColumns
	names   TeamNames
}

func NewFixtureRepository(reader *Reader, path string, columns FixtureColumns, names TeamNames) *FixtureRepository {
	return &FixtureRepository{reader: reader, path: path, columns: columns, names: names}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	sheet, err := r.reader.Read(ctx, r.path)
	if err != nil {
		return nil, err
	}

	homeCol, err := sheet.RequireColumn(r.columns.HomeTeam)
	if err != nil {
		return nil, err
	}
	awayCol, err := sheet.RequireColumn(r.columns.AwayTeam)
	if err != nil {
		return nil, err
	}
	resultCol, err := sheet.RequireColumn(r.columns.Result)
	if err != nil {
		return nil, err
	}
	roundCol := sheet.OptionalColumn(r.columns.RoundNumber)

	out := make([]fixture.Fixture, 0, len(sheet.Rows))
	for row := range sheet.Rows {
		item := fixture.Fixture{
			HomeTeam: r.names.Canonical(sheet.Cell(row, homeCol)),
			AwayTeam: r.names.Canonical(sheet.Cell(row, awayCol)),
		}
		if item.HomeTeam == "" || item.AwayTeam == "" {
			return nil, sheet.rowError(row, "empty team name")
		}

		result, err := fixture.ParseResult(sheet.Cell(row, resultCol))
		if err != nil {
			return nil, sheet.rowError(row, "%v", err)
		}
		item.Result = result

		if raw := sheet.Cell(row, roundCol); raw != "" {
			round, err := strconv.Atoi(raw)
			if err != nil {
				return nil, sheet.rowError(row, "column %q: invalid round %q", r.columns.RoundNumber, raw)
			}
			item.Round = round
		}

		out = append(out, item)
	}
	return out, nil
}
