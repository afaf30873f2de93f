package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/league-forecast/internal/platform/cache"
)

var testFixtureColumns = FixtureColumns{
	HomeTeam:    "Home Team",
	AwayTeam:    "Away Team",
	Result:      "Result",
	RoundNumber: "Round Number",
}

var testMatchColumns = MatchStatsColumns{
	Date:              "Date",
	HomeTeam:          "HomeTeam",
	AwayTeam:          "AwayTeam",
	HomeGoals:         "FTHG",
	AwayGoals:         "FTAG",
	Result:            "FTR",
	HomeShots:         "HS",
	AwayShots:         "AS",
	HomeShotsOnTarget: "HST",
	AwayShotsOnTarget: "AST",
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFixtureRepository_List(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "fixtures.csv", "\ufeffRound Number,Home Team,Away Team,Result\n"+
		"1,Man United,Fulham,1 - 0\n"+
		"1,Arsenal,Wolves,2-0\n"+
		"\n"+
		"2,Fulham,Arsenal,\n")

	repo := NewFixtureRepository(NewReader(nil), path, testFixtureColumns, TeamNames{"Man United": "Manchester Utd"})
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, "Manchester Utd", got[0].HomeTeam)
	require.Equal(t, 1, got[0].Round)
	require.NotNil(t, got[0].Result)
	require.Equal(t, 1, got[0].Result.Home)
	require.Equal(t, 0, got[0].Result.Away)

	require.Equal(t, 2, got[2].Round)
	require.Nil(t, got[2].Result)
	require.False(t, got[2].IsPlayed())
}

func TestFixtureRepository_List_MalformedResult(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "fixtures.csv", "Home Team,Away Team,Result\n"+
		"Arsenal,Wolves,2-0\n"+
		"Fulham,Arsenal,2:x\n")

	_, err := NewFixtureRepository(NewReader(nil), path, testFixtureColumns, nil).List(context.Background())
	require.Error(t, err)
	require.True(t, crerr.Is(err, ErrMalformedRow), "expected ErrMalformedRow, got %v", err)
	require.Contains(t, err.Error(), path)
	require.Contains(t, err.Error(), "row 3")
}

func TestFixtureRepository_List_MissingColumn(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "fixtures.csv", "Home Team,Away Team\nArsenal,Wolves\n")

	_, err := NewFixtureRepository(NewReader(nil), path, testFixtureColumns, nil).List(context.Background())
	require.Error(t, err)
	require.True(t, crerr.Is(err, ErrMissingColumn), "expected ErrMissingColumn, got %v", err)
	require.Contains(t, err.Error(), `"Result"`)
}

func TestMatchRepository_List(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "stats.csv", "Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HS,AS,HST,AST\n"+
		"16/08/2024,Man United,Fulham,1,0,H,14,10,5,2\n"+
		"17/08/2024,Ipswich,Liverpool,0,2,A,7.0,,2,\n")

	repo := NewMatchRepository(NewReader(nil), path, testMatchColumns, TeamNames{"Man United": "Manchester Utd"})
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	require.Equal(t, "Manchester Utd", first.HomeTeam)
	require.Equal(t, "16/08/2024", first.Date)
	require.Equal(t, "H", first.Result)
	require.Equal(t, 2, first.Row)
	require.True(t, first.HasGoals())
	require.Equal(t, 14, *first.HomeShots)
	require.Equal(t, 2, *first.AwayShotsOnTarget)

	second := got[1]
	require.Equal(t, 7, *second.HomeShots)
	require.Nil(t, second.AwayShots)
	require.False(t, second.HasShots())
	require.Nil(t, second.AwayShotsOnTarget)
}

func TestMatchRepository_List_OptionalColumnsAbsent(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "stats.csv", "HomeTeam,AwayTeam,FTHG,FTAG,HS,AS\nArsenal,Wolves,2,0,18,6\n")

	got, err := NewMatchRepository(NewReader(nil), path, testMatchColumns, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.False(t, got[0].HasShotsOnTarget())
	require.Empty(t, got[0].Date)
}

func TestMatchRepository_List_InvalidNumber(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "stats.csv", "HomeTeam,AwayTeam,FTHG,FTAG,HS,AS\n"+
		"Arsenal,Wolves,2,0,18,6\n"+
		"Wolves,Arsenal,1,one,9,12\n")

	_, err := NewMatchRepository(NewReader(nil), path, testMatchColumns, nil).List(context.Background())
	require.Error(t, err)
	require.True(t, crerr.Is(err, ErrMalformedRow))
	require.Contains(t, err.Error(), "row 3")
	require.Contains(t, err.Error(), `"FTAG"`)
}

func TestReader_ParsesEachPathOnce(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "fixtures.csv", "Home Team,Away Team,Result\nArsenal,Wolves,2-0\n")
	sheets := cache.NewStore[*Sheet](0)
	reader := NewReader(sheets)

	var wg sync.WaitGroup
	results := make([]*Sheet, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = reader.Read(context.Background(), path)
		}(i)
	}
	wg.Wait()

	for i, sheet := range results {
		require.NoError(t, errs[i])
		require.Same(t, results[0], sheet)
	}
	require.Equal(t, 1, sheets.Len())
}

func TestReader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewReader(nil).Read(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	_, err := Parse("empty.csv", strings.NewReader(""))
	require.True(t, crerr.Is(err, ErrMissingColumn))
}
