package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
	fixturemock "github.com/riskibarqy/league-forecast/internal/mocks/domain/fixture"
	matchstatsmock "github.com/riskibarqy/league-forecast/internal/mocks/domain/matchstats"
)

func TestFixtureRepository_LoadsOnce(t *testing.T) {
	t.Parallel()

	next := fixturemock.NewRepository(t)
	next.On("List", mock.Anything).
		Return([]fixture.Fixture{{Round: 1, HomeTeam: "Arsenal", AwayTeam: "Wolves"}}, nil).
		Once()

	repo := NewFixtureRepository(next, nil)
	for i := 0; i < 3; i++ {
		items, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		items[0].HomeTeam = "mutated"
	}

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Arsenal", items[0].HomeTeam)
}

func TestMatchRepository_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("read failed")
	next := matchstatsmock.NewRepository(t)
	next.On("List", mock.Anything).Return(nil, loadErr).Once()
	next.On("List", mock.Anything).Return([]matchstats.Match{{HomeTeam: "Arsenal", AwayTeam: "Wolves"}}, nil).Once()

	repo := NewMatchRepository(next, nil)
	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, loadErr)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
}
