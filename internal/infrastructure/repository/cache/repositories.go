package cache

import (
	"context"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
	basecache "github.com/riskibarqy/league-forecast/internal/platform/cache"
)

const listKey = "list"

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store[[]fixture.Fixture]
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store[[]fixture.Fixture]) *FixtureRepository {
	if cache == nil {
		cache = basecache.NewStore[[]fixture.Fixture](0)
	}
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	items, err := r.cache.GetOrLoad(ctx, listKey, func(ctx context.Context) ([]fixture.Fixture, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]fixture.Fixture(nil), items...), nil
}

type MatchRepository struct {
	next  matchstats.Repository
	cache *basecache.Store[[]matchstats.Match]
}

func NewMatchRepository(next matchstats.Repository, cache *basecache.Store[[]matchstats.Match]) *MatchRepository {
	if cache == nil {
		cache = basecache.NewStore[[]matchstats.Match](0)
	}
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]matchstats.Match, error) {
	items, err := r.cache.GetOrLoad(ctx, listKey, func(ctx context.Context) ([]matchstats.Match, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]matchstats.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]matchstats.Match(nil), items...), nil
}
