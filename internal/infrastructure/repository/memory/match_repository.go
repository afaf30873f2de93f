package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-forecast/internal/domain/matchstats"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []matchstats.Match
}

func NewMatchRepository(matches []matchstats.Match) *MatchRepository {
	return &MatchRepository{matches: append([]matchstats.Match(nil), matches...)}
}

func (r *MatchRepository) List(_ context.Context) ([]matchstats.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstats.Match, 0, len(r.matches))
	out = append(out, r.matches...)
	return out, nil
}
