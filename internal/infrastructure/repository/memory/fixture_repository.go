package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-forecast/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	return &FixtureRepository{fixtures: append([]fixture.Fixture(nil), fixtures...)}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	out = append(out, r.fixtures...)
	return out, nil
}

// Replace swaps the stored fixtures.
func (r *FixtureRepository) Replace(fixtures []fixture.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixtures = append([]fixture.Fixture(nil), fixtures...)
}
