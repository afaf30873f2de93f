package matchstats

import "context"

// Repository exposes played-match statistics with canonical team names.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
}
