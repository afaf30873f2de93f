package fixture

import "context"

// Repository exposes the season fixture list with canonical team names.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
}
