package search

import (
	"context"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
)

// Repository defines the storage contract for catalog search.
type Repository interface {
	// Search returns one page of active profiles matching spec in store order.
	Search(ctx context.Context, spec filter.Spec) ([]profile.Profile, error)
}

// Recorder observes completed searches.
type Recorder interface {
	ObserveSearch(sort string, ranked bool, results int)
}
