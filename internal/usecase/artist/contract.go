package artist

import (
	"context"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/review"
)

// Repository defines the storage contract for the artist catalog.
type Repository interface {
	Search(ctx context.Context, spec filter.Spec) ([]profile.Profile, error)
	Get(ctx context.Context, id string) (profile.Detail, error)
	Services(ctx context.Context, artistID string) ([]profile.Service, error)
}

// ReviewReader reads the latest reviews of an artist.
type ReviewReader interface {
	Recent(ctx context.Context, artistID string, n int) ([]review.Entry, error)
}

// Cache stores assembled artist pages.
type Cache interface {
	Get(ctx context.Context, id string) (profile.Detail, bool)
	Put(ctx context.Context, d profile.Detail)
}
