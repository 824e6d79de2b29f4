package review

import (
	"context"

	"github.com/gearsh/gearsh-api/internal/domain/review"
)

// Repository defines the storage contract for reviews.
type Repository interface {
	Create(ctx context.Context, rv review.Review) error
	List(ctx context.Context, q review.ListQuery) ([]review.Entry, int, error)
}

// Invalidator drops cached artist pages.
type Invalidator interface {
	Invalidate(ctx context.Context, artistID string)
}
