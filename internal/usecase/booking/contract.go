package booking

import (
	"context"

	"github.com/gearsh/gearsh-api/internal/domain/booking"
)

// Repository defines the storage contract for bookings.
type Repository interface {
	Create(ctx context.Context, b booking.Booking) error
	List(ctx context.Context, q booking.Query) ([]booking.Entry, error)
}

// Invalidator drops cached artist pages.
type Invalidator interface {
	Invalidate(ctx context.Context, artistID string)
}
