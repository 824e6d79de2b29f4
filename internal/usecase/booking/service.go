package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/booking"
)

const idPrefix = "book_"

// Service manages booking requests.
type Service struct {
	repo  Repository
	cache Invalidator
	newID func() string
}

// New creates a booking service. cache can be nil.
func New(repo Repository, cache Invalidator) *Service {
	return &Service{repo: repo, cache: cache, newID: uuid.NewString}
}

// Create stores a pending booking and returns it.
func (s *Service) Create(ctx context.Context, p booking.Params) (booking.Booking, error) {
	b, err := booking.New(idPrefix+s.newID(), p)
	if err != nil {
		return booking.Booking{}, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return booking.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	// total_bookings changed.
	if s.cache != nil {
		s.cache.Invalidate(ctx, b.ArtistID())
	}
	return b, nil
}

// List returns the bookings of one party, latest event first.
func (s *Service) List(ctx context.Context, q booking.Query) ([]booking.Entry, error) {
	if q.UserID == "" {
		return nil, domain.Invalid("user_id", "is required")
	}
	entries, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return entries, nil
}
