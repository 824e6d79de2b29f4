package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gearsh/gearsh-api/internal/domain/review"
)

const idPrefix = "rev_"

// CreateParams is a review submission.
type CreateParams struct {
	BookingID  string
	ReviewerID string
	ArtistID   string
	Rating     int
	Comment    string
}

// Service manages artist reviews.
type Service struct {
	repo  Repository
	cache Invalidator
	newID func() string
}

// New creates a review service. cache can be nil.
func New(repo Repository, cache Invalidator) *Service {
	return &Service{repo: repo, cache: cache, newID: uuid.NewString}
}

// Create stores a review and returns its id. The artist's rating aggregate is
// recomputed by the repository in the same transaction.
func (s *Service) Create(ctx context.Context, p CreateParams) (string, error) {
	rv, err := review.New(idPrefix+s.newID(), p.BookingID, p.ReviewerID, p.ArtistID, p.Rating, p.Comment)
	if err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return "", fmt.Errorf("create review: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, rv.ArtistID())
	}
	return rv.ID(), nil
}

// List returns a page of an artist's visible reviews and the total count.
func (s *Service) List(ctx context.Context, q review.ListQuery) ([]review.Entry, int, error) {
	entries, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return entries, total, nil
}
