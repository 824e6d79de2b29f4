package review

import (
	"time"

	"github.com/gearsh/gearsh-api/internal/domain"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// List pagination.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Review is a validated review submission.
type Review struct {
	id         string
	bookingID  string
	reviewerID string
	artistID   string
	rating     int
	comment    *string
}

// New validates a review. Booking, reviewer, artist and rating are required.
func New(id, bookingID, reviewerID, artistID string, rating int, comment string) (Review, error) {
	if id == "" {
		return Review{}, domain.Invalid("id", "is required")
	}
	if bookingID == "" || reviewerID == "" || artistID == "" || rating == 0 {
		return Review{}, domain.Invalid("", "Missing required fields")
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, domain.Invalid("rating", "must be between %d and %d", MinRating, MaxRating)
	}
	r := Review{id: id, bookingID: bookingID, reviewerID: reviewerID, artistID: artistID, rating: rating}
	if comment != "" {
		r.comment = &comment
	}
	return r, nil
}

// ID returns the review identifier.
func (r Review) ID() string { return r.id }

// BookingID returns the reviewed booking.
func (r Review) BookingID() string { return r.bookingID }

// ReviewerID returns the author's user id.
func (r Review) ReviewerID() string { return r.reviewerID }

// ArtistID returns the reviewed artist profile.
func (r Review) ArtistID() string { return r.artistID }

// Rating returns the 1..5 star rating.
func (r Review) Rating() int { return r.rating }

// Comment returns the optional comment.
func (r Review) Comment() *string { return r.comment }

// Entry is a visible review as listed for an artist.
type Entry struct {
	ID            string
	Rating        int
	Comment       *string
	CreatedAt     time.Time
	ReviewerName  *string
	FirstName     *string
	LastName      *string
	ReviewerImage *string
}

// ListQuery selects visible reviews of one artist.
type ListQuery struct {
	ArtistID string
	Limit    int
	Offset   int
}

// NewListQuery validates the artist id and pagination.
func NewListQuery(artistID string, limit, offset *int) (ListQuery, error) {
	if artistID == "" {
		return ListQuery{}, domain.Invalid("artist_id", "is required")
	}
	q := ListQuery{ArtistID: artistID, Limit: DefaultLimit}
	if limit != nil {
		switch {
		case *limit < 0:
			return ListQuery{}, domain.Invalid("limit", "must be non-negative")
		case *limit > MaxLimit:
			q.Limit = MaxLimit
		case *limit > 0:
			q.Limit = *limit
		}
	}
	if offset != nil {
		if *offset < 0 {
			return ListQuery{}, domain.Invalid("offset", "must be non-negative")
		}
		q.Offset = *offset
	}
	return q, nil
}
