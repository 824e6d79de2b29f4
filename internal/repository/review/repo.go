package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/review"
)

// store is the consumer interface for review persistence (ISP).
type store interface {
	db.Querier
	db.Transactor
	Dialect() db.Dialect
}

// Repo implements usecase/review.Repository.
type Repo struct {
	store store
}

// New creates a review repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create inserts a review and recomputes the artist's rating aggregate
// in the same transaction. The booking must exist and have no review yet.
func (r *Repo) Create(ctx context.Context, rv review.Review) error {
	d := r.store.Dialect()
	return r.store.InTx(ctx, func(q db.Querier) error {
		_, err := q.QueryRow(ctx, db.Select("id").From("bookings").
			Where(db.Eq("id", rv.BookingID())).MustBuild(d))
		if err != nil {
			if errors.Is(err, db.ErrNoRows) {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("lookup booking %s: %w", rv.BookingID(), err)
		}

		_, err = q.Exec(ctx, db.Raw(d,
			`INSERT INTO reviews (id, booking_id, reviewer_id, artist_id, rating, comment)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rv.ID(), rv.BookingID(), rv.ReviewerID(), rv.ArtistID(), rv.Rating(), rv.Comment()))
		if err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return domain.ErrReviewExists
			}
			return fmt.Errorf("insert review: %w", err)
		}

		n, err := q.Exec(ctx, db.Raw(d,
			`UPDATE artist_profiles SET
			   avg_rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE artist_id = ? AND is_visible = ?),
			   total_reviews = (SELECT COUNT(*) FROM reviews WHERE artist_id = ? AND is_visible = ?)
			 WHERE id = ?`,
			rv.ArtistID(), true, rv.ArtistID(), true, rv.ArtistID()))
		if err != nil {
			return fmt.Errorf("recompute rating %s: %w", rv.ArtistID(), err)
		}
		if n == 0 {
			return domain.ErrArtistNotFound
		}
		return nil
	})
}

// List returns a page of visible reviews, newest first, and the total visible count.
func (r *Repo) List(ctx context.Context, q review.ListQuery) ([]review.Entry, int, error) {
	d := r.store.Dialect()
	artistID := q.ArtistID

	stmt, err := listQuery(artistID).Limit(q.Limit).Offset(q.Offset).Build(d)
	if err != nil {
		return nil, 0, fmt.Errorf("compile reviews: %w", err)
	}
	rows, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews %s: %w", artistID, err)
	}

	count, err := r.store.QueryRow(ctx, db.Select("COUNT(*) AS total").From("reviews").
		Where(db.Eq("artist_id", artistID), db.Eq("is_visible", true)).MustBuild(d))
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews %s: %w", artistID, err)
	}

	return shapeEntries(rows), int(count.Int("total")), nil
}

// Recent returns the n newest visible reviews.
func (r *Repo) Recent(ctx context.Context, artistID string, n int) ([]review.Entry, error) {
	stmt, err := listQuery(artistID).Limit(n).Build(r.store.Dialect())
	if err != nil {
		return nil, fmt.Errorf("compile reviews: %w", err)
	}
	rows, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("recent reviews %s: %w", artistID, err)
	}
	return shapeEntries(rows), nil
}

func listQuery(artistID string) *db.SelectBuilder {
	return db.Select(
		"r.id AS id",
		"r.rating AS rating",
		"r.comment AS comment",
		"r.created_at AS created_at",
		"u.display_name AS reviewer_name",
		"u.first_name AS first_name",
		"u.last_name AS last_name",
		"u.profile_picture_url AS reviewer_image",
	).
		From("reviews r").
		Join("users u ON r.reviewer_id = u.id").
		Where(db.Eq("r.artist_id", artistID), db.Eq("r.is_visible", true)).
		OrderBy(db.Desc("r.created_at"), db.Desc("r.id"))
}

func shapeEntries(rows []db.Row) []review.Entry {
	out := make([]review.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, review.Entry{
			ID:            row.String("id"),
			Rating:        int(row.Int("rating")),
			Comment:       row.NullString("comment"),
			CreatedAt:     row.Time("created_at"),
			ReviewerName:  row.NullString("reviewer_name"),
			FirstName:     row.NullString("first_name"),
			LastName:      row.NullString("last_name"),
			ReviewerImage: row.NullString("reviewer_image"),
		})
	}
	return out
}
