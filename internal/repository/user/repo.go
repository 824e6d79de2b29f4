package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/user"
)

// store is the consumer interface for account persistence (ISP).
type store interface {
	db.Querier
	db.Transactor
	Dialect() db.Dialect
}

// Repo implements usecase/account.Repository.
type Repo struct {
	store store
}

// New creates a user repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

var accountColumns = []string{
	"id", "email", "password_hash", "user_type", "first_name", "last_name", "display_name",
	"profile_picture_url", "phone", "location", "country", "bio", "is_verified", "created_at",
}

// Create inserts a user. Artists also get a default profile in the same transaction.
func (r *Repo) Create(ctx context.Context, userID, artistID, passwordHash string, reg user.Registration) error {
	d := r.store.Dialect()
	return r.store.InTx(ctx, func(q db.Querier) error {
		_, err := q.Exec(ctx, db.Raw(d,
			`INSERT INTO users (id, email, password_hash, user_type, first_name, last_name,
			   display_name, phone, location, country)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, reg.Email, passwordHash, string(reg.Type), reg.FirstName, reg.LastName,
			reg.DisplayName, reg.Phone, reg.Location, reg.Country))
		if err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return domain.ErrEmailTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}

		if reg.Type != user.TypeArtist {
			return nil
		}
		_, err = q.Exec(ctx, db.Raw(d,
			`INSERT INTO artist_profiles (id, user_id, category, availability_status) VALUES (?, ?, ?, ?)`,
			artistID, userID, user.DefaultArtistCategory, user.DefaultAvailability))
		if err != nil {
			return fmt.Errorf("insert artist profile: %w", err)
		}
		return nil
	})
}

// ByEmail returns the active account with the given (lowercased) email.
func (r *Repo) ByEmail(ctx context.Context, email string) (user.Account, error) {
	return r.one(ctx, db.Eq("email", email))
}

// ByID returns the active account with the given id.
func (r *Repo) ByID(ctx context.Context, id string) (user.Account, error) {
	return r.one(ctx, db.Eq("id", id))
}

func (r *Repo) one(ctx context.Context, by db.Predicate) (user.Account, error) {
	stmt, err := db.Select(accountColumns...).From("users").
		Where(by, db.Eq("is_active", true)).Build(r.store.Dialect())
	if err != nil {
		return user.Account{}, fmt.Errorf("compile user: %w", err)
	}
	row, err := r.store.QueryRow(ctx, stmt)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return user.Account{}, domain.ErrUserNotFound
		}
		return user.Account{}, fmt.Errorf("get user: %w", err)
	}
	return shapeAccount(row), nil
}

// ArtistSummary returns the artist profile owned by userID, if any.
func (r *Repo) ArtistSummary(ctx context.Context, userID string) (*user.ArtistSummary, error) {
	row, err := r.store.QueryRow(ctx, db.Select(
		"id", "category", "genre", "base_rate", "hourly_rate", "avg_rating", "total_reviews",
		"total_bookings", "is_trending", "availability_status",
	).From("artist_profiles").Where(db.Eq("user_id", userID)).MustBuild(r.store.Dialect()))
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("artist profile for %s: %w", userID, err)
	}

	s := &user.ArtistSummary{
		ID:                 row.String("id"),
		Category:           row.String("category"),
		Genre:              row.NullString("genre"),
		Rating:             row.Float("avg_rating"),
		ReviewCount:        int(row.Int("total_reviews")),
		TotalBookings:      int(row.Int("total_bookings")),
		Trending:           row.Bool("is_trending"),
		AvailabilityStatus: row.String("availability_status"),
	}
	if f, ok := row.NullFloat("base_rate"); ok {
		s.BaseRate = &f
	}
	if f, ok := row.NullFloat("hourly_rate"); ok {
		s.HourlyRate = &f
	}
	return s, nil
}

// List returns a page of active users, newest first, and the total matching count.
func (r *Repo) List(ctx context.Context, q user.ListQuery) ([]user.Account, int, error) {
	d := r.store.Dialect()
	preds := []db.Predicate{db.Eq("is_active", true)}
	if q.Type != "" {
		preds = append(preds, db.Eq("user_type", string(q.Type)))
	}

	stmt, err := db.Select(accountColumns...).From("users").Where(preds...).
		OrderBy(db.Desc("created_at"), db.Asc("id")).
		Limit(q.Limit).Offset(q.Offset).Build(d)
	if err != nil {
		return nil, 0, fmt.Errorf("compile users: %w", err)
	}
	rows, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	count, err := r.store.QueryRow(ctx, db.Select("COUNT(*) AS total").From("users").
		Where(preds...).MustBuild(d))
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	out := make([]user.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, shapeAccount(row))
	}
	return out, int(count.Int("total")), nil
}

// UpdateProfile applies the non-nil fields of patch to an active user.
func (r *Repo) UpdateProfile(ctx context.Context, id string, patch user.ProfilePatch) error {
	n, err := r.store.Exec(ctx, db.Raw(r.store.Dialect(),
		`UPDATE users SET
		   first_name = COALESCE(?, first_name),
		   last_name = COALESCE(?, last_name),
		   display_name = COALESCE(?, display_name),
		   phone = COALESCE(?, phone),
		   location = COALESCE(?, location),
		   bio = COALESCE(?, bio),
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND is_active = ?`,
		patch.FirstName, patch.LastName, patch.DisplayName, patch.Phone, patch.Location, patch.Bio,
		id, true))
	if err != nil {
		return fmt.Errorf("update profile %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func shapeAccount(row db.Row) user.Account {
	return user.Account{
		ID:                row.String("id"),
		Email:             row.String("email"),
		PasswordHash:      row.String("password_hash"),
		Type:              user.Type(row.String("user_type")),
		FirstName:         row.NullString("first_name"),
		LastName:          row.NullString("last_name"),
		DisplayName:       row.NullString("display_name"),
		ProfilePictureURL: row.NullString("profile_picture_url"),
		Phone:             row.NullString("phone"),
		Location:          row.NullString("location"),
		Country:           row.NullString("country"),
		Bio:               row.NullString("bio"),
		Verified:          row.Bool("is_verified"),
		CreatedAt:         row.Time("created_at"),
	}
}
