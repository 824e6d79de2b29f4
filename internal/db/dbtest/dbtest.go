// Package dbtest provides an in-memory SQLite store with seed helpers for tests.
package dbtest

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/db/sqlite"
	"github.com/gearsh/gearsh-api/internal/db/sqlstore"
)

// NewStore opens a fresh in-memory database with the schema applied.
func NewStore(t testing.TB) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()
	s, err := sqlite.Open(ctx, sqlite.Config{Path: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(s.Close)
	if err := sqlite.ApplySchema(ctx, s); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return s
}

// Artist describes a seeded user + artist profile pair.
type Artist struct {
	ID          string
	UserID      string
	Name        string
	Email       string
	Bio         string
	Location    string
	Verified    bool
	Inactive    bool
	Category    string
	Genre       string
	BaseRate    float64
	Rating      float64
	ReviewCount int
	Trending    bool
	Skills      []string
}

// SeedArtist inserts a user and its artist profile. Zero-value text fields are stored as NULL.
func SeedArtist(t testing.TB, s db.Store, a Artist) {
	t.Helper()
	if a.UserID == "" {
		a.UserID = "user_" + a.ID
	}
	if a.Email == "" {
		a.Email = a.ID + "@example.com"
	}
	if a.Category == "" {
		a.Category = "DJ"
	}
	SeedUser(t, s, User{
		ID:          a.UserID,
		Email:       a.Email,
		Type:        "artist",
		DisplayName: a.Name,
		Bio:         a.Bio,
		Location:    a.Location,
		Verified:    a.Verified,
		Inactive:    a.Inactive,
	})

	var skills any
	if a.Skills != nil {
		raw, _ := json.Marshal(a.Skills)
		skills = string(raw)
	}
	var baseRate any
	if a.BaseRate > 0 {
		baseRate = a.BaseRate
	}

	mustExec(t, s, `INSERT INTO artist_profiles
		(id, user_id, category, genre, base_rate, avg_rating, total_reviews, is_trending, skills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Category, nullable(a.Genre), baseRate, a.Rating, a.ReviewCount, a.Trending, skills)
}

// User describes a seeded user row.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Type         string
	FirstName    string
	LastName     string
	DisplayName  string
	Bio          string
	Location     string
	Verified     bool
	Inactive     bool
	CreatedAt    string
}

// SeedUser inserts a user row.
func SeedUser(t testing.TB, s db.Store, u User) {
	t.Helper()
	if u.Email == "" {
		u.Email = u.ID + "@example.com"
	}
	if u.Type == "" {
		u.Type = "client"
	}
	if u.CreatedAt == "" {
		u.CreatedAt = "2024-01-01 00:00:00"
	}
	mustExec(t, s, `INSERT INTO users
		(id, email, password_hash, user_type, first_name, last_name, display_name, bio, location,
		 is_verified, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Type, nullable(u.FirstName), nullable(u.LastName),
		nullable(u.DisplayName), nullable(u.Bio), nullable(u.Location), u.Verified, !u.Inactive, u.CreatedAt)
}

// SeedService inserts an active service for an artist.
func SeedService(t testing.TB, s db.Store, id, artistID, name string, price float64) {
	t.Helper()
	mustExec(t, s, `INSERT INTO services (id, artist_id, name, price) VALUES (?, ?, ?, ?)`,
		id, artistID, name, price)
}

// SeedBooking inserts a booking.
func SeedBooking(t testing.TB, s db.Store, id, clientID, artistID, eventDate, status string) {
	t.Helper()
	mustExec(t, s, `INSERT INTO bookings (id, client_id, artist_id, event_date, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?)`, id, clientID, artistID, eventDate, 1000.0, status)
}

// SeedReview inserts a review with an explicit timestamp.
func SeedReview(t testing.TB, s db.Store, id, bookingID, reviewerID, artistID string, rating int, createdAt string) {
	t.Helper()
	mustExec(t, s, `INSERT INTO reviews (id, booking_id, reviewer_id, artist_id, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`, id, bookingID, reviewerID, artistID, rating, createdAt)
}

func mustExec(t testing.TB, s db.Store, query string, args ...any) {
	t.Helper()
	if _, err := s.Exec(context.Background(), db.Raw(s.Dialect(), query, args...)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
