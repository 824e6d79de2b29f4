package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/db/dbtest"
	"github.com/gearsh/gearsh-api/internal/db/sqlstore"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/booking"
)

func seed(t *testing.T) *sqlstore.Store {
	t.Helper()
	s := dbtest.NewStore(t)
	dbtest.SeedArtist(t, s, dbtest.Artist{ID: "a1", UserID: "ua1", Name: "DJSipho", Category: "DJ"})
	dbtest.SeedUser(t, s, dbtest.User{ID: "c1", DisplayName: "Naledi"})
	dbtest.SeedUser(t, s, dbtest.User{ID: "c2", DisplayName: "Bongani"})
	dbtest.SeedService(t, s, "svc_1", "a1", "Wedding set", 3500)
	return s
}

func mustBooking(t *testing.T, id, clientID, date string) booking.Booking {
	t.Helper()
	b, err := booking.New(id, booking.Params{
		ClientID:   clientID,
		ArtistID:   "a1",
		ServiceID:  "svc_1",
		EventDate:  date,
		TotalPrice: 3500,
	})
	if err != nil {
		t.Fatalf("booking.New: %v", err)
	}
	return b
}

func TestCreate_BumpsCounter(t *testing.T) {
	s := seed(t)
	repo := New(s)
	ctx := context.Background()

	for id, date := range map[string]string{"b1": "2025-06-01", "b2": "2025-06-02"} {
		if err := repo.Create(ctx, mustBooking(t, id, "c1", date)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	row, err := s.QueryRow(ctx, db.Select("total_bookings").From("artist_profiles").
		Where(db.Eq("id", "a1")).MustBuild(s.Dialect()))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if row.Int("total_bookings") != 2 {
		t.Errorf("total_bookings = %d, want 2", row.Int("total_bookings"))
	}
}

func TestCreate_UnknownArtist(t *testing.T) {
	repo := New(seed(t))
	b, _ := booking.New("b1", booking.Params{ClientID: "c1", ArtistID: "ghost", EventDate: "2025-06-01", TotalPrice: 1})
	if err := repo.Create(context.Background(), b); !errors.Is(err, domain.ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
}

func TestList_ClientAndArtistPerspectives(t *testing.T) {
	s := seed(t)
	repo := New(s)
	ctx := context.Background()

	for _, b := range []booking.Booking{
		mustBooking(t, "b1", "c1", "2025-06-01"),
		mustBooking(t, "b2", "c1", "2025-08-01"),
		mustBooking(t, "b3", "c2", "2025-07-01"),
	} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mine, err := repo.List(ctx, booking.Query{UserID: "c1", Party: booking.PartyClient})
	if err != nil {
		t.Fatalf("list client: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "b2" || mine[1].ID != "b1" {
		t.Fatalf("client bookings = %+v", mine)
	}
	e := mine[0]
	if e.Status != booking.StatusPending || *e.ClientName != "Naledi" || *e.ArtistName != "DJSipho" {
		t.Errorf("entry = %+v", e)
	}
	if e.ArtistCategory != "DJ" || e.ServiceName == nil || *e.ServiceName != "Wedding set" {
		t.Errorf("joins missing: %+v", e)
	}

	gigs, err := repo.List(ctx, booking.Query{UserID: "ua1", Party: booking.PartyArtist})
	if err != nil {
		t.Fatalf("list artist: %v", err)
	}
	if len(gigs) != 3 {
		t.Errorf("artist bookings = %d, want 3", len(gigs))
	}
}

func TestList_StatusFilterAndNoProfile(t *testing.T) {
	s := seed(t)
	dbtest.SeedBooking(t, s, "b1", "c1", "a1", "2025-06-01", "completed")
	dbtest.SeedBooking(t, s, "b2", "c1", "a1", "2025-07-01", "pending")
	repo := New(s)
	ctx := context.Background()

	done, err := repo.List(ctx, booking.Query{UserID: "c1", Status: "completed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(done) != 1 || done[0].ID != "b1" {
		t.Errorf("completed = %+v", done)
	}

	none, err := repo.List(ctx, booking.Query{UserID: "c1", Party: booking.PartyArtist})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("client without artist profile should get an empty list, got %#v", none)
	}
}
