package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/booking"
)

// store is the consumer interface for booking persistence (ISP).
type store interface {
	db.Querier
	db.Transactor
	Dialect() db.Dialect
}

// Repo implements usecase/booking.Repository.
type Repo struct {
	store store
}

// New creates a booking repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create inserts a pending booking and bumps the artist's booking counter atomically.
func (r *Repo) Create(ctx context.Context, b booking.Booking) error {
	d := r.store.Dialect()
	return r.store.InTx(ctx, func(q db.Querier) error {
		n, err := q.Exec(ctx, db.Raw(d,
			`UPDATE artist_profiles SET total_bookings = total_bookings + 1 WHERE id = ?`, b.ArtistID()))
		if err != nil {
			return fmt.Errorf("bump bookings %s: %w", b.ArtistID(), err)
		}
		if n == 0 {
			return domain.ErrArtistNotFound
		}

		_, err = q.Exec(ctx, db.Raw(d,
			`INSERT INTO bookings (
			   id, client_id, artist_id, service_id, event_date, event_time,
			   event_location, event_type, duration_hours, total_price, notes, status
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID(), b.ClientID(), b.ArtistID(), b.ServiceID(), b.EventDate(), b.EventTime(),
			b.EventLocation(), b.EventType(), b.DurationHours(), b.TotalPrice(), b.Notes(), string(b.Status())))
		if err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return fmt.Errorf("booking %s: %w", b.ID(), domain.ErrAlreadyExists)
			}
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
}

// List returns bookings for one party, latest event first.
// An artist-side query for a user without an artist profile yields no rows.
func (r *Repo) List(ctx context.Context, q booking.Query) ([]booking.Entry, error) {
	d := r.store.Dialect()

	var party db.Predicate
	if q.Party == booking.PartyArtist {
		row, err := r.store.QueryRow(ctx, db.Select("id").From("artist_profiles").
			Where(db.Eq("user_id", q.UserID)).MustBuild(d))
		if err != nil {
			if errors.Is(err, db.ErrNoRows) {
				return []booking.Entry{}, nil
			}
			return nil, fmt.Errorf("resolve artist for %s: %w", q.UserID, err)
		}
		party = db.Eq("b.artist_id", row.String("id"))
	} else {
		party = db.Eq("b.client_id", q.UserID)
	}

	var status db.Predicate
	if q.Status != "" {
		status = db.Eq("b.status", q.Status)
	}

	stmt, err := db.Select(
		"b.id AS id", "b.client_id AS client_id", "b.artist_id AS artist_id", "b.service_id AS service_id",
		"b.event_date AS event_date", "b.event_time AS event_time", "b.event_location AS event_location",
		"b.event_type AS event_type", "b.duration_hours AS duration_hours", "b.total_price AS total_price",
		"b.notes AS notes", "b.status AS status", "b.created_at AS created_at",
		"u_client.display_name AS client_name",
		"u_artist.display_name AS artist_name",
		"u_artist.profile_picture_url AS artist_image",
		"ap.category AS artist_category",
		"s.name AS service_name",
	).
		From("bookings b").
		Join("users u_client ON b.client_id = u_client.id").
		Join("artist_profiles ap ON b.artist_id = ap.id").
		Join("users u_artist ON ap.user_id = u_artist.id").
		LeftJoin("services s ON b.service_id = s.id").
		Where(party, status).
		OrderBy(db.Desc("b.event_date"), db.Desc("b.id")).
		Build(d)
	if err != nil {
		return nil, fmt.Errorf("compile bookings: %w", err)
	}

	rows, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", q.UserID, err)
	}

	out := make([]booking.Entry, 0, len(rows))
	for _, row := range rows {
		e := booking.Entry{
			ID:             row.String("id"),
			ClientID:       row.String("client_id"),
			ArtistID:       row.String("artist_id"),
			ServiceID:      row.NullString("service_id"),
			EventDate:      row.String("event_date"),
			EventTime:      row.NullString("event_time"),
			EventLocation:  row.NullString("event_location"),
			EventType:      row.NullString("event_type"),
			TotalPrice:     row.Float("total_price"),
			Notes:          row.NullString("notes"),
			Status:         booking.Status(row.String("status")),
			CreatedAt:      row.Time("created_at"),
			ClientName:     row.NullString("client_name"),
			ArtistName:     row.NullString("artist_name"),
			ArtistImage:    row.NullString("artist_image"),
			ArtistCategory: row.String("artist_category"),
			ServiceName:    row.NullString("service_name"),
		}
		if h, ok := row.NullFloat("duration_hours"); ok {
			e.DurationHours = &h
		}
		out = append(out, e)
	}
	return out, nil
}
