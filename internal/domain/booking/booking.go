package booking

import (
	"time"

	"github.com/gearsh/gearsh-api/internal/domain"
)

// Status is the booking lifecycle state.
type Status string

// Booking statuses.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Party selects whose bookings are listed.
type Party string

// Listing perspectives.
const (
	PartyClient Party = "client"
	PartyArtist Party = "artist"
)

// ParseParty maps raw input to a Party. Anything but "artist" is a client.
func ParseParty(raw string) Party {
	if Party(raw) == PartyArtist {
		return PartyArtist
	}
	return PartyClient
}

// Params is raw booking input.
type Params struct {
	ClientID      string
	ArtistID      string
	ServiceID     string
	EventDate     string
	EventTime     string
	EventLocation string
	EventType     string
	DurationHours *float64
	TotalPrice    float64
	Notes         string
}

// Booking is a validated booking request. New bookings are always pending.
type Booking struct {
	id            string
	clientID      string
	artistID      string
	serviceID     *string
	eventDate     string
	eventTime     *string
	eventLocation *string
	eventType     *string
	durationHours *float64
	totalPrice    float64
	notes         *string
}

// New validates p. Client, artist, event date and a positive total price are required.
func New(id string, p Params) (Booking, error) {
	if id == "" {
		return Booking{}, domain.Invalid("id", "is required")
	}
	if p.ClientID == "" || p.ArtistID == "" || p.EventDate == "" || p.TotalPrice == 0 {
		return Booking{}, domain.Invalid("", "Missing required fields")
	}
	if p.TotalPrice < 0 {
		return Booking{}, domain.Invalid("total_price", "must be positive")
	}
	if p.DurationHours != nil && *p.DurationHours <= 0 {
		return Booking{}, domain.Invalid("duration_hours", "must be positive")
	}
	return Booking{
		id:            id,
		clientID:      p.ClientID,
		artistID:      p.ArtistID,
		serviceID:     optional(p.ServiceID),
		eventDate:     p.EventDate,
		eventTime:     optional(p.EventTime),
		eventLocation: optional(p.EventLocation),
		eventType:     optional(p.EventType),
		durationHours: p.DurationHours,
		totalPrice:    p.TotalPrice,
		notes:         optional(p.Notes),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (b Booking) ID() string              { return b.id }
func (b Booking) ClientID() string        { return b.clientID }
func (b Booking) ArtistID() string        { return b.artistID }
func (b Booking) ServiceID() *string      { return b.serviceID }
func (b Booking) EventDate() string       { return b.eventDate }
func (b Booking) EventTime() *string      { return b.eventTime }
func (b Booking) EventLocation() *string  { return b.eventLocation }
func (b Booking) EventType() *string      { return b.eventType }
func (b Booking) DurationHours() *float64 { return b.durationHours }
func (b Booking) TotalPrice() float64     { return b.totalPrice }
func (b Booking) Notes() *string          { return b.notes }
func (b Booking) Status() Status          { return StatusPending }

// Entry is a booking as listed for a client or artist.
type Entry struct {
	ID             string
	ClientID       string
	ArtistID       string
	ServiceID      *string
	EventDate      string
	EventTime      *string
	EventLocation  *string
	EventType      *string
	DurationHours  *float64
	TotalPrice     float64
	Notes          *string
	Status         Status
	CreatedAt      time.Time
	ClientName     *string
	ArtistName     *string
	ArtistImage    *string
	ArtistCategory string
	ServiceName    *string
}

// Query selects bookings for one party.
type Query struct {
	UserID string
	Party  Party
	Status string
}
