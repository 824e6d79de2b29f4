package chi

import (
	"net/http"

	"github.com/gearsh/gearsh-api/internal/domain/booking"
)

// CreateBooking handles POST /api/bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err, "Failed to create booking")
		return
	}
	if sub, ok := SubjectFromContext(r.Context()); ok {
		req.ClientID = sub
	}

	b, err := s.svc.Bookings.Create(r.Context(), booking.Params{
		ClientID:      req.ClientID,
		ArtistID:      req.ArtistID,
		ServiceID:     req.ServiceID,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		EventLocation: req.EventLocation,
		EventType:     req.EventType,
		DurationHours: req.DurationHours,
		TotalPrice:    req.TotalPrice,
		Notes:         req.Notes,
	})
	if err != nil {
		s.handleError(w, r, err, "Failed to create booking")
		return
	}
	writeData(w, http.StatusCreated, map[string]string{
		"booking_id": b.ID(),
		"status":     string(b.Status()),
	}, nil)
}

// ListBookings handles GET /api/bookings.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.svc.Bookings.List(r.Context(), booking.Query{
		UserID: q.Get("user_id"),
		Party:  booking.ParseParty(q.Get("user_type")),
		Status: q.Get("status"),
	})
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch bookings")
		return
	}
	writeData(w, http.StatusOK, bookingsToDTO(entries), nil)
}
