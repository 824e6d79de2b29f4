package booking

import (
	"errors"
	"testing"

	"github.com/gearsh/gearsh-api/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	b, err := New("book_1", Params{
		ClientID:   "user_1",
		ArtistID:   "artist_1",
		EventDate:  "2025-12-31",
		EventType:  "New Year's Eve",
		TotalPrice: 4500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status() != StatusPending {
		t.Errorf("status = %q, want pending", b.Status())
	}
	if b.ServiceID() != nil || b.Notes() != nil {
		t.Error("empty optionals should be nil")
	}
	if b.EventType() == nil || *b.EventType() != "New Year's Eve" {
		t.Error("event type not kept")
	}
}

func TestNew_Invalid(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name  string
		p     Params
		field string
	}{
		{"missing client", Params{ArtistID: "a", EventDate: "d", TotalPrice: 1}, ""},
		{"missing price", Params{ClientID: "c", ArtistID: "a", EventDate: "d"}, ""},
		{"negative price", Params{ClientID: "c", ArtistID: "a", EventDate: "d", TotalPrice: -1}, "total_price"},
		{"zero duration", Params{ClientID: "c", ArtistID: "a", EventDate: "d", TotalPrice: 1, DurationHours: &zero}, "duration_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("book", tt.p)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected %q validation error, got %v", tt.field, err)
			}
		})
	}
}

func TestParseParty(t *testing.T) {
	if ParseParty("artist") != PartyArtist {
		t.Error("artist")
	}
	for _, in := range []string{"", "client", "admin"} {
		if ParseParty(in) != PartyClient {
			t.Errorf("ParseParty(%q) should be client", in)
		}
	}
}
