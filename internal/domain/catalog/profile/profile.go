// Package profile holds the artist catalog read models.
package profile

import "github.com/gearsh/gearsh-api/internal/domain/review"

// Profile is a catalog entry joined with its owner's public fields.
type Profile struct {
	ID              string
	UserID          string
	Name            string
	Image           *string
	Bio             *string
	Location        *string
	Verified        bool
	Category        string
	Genre           *string
	BaseRate        *float64
	HourlyRate      *float64
	Rating          float64
	ReviewCount     int
	Trending        bool
	Skills          []string
	YearsExperience *int
}

// Ranked is a Profile with an optional relevance score.
// Score is nil unless the result was re-ranked for a free-text term.
type Ranked struct {
	Profile
	Score *float64
}

// Detail is the full artist page.
type Detail struct {
	Profile
	FirstName          *string
	LastName           *string
	Email              string
	Country            *string
	Phone              *string
	TotalBookings      int
	PortfolioURLs      []string
	SocialLinks        map[string]string
	AvailabilityStatus string
	Services           []Service
	Reviews            []review.Entry
}

// Service is a bookable offering of an artist.
type Service struct {
	ID            string
	Name          string
	Description   *string
	Price         *float64
	DurationHours *float64
}
