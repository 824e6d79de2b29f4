package gearsh

import (
	"time"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/review"
)

// Sort directives accepted by SearchOptions.SortBy.
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortPopular   = "popular"
)

// SearchOptions filters and orders a catalog search.
// Zero values mean "no filter"; Limit 0 means the default page size.
type SearchOptions struct {
	Query      string
	Categories []string
	MinRating  float64
	MinPrice   float64
	MaxPrice   float64
	Verified   bool
	SortBy     string
	Limit      int
	Offset     int
}

// ListOptions filters the top-rated artist listing.
type ListOptions struct {
	Category  string
	MinRating float64
	Verified  bool
	Limit     int
	Offset    int
}

// Artist is a catalog entry.
type Artist struct {
	ID          string
	UserID      string
	Name        string
	Image       string
	Bio         string
	Location    string
	Verified    bool
	Category    string
	Genre       string
	BaseRate    *float64
	Rating      float64
	ReviewCount int
	Trending    bool
	Skills      []string
}

// SearchResult is an Artist with its relevance score.
// HasScore is false unless the search re-ranked by a free-text query.
type SearchResult struct {
	Artist
	Score    float64
	HasScore bool
}

// Service is a bookable offering.
type Service struct {
	ID            string
	Name          string
	Description   string
	Price         *float64
	DurationHours *float64
}

// Review is a visible review on an artist page.
type Review struct {
	ID           string
	Rating       int
	Comment      string
	ReviewerName string
	CreatedAt    time.Time
}

// ArtistPage is the full artist page.
type ArtistPage struct {
	Artist
	Email              string
	Country            string
	TotalBookings      int
	PortfolioURLs      []string
	SocialLinks        map[string]string
	AvailabilityStatus string
	Services           []Service
	Reviews            []Review
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func artistFromDomain(p profile.Profile) Artist {
	return Artist{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Image:       str(p.Image),
		Bio:         str(p.Bio),
		Location:    str(p.Location),
		Verified:    p.Verified,
		Category:    p.Category,
		Genre:       str(p.Genre),
		BaseRate:    p.BaseRate,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Trending:    p.Trending,
		Skills:      p.Skills,
	}
}

func searchResultFromDomain(r profile.Ranked) SearchResult {
	out := SearchResult{Artist: artistFromDomain(r.Profile)}
	if r.Score != nil {
		out.Score, out.HasScore = *r.Score, true
	}
	return out
}

func reviewFromDomain(e review.Entry) Review {
	return Review{
		ID:           e.ID,
		Rating:       e.Rating,
		Comment:      str(e.Comment),
		ReviewerName: str(e.ReviewerName),
		CreatedAt:    e.CreatedAt,
	}
}

func pageFromDomain(d profile.Detail) ArtistPage {
	page := ArtistPage{
		Artist:             artistFromDomain(d.Profile),
		Email:              d.Email,
		Country:            str(d.Country),
		TotalBookings:      d.TotalBookings,
		PortfolioURLs:      d.PortfolioURLs,
		SocialLinks:        d.SocialLinks,
		AvailabilityStatus: d.AvailabilityStatus,
		Services:           make([]Service, len(d.Services)),
		Reviews:            make([]Review, len(d.Reviews)),
	}
	for i, s := range d.Services {
		page.Services[i] = Service{
			ID:            s.ID,
			Name:          s.Name,
			Description:   str(s.Description),
			Price:         s.Price,
			DurationHours: s.DurationHours,
		}
	}
	for i, r := range d.Reviews {
		page.Reviews[i] = reviewFromDomain(r)
	}
	return page
}
