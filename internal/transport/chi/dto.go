package chi

import (
	"time"

	"github.com/gearsh/gearsh-api/internal/domain/booking"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/review"
	"github.com/gearsh/gearsh-api/internal/domain/user"
	accountuc "github.com/gearsh/gearsh-api/internal/usecase/account"
)

// --- Requests ---

type searchRequest struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	MinRating  *float64 `json:"minRating"`
	MaxPrice   *float64 `json:"maxPrice"`
	MinPrice   *float64 `json:"minPrice"`
	Verified   bool     `json:"verified"`
	SortBy     string   `json:"sortBy"`
	Limit      *int     `json:"limit"`
	Offset     *int     `json:"offset"`
}

type createReviewRequest struct {
	BookingID  string `json:"booking_id"`
	ReviewerID string `json:"reviewer_id"`
	ArtistID   string `json:"artist_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type createBookingRequest struct {
	ClientID      string   `json:"client_id"`
	ArtistID      string   `json:"artist_id"`
	ServiceID     string   `json:"service_id"`
	EventDate     string   `json:"event_date"`
	EventTime     string   `json:"event_time"`
	EventLocation string   `json:"event_location"`
	EventType     string   `json:"event_type"`
	DurationHours *float64 `json:"duration_hours"`
	TotalPrice    float64  `json:"total_price"`
	Notes         string   `json:"notes"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Country   string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
}

// patch treats empty strings as "leave unchanged".
func (u updateProfileRequest) patch() user.ProfilePatch {
	return user.ProfilePatch{
		FirstName:   nonEmpty(u.FirstName),
		LastName:    nonEmpty(u.LastName),
		DisplayName: nonEmpty(u.Username),
		Phone:       nonEmpty(u.Phone),
		Location:    nonEmpty(u.Location),
		Bio:         nonEmpty(u.Bio),
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- Responses ---

type searchMeta struct {
	Query  string `json:"query"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type pageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type profileDTO struct {
	ArtistID        string   `json:"artist_id"`
	UserID          string   `json:"user_id"`
	Name            string   `json:"name"`
	Image           *string  `json:"image"`
	Bio             *string  `json:"bio"`
	Location        *string  `json:"location"`
	IsVerified      bool     `json:"is_verified"`
	Category        string   `json:"category"`
	Genre           *string  `json:"genre"`
	BaseRate        *float64 `json:"base_rate"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	IsTrending      bool     `json:"is_trending"`
	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience,omitempty"`
}

type rankedDTO struct {
	profileDTO
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

type serviceDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	DurationHours *float64 `json:"duration_hours"`
}

type reviewDTO struct {
	ID            string    `json:"id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	ReviewerName  *string   `json:"reviewer_name"`
	FirstName     *string   `json:"first_name,omitempty"`
	LastName      *string   `json:"last_name,omitempty"`
	ReviewerImage *string   `json:"reviewer_image"`
}

type artistDetailDTO struct {
	profileDTO
	FirstName          *string           `json:"first_name"`
	LastName           *string           `json:"last_name"`
	Email              string            `json:"email"`
	Country            *string           `json:"country"`
	Phone              *string           `json:"phone"`
	TotalBookings      int               `json:"total_bookings"`
	PortfolioURLs      []string          `json:"portfolio_urls"`
	SocialLinks        map[string]string `json:"social_links"`
	AvailabilityStatus string            `json:"availability_status"`
	Services           []serviceDTO      `json:"services"`
	Reviews            []reviewDTO       `json:"reviews"`
}

type bookingDTO struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	ArtistID       string    `json:"artist_id"`
	ServiceID      *string   `json:"service_id"`
	EventDate      string    `json:"event_date"`
	EventTime      *string   `json:"event_time"`
	EventLocation  *string   `json:"event_location"`
	EventType      *string   `json:"event_type"`
	DurationHours  *float64  `json:"duration_hours"`
	TotalPrice     float64   `json:"total_price"`
	Notes          *string   `json:"notes"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ClientName     *string   `json:"client_name"`
	ArtistName     *string   `json:"artist_name"`
	ArtistImage    *string   `json:"artist_image"`
	ArtistCategory string    `json:"artist_category"`
	ServiceName    *string   `json:"service_name"`
}

type userDTO struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	UserType          string    `json:"user_type"`
	FirstName         *string   `json:"first_name"`
	LastName          *string   `json:"last_name"`
	DisplayName       *string   `json:"display_name"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	Phone             *string   `json:"phone"`
	Location          *string   `json:"location"`
	Country           *string   `json:"country"`
	Bio               *string   `json:"bio"`
	IsVerified        bool      `json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
}

type artistSummaryDTO struct {
	ID                 string   `json:"id"`
	Category           string   `json:"category"`
	Genre              *string  `json:"genre"`
	BaseRate           *float64 `json:"base_rate"`
	HourlyRate         *float64 `json:"hourly_rate"`
	Rating             float64  `json:"avg_rating"`
	ReviewCount        int      `json:"total_reviews"`
	TotalBookings      int      `json:"total_bookings"`
	IsTrending         bool     `json:"is_trending"`
	AvailabilityStatus string   `json:"availability_status"`
}

type userProfileDTO struct {
	userDTO
	ArtistProfile *artistSummaryDTO `json:"artist_profile,omitempty"`
}

type sessionDTO struct {
	User          userDTO           `json:"user"`
	ArtistProfile *artistSummaryDTO `json:"artist_profile,omitempty"`
	Token         string            `json:"token,omitempty"`
}

type healthDTO struct {
	Success   bool              `json:"success"`
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
}

// --- Converters ---

func profileToDTO(p profile.Profile) profileDTO {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return profileDTO{
		ArtistID:        p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Image:           p.Image,
		Bio:             p.Bio,
		Location:        p.Location,
		IsVerified:      p.Verified,
		Category:        p.Category,
		Genre:           p.Genre,
		BaseRate:        p.BaseRate,
		HourlyRate:      p.HourlyRate,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		IsTrending:      p.Trending,
		Skills:          skills,
		YearsExperience: p.YearsExperience,
	}
}

func rankedToDTO(rr []profile.Ranked) []rankedDTO {
	out := make([]rankedDTO, len(rr))
	for i, r := range rr {
		out[i] = rankedDTO{profileDTO: profileToDTO(r.Profile), RelevanceScore: r.Score}
	}
	return out
}

func profilesToDTO(pp []profile.Profile) []profileDTO {
	out := make([]profileDTO, len(pp))
	for i, p := range pp {
		out[i] = profileToDTO(p)
	}
	return out
}

func reviewsToDTO(ee []review.Entry) []reviewDTO {
	out := make([]reviewDTO, len(ee))
	for i, e := range ee {
		out[i] = reviewDTO{
			ID:            e.ID,
			Rating:        e.Rating,
			Comment:       e.Comment,
			CreatedAt:     e.CreatedAt,
			ReviewerName:  e.ReviewerName,
			FirstName:     e.FirstName,
			LastName:      e.LastName,
			ReviewerImage: e.ReviewerImage,
		}
	}
	return out
}

func detailToDTO(d profile.Detail) artistDetailDTO {
	services := make([]serviceDTO, len(d.Services))
	for i, s := range d.Services {
		services[i] = serviceDTO(s)
	}
	portfolio := d.PortfolioURLs
	if portfolio == nil {
		portfolio = []string{}
	}
	social := d.SocialLinks
	if social == nil {
		social = map[string]string{}
	}
	return artistDetailDTO{
		profileDTO:         profileToDTO(d.Profile),
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Email:              d.Email,
		Country:            d.Country,
		Phone:              d.Phone,
		TotalBookings:      d.TotalBookings,
		PortfolioURLs:      portfolio,
		SocialLinks:        social,
		AvailabilityStatus: d.AvailabilityStatus,
		Services:           services,
		Reviews:            reviewsToDTO(d.Reviews),
	}
}

func bookingsToDTO(ee []booking.Entry) []bookingDTO {
	out := make([]bookingDTO, len(ee))
	for i, e := range ee {
		out[i] = bookingDTO{
			ID:             e.ID,
			ClientID:       e.ClientID,
			ArtistID:       e.ArtistID,
			ServiceID:      e.ServiceID,
			EventDate:      e.EventDate,
			EventTime:      e.EventTime,
			EventLocation:  e.EventLocation,
			EventType:      e.EventType,
			DurationHours:  e.DurationHours,
			TotalPrice:     e.TotalPrice,
			Notes:          e.Notes,
			Status:         string(e.Status),
			CreatedAt:      e.CreatedAt,
			ClientName:     e.ClientName,
			ArtistName:     e.ArtistName,
			ArtistImage:    e.ArtistImage,
			ArtistCategory: e.ArtistCategory,
			ServiceName:    e.ServiceName,
		}
	}
	return out
}

func userToDTO(a user.Account) userDTO {
	return userDTO{
		ID:                a.ID,
		Email:             a.Email,
		UserType:          string(a.Type),
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		DisplayName:       a.DisplayName,
		ProfilePictureURL: a.ProfilePictureURL,
		Phone:             a.Phone,
		Location:          a.Location,
		Country:           a.Country,
		Bio:               a.Bio,
		IsVerified:        a.Verified,
		CreatedAt:         a.CreatedAt,
	}
}

func artistSummaryToDTO(s *user.ArtistSummary) *artistSummaryDTO {
	if s == nil {
		return nil
	}
	return &artistSummaryDTO{
		ID:                 s.ID,
		Category:           s.Category,
		Genre:              s.Genre,
		BaseRate:           s.BaseRate,
		HourlyRate:         s.HourlyRate,
		Rating:             s.Rating,
		ReviewCount:        s.ReviewCount,
		TotalBookings:      s.TotalBookings,
		IsTrending:         s.Trending,
		AvailabilityStatus: s.AvailabilityStatus,
	}
}

func profileOfUserToDTO(p accountuc.Profile) userProfileDTO {
	return userProfileDTO{userDTO: userToDTO(p.Account), ArtistProfile: artistSummaryToDTO(p.Artist)}
}

func sessionToDTO(s accountuc.Session) sessionDTO {
	return sessionDTO{
		User:          userToDTO(s.Account),
		ArtistProfile: artistSummaryToDTO(s.Artist),
		Token:         s.Token,
	}
}
