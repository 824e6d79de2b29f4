package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/gearsh/gearsh-api/internal/domain"
)

// Type is the account kind.
type Type string

// Account kinds.
const (
	TypeClient Type = "client"
	TypeArtist Type = "artist"
)

// IsValid checks if t is a known account kind.
func (t Type) IsValid() bool { return t == TypeClient || t == TypeArtist }

// Registration defaults.
const (
	MinPasswordLength = 8
	DefaultCountry    = "South Africa"
	// DefaultArtistCategory is assigned to artist profiles created at sign-up.
	DefaultArtistCategory = "DJ"
	DefaultAvailability   = "available"
)

// List pagination.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegistrationParams is raw sign-up input.
type RegistrationParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Type      string
	Phone     string
	Location  string
	Country   string
}

// Registration is a validated sign-up. The email is lowercased.
type Registration struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DisplayName string
	Type        Type
	Phone       *string
	Location    *string
	Country     string
}

// NewRegistration validates p.
func NewRegistration(p RegistrationParams) (Registration, error) {
	if p.Email == "" || p.Password == "" || p.FirstName == "" || p.LastName == "" {
		return Registration{}, domain.Invalid("",
			"Please fill in all required fields (email, password, first name, last name)")
	}
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if !emailRegex.MatchString(email) {
		return Registration{}, domain.Invalid("email", "Please enter a valid email address")
	}
	if len(p.Password) < MinPasswordLength {
		return Registration{}, domain.Invalid("password",
			"Password must be at least %d characters long", MinPasswordLength)
	}

	t := Type(p.Type)
	if p.Type == "" {
		t = TypeClient
	}
	if !t.IsValid() {
		return Registration{}, domain.Invalid("user_type", "must be %q or %q", TypeClient, TypeArtist)
	}

	country := p.Country
	if country == "" {
		country = DefaultCountry
	}

	return Registration{
		Email:       email,
		Password:    p.Password,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DisplayName: p.FirstName + " " + p.LastName,
		Type:        t,
		Phone:       optional(p.Phone),
		Location:    optional(p.Location),
		Country:     country,
	}, nil
}

// Account is a stored user.
type Account struct {
	ID                string
	Email             string
	PasswordHash      string
	Type              Type
	FirstName         *string
	LastName          *string
	DisplayName       *string
	ProfilePictureURL *string
	Phone             *string
	Location          *string
	Country           *string
	Bio               *string
	Verified          bool
	CreatedAt         time.Time
}

// ArtistSummary is the artist profile attached to an account.
type ArtistSummary struct {
	ID                 string
	Category           string
	Genre              *string
	BaseRate           *float64
	HourlyRate         *float64
	Rating             float64
	ReviewCount        int
	TotalBookings      int
	Trending           bool
	AvailabilityStatus string
}

// ProfilePatch updates only the supplied (non-nil) fields.
type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	DisplayName *string
	Phone       *string
	Location    *string
	Bio         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.DisplayName == nil &&
		p.Phone == nil && p.Location == nil && p.Bio == nil
}

// ListQuery selects active users.
type ListQuery struct {
	Type   Type
	Limit  int
	Offset int
}

// NewListQuery validates pagination and the optional type filter.
func NewListQuery(t string, limit, offset *int) (ListQuery, error) {
	q := ListQuery{Type: Type(t), Limit: DefaultLimit}
	if t != "" && !q.Type.IsValid() {
		return ListQuery{}, domain.Invalid("user_type", "must be %q or %q", TypeClient, TypeArtist)
	}
	if limit != nil {
		switch {
		case *limit < 0:
			return ListQuery{}, domain.Invalid("limit", "must be non-negative")
		case *limit > MaxLimit:
			q.Limit = MaxLimit
		case *limit > 0:
			q.Limit = *limit
		}
	}
	if offset != nil {
		if *offset < 0 {
			return ListQuery{}, domain.Invalid("offset", "must be non-negative")
		}
		q.Offset = *offset
	}
	return q, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
