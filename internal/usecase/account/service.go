package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/user"
)

// Id prefixes.
const (
	userIDPrefix   = "user_"
	artistIDPrefix = "artist_"
)

// Profile is an account with its artist profile, if the user is an artist.
type Profile struct {
	Account user.Account
	Artist  *user.ArtistSummary
}

// Session is a signed-in profile.
type Session struct {
	Profile
	Token string
}

// Service handles registration, sign-in and user profiles.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
	newID  func() string
}

// New creates an account service.
func New(repo Repository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens, newID: uuid.NewString}
}

// Register creates an account, plus a default artist profile for artists.
func (s *Service) Register(ctx context.Context, p user.RegistrationParams) (Session, error) {
	reg, err := user.NewRegistration(p)
	if err != nil {
		return Session{}, err
	}
	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return Session{}, err
	}

	userID := userIDPrefix + s.newID()
	if err := s.repo.Create(ctx, userID, artistIDPrefix+s.newID(), hash, reg); err != nil {
		return Session{}, fmt.Errorf("register %s: %w", reg.Email, err)
	}

	prof, err := s.Get(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	return s.session(prof)
}

// Login checks credentials. Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, domain.Invalid("", "Email and password required")
	}

	acc, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("login: %w", err)
	}
	if err := s.hasher.Compare(acc.PasswordHash, password); err != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	prof, err := s.withArtist(ctx, acc)
	if err != nil {
		return Session{}, err
	}
	return s.session(prof)
}

// Get returns an active user and their artist profile.
func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	acc, err := s.repo.ByID(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return s.withArtist(ctx, acc)
}

// List returns a page of active users and the total count.
func (s *Service) List(ctx context.Context, q user.ListQuery) ([]user.Account, int, error) {
	accounts, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return accounts, total, nil
}

// UpdateProfile applies patch to the user's public fields.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch user.ProfilePatch) error {
	if id == "" {
		return domain.Invalid("user_id", "is required")
	}
	if err := s.repo.UpdateProfile(ctx, id, patch); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *Service) withArtist(ctx context.Context, acc user.Account) (Profile, error) {
	prof := Profile{Account: acc}
	if acc.Type != user.TypeArtist {
		return prof, nil
	}
	summary, err := s.repo.ArtistSummary(ctx, acc.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("artist profile: %w", err)
	}
	prof.Artist = summary
	return prof, nil
}

func (s *Service) session(prof Profile) (Session, error) {
	token, err := s.tokens.Issue(prof.Account.ID, string(prof.Account.Type))
	if err != nil {
		return Session{}, err
	}
	return Session{Profile: prof, Token: token}, nil
}
