package account

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gearsh/gearsh-api/internal/auth"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/user"
)

// memRepo is an in-memory Repository keyed by user id.
type memRepo struct {
	accounts map[string]user.Account
	artists  map[string]*user.ArtistSummary
	patches  map[string]user.ProfilePatch
	listErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{
		accounts: map[string]user.Account{},
		artists:  map[string]*user.ArtistSummary{},
		patches:  map[string]user.ProfilePatch{},
	}
}

func (m *memRepo) Create(_ context.Context, userID, artistID, hash string, reg user.Registration) error {
	for _, a := range m.accounts {
		if a.Email == reg.Email {
			return domain.ErrEmailTaken
		}
	}
	m.accounts[userID] = user.Account{ID: userID, Email: reg.Email, PasswordHash: hash, Type: reg.Type}
	if reg.Type == user.TypeArtist {
		m.artists[userID] = &user.ArtistSummary{ID: artistID, Category: user.DefaultArtistCategory}
	}
	return nil
}

func (m *memRepo) ByEmail(_ context.Context, email string) (user.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return user.Account{}, domain.ErrUserNotFound
}

func (m *memRepo) ByID(_ context.Context, id string) (user.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return user.Account{}, domain.ErrUserNotFound
	}
	return a, nil
}

func (m *memRepo) ArtistSummary(_ context.Context, userID string) (*user.ArtistSummary, error) {
	return m.artists[userID], nil
}

func (m *memRepo) List(_ context.Context, _ user.ListQuery) ([]user.Account, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]user.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *memRepo) UpdateProfile(_ context.Context, id string, patch user.ProfilePatch) error {
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrUserNotFound
	}
	m.patches[id] = patch
	return nil
}

func newTestService(t *testing.T) (*Service, *memRepo, *auth.Issuer) {
	t.Helper()
	repo := newMemRepo()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return New(repo, auth.NewHasher(bcrypt.MinCost), issuer), repo, issuer
}
