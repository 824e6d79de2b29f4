package account

import (
	"context"

	"github.com/gearsh/gearsh-api/internal/domain/user"
)

// Repository defines the storage contract for accounts.
type Repository interface {
	Create(ctx context.Context, userID, artistID, passwordHash string, reg user.Registration) error
	ByEmail(ctx context.Context, email string) (user.Account, error)
	ByID(ctx context.Context, id string) (user.Account, error)
	ArtistSummary(ctx context.Context, userID string) (*user.ArtistSummary, error)
	List(ctx context.Context, q user.ListQuery) ([]user.Account, int, error)
	UpdateProfile(ctx context.Context, id string, patch user.ProfilePatch) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID, userType string) (string, error)
}
