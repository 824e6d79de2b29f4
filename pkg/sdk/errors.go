package gearsh

import "github.com/gearsh/gearsh-api/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrArtistNotFound = domain.ErrArtistNotFound
	ErrInvalidInput   = domain.ErrInvalidInput
)
