package artist

import (
	"context"
	"errors"
	"fmt"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	Query(ctx context.Context, stmt db.Statement) ([]db.Row, error)
	QueryRow(ctx context.Context, stmt db.Statement) (db.Row, error)
	Dialect() db.Dialect
}

// Repo implements usecase/search.Repository and usecase/artist.Repository.
type Repo struct {
	store store
}

// New creates an artist repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search returns one page of profiles matching spec in store order.
func (r *Repo) Search(ctx context.Context, spec filter.Spec) ([]profile.Profile, error) {
	stmt, err := compileSearch(spec, r.store.Dialect())
	if err != nil {
		return nil, fmt.Errorf("compile search: %w", err)
	}

	rows, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, shapeProfile(ctx, row))
	}
	return out, nil
}

// Get returns an active artist with extended owner fields.
// Services and reviews are loaded separately.
func (r *Repo) Get(ctx context.Context, id string) (profile.Detail, error) {
	stmt, err := compileDetail(id, r.store.Dialect())
	if err != nil {
		return profile.Detail{}, fmt.Errorf("compile detail: %w", err)
	}

	row, err := r.store.QueryRow(ctx, stmt)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return profile.Detail{}, domain.ErrArtistNotFound
		}
		return profile.Detail{}, fmt.Errorf("get artist %s: %w", id, err)
	}
	return shapeDetail(ctx, row), nil
}

// Services returns the active services of an artist.
func (r *Repo) Services(ctx context.Context, artistID string) ([]profile.Service, error) {
	stmt, err := compileServices(artistID, r.store.Dialect())
	if err != nil {
		return nil, fmt.Errorf("compile services: %w", err)
	}

	rows, err := r.store.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list services %s: %w", artistID, err)
	}

	out := make([]profile.Service, 0, len(rows))
	for _, row := range rows {
		out = append(out, shapeService(row))
	}
	return out, nil
}
