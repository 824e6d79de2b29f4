package gearsh

import (
	"context"
	"fmt"
	"time"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
)

// ArtistService reads the artist listing and artist pages.
type ArtistService struct {
	svc catalogUseCase
	obs *observer
}

// List returns one page of artists ordered by rating, then review count.
func (s *ArtistService) List(ctx context.Context, opts ListOptions) (out []Artist, err error) {
	start := time.Now()
	defer func() { s.obs.observeN("artists.list", start, len(out), err) }()

	p := filter.Params{
		MinRating: positive(opts.MinRating),
		Verified:  opts.Verified,
		Limit:     nonZero(opts.Limit),
		Offset:    nonZero(opts.Offset),
	}
	if opts.Category != "" {
		p.Categories = []string{opts.Category}
	}
	spec, err := filter.New(p)
	if err != nil {
		return nil, err
	}

	profiles, err := s.svc.List(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	out = make([]Artist, len(profiles))
	for i, p := range profiles {
		out[i] = artistFromDomain(p)
	}
	return out, nil
}

// Get returns the artist page. Missing or inactive artists yield ErrArtistNotFound.
func (s *ArtistService) Get(ctx context.Context, id string) (ArtistPage, error) {
	start := time.Now()
	d, err := s.svc.Detail(ctx, id)
	s.obs.observe("artists.get", start, err)
	if err != nil {
		return ArtistPage{}, fmt.Errorf("get artist %s: %w", id, err)
	}
	return pageFromDomain(d), nil
}
