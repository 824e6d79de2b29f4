package artist

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/sortby"
	"github.com/gearsh/gearsh-api/internal/domain/review"
)

// RecentReviews is the number of reviews shown on an artist page.
const RecentReviews = 10

// Service serves the artist listing and artist pages.
type Service struct {
	repo    Repository
	reviews ReviewReader
	cache   Cache
}

// New creates an artist service. cache can be nil.
func New(repo Repository, reviews ReviewReader, cache Cache) *Service {
	return &Service{repo: repo, reviews: reviews, cache: cache}
}

// List returns one page of the catalog ordered by rating, then review count.
// Any sort directive on spec is replaced.
func (s *Service) List(ctx context.Context, spec filter.Spec) ([]profile.Profile, error) {
	profiles, err := s.repo.Search(ctx, spec.WithSort(sortby.TopRated))
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return profiles, nil
}

// Detail returns the artist page: profile, active services and recent reviews.
// The three reads run concurrently; the first failure cancels the others.
func (s *Service) Detail(ctx context.Context, id string) (profile.Detail, error) {
	if s.cache != nil {
		if d, ok := s.cache.Get(ctx, id); ok {
			return d, nil
		}
	}

	var (
		detail   profile.Detail
		services []profile.Service
		reviews  []review.Entry
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		detail, err = s.repo.Get(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		services, err = s.repo.Services(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		reviews, err = s.reviews.Recent(ctx, id, RecentReviews)
		return err
	})
	if err := p.Wait(); err != nil {
		return profile.Detail{}, fmt.Errorf("artist %s: %w", id, err)
	}

	detail.Services = services
	detail.Reviews = reviews

	if s.cache != nil {
		s.cache.Put(ctx, detail)
	}
	return detail, nil
}
