package search

import (
	"context"
	"fmt"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
)

// Service runs catalog searches and re-ranks free-text results.
type Service struct {
	repo     Repository
	recorder Recorder
}

// New creates a search service. recorder can be nil.
func New(repo Repository, recorder Recorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

// Search fetches one page for spec. With sort "relevance" and a non-empty term
// the page is re-ordered by relevance score and every result carries its score.
func (s *Service) Search(ctx context.Context, spec filter.Spec) ([]profile.Ranked, error) {
	profiles, err := s.repo.Search(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}

	var out []profile.Ranked
	if spec.Ranked() {
		out = rank(profiles, spec.Term())
	} else {
		out = unranked(profiles)
	}

	if s.recorder != nil {
		s.recorder.ObserveSearch(string(spec.SortBy()), spec.Ranked(), len(out))
	}
	return out, nil
}
