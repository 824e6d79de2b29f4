package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
)

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err, "Search failed")
		return
	}

	spec, err := filter.New(filter.Params{
		Term:       req.Query,
		Categories: req.Categories,
		MinRating:  req.MinRating,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Verified:   req.Verified,
		SortBy:     req.SortBy,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		s.handleError(w, r, err, "Search failed")
		return
	}

	results, err := s.svc.Search.Search(r.Context(), spec)
	if err != nil {
		s.handleError(w, r, err, "Search failed")
		return
	}

	writeData(w, http.StatusOK, rankedToDTO(results), searchMeta{
		Query:  spec.Term(),
		Total:  len(results),
		Limit:  spec.Limit(),
		Offset: spec.Offset(),
	})
}

// ListArtists handles GET /api/artists.
func (s *Server) ListArtists(w http.ResponseWriter, r *http.Request) {
	var (
		category  *string
		minRating *float64
		verified  *bool
		limit     *int
		offset    *int
	)
	err := queryParams(r.URL.Query(),
		binding{"category", &category},
		binding{"minRating", &minRating},
		binding{"verified", &verified},
		binding{"limit", &limit},
		binding{"offset", &offset},
	)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch artists")
		return
	}

	p := filter.Params{MinRating: minRating, Verified: verified != nil && *verified, Limit: limit, Offset: offset}
	if category != nil && *category != "" {
		p.Categories = []string{*category}
	}
	spec, err := filter.New(p)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch artists")
		return
	}

	artists, err := s.svc.Catalog.List(r.Context(), spec)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch artists")
		return
	}

	writeData(w, http.StatusOK, profilesToDTO(artists), pageMeta{
		Total:  len(artists),
		Limit:  spec.Limit(),
		Offset: spec.Offset(),
	})
}

// GetArtist handles GET /api/artists/{id}.
func (s *Server) GetArtist(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Catalog.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch artist")
		return
	}
	writeData(w, http.StatusOK, detailToDTO(detail), nil)
}
