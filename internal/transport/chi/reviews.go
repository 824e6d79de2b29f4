package chi

import (
	"net/http"

	"github.com/gearsh/gearsh-api/internal/domain/review"
	reviewuc "github.com/gearsh/gearsh-api/internal/usecase/review"
)

// CreateReview handles POST /api/reviews.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err, "Failed to create review")
		return
	}
	if sub, ok := SubjectFromContext(r.Context()); ok {
		req.ReviewerID = sub
	}

	id, err := s.svc.Reviews.Create(r.Context(), reviewuc.CreateParams{
		BookingID:  req.BookingID,
		ReviewerID: req.ReviewerID,
		ArtistID:   req.ArtistID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		s.handleError(w, r, err, "Failed to create review")
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"review_id": id}, nil)
}

// ListReviews handles GET /api/reviews.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	var (
		artistID *string
		limit    *int
		offset   *int
	)
	err := queryParams(r.URL.Query(),
		binding{"artist_id", &artistID},
		binding{"limit", &limit},
		binding{"offset", &offset},
	)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch reviews")
		return
	}

	q, err := review.NewListQuery(deref(artistID), limit, offset)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch reviews")
		return
	}

	entries, total, err := s.svc.Reviews.List(r.Context(), q)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch reviews")
		return
	}
	writeData(w, http.StatusOK, reviewsToDTO(entries), pageMeta{Total: total, Limit: q.Limit, Offset: q.Offset})
}
