package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/metrics"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	CORSOrigins []string
	// Tokens guards the mutating routes. Nil disables token checks.
	Tokens TokenVerifier
	Logger *zap.Logger
}

// NewRouter mounts the API handlers and the /metrics endpoint.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(logger))
	r.Use(CORS(opts.CORSOrigins))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	requireToken := RequireToken(opts.Tokens)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Health)

		r.Post("/search", s.Search)
		r.Get("/artists", s.ListArtists)
		r.Get("/artists/{id}", s.GetArtist)

		r.Get("/reviews", s.ListReviews)
		r.With(requireToken).Post("/reviews", s.CreateReview)

		r.Get("/bookings", s.ListBookings)
		r.With(requireToken).Post("/bookings", s.CreateBooking)

		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Get("/users", s.ListUsers)
		r.Get("/users/{id}", s.GetUser)
		r.With(requireToken).Post("/update-profile", s.UpdateProfile)
	})

	return r
}
