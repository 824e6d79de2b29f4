package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/booking"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/review"
	"github.com/gearsh/gearsh-api/internal/domain/user"
	"github.com/gearsh/gearsh-api/internal/logger"
	accountuc "github.com/gearsh/gearsh-api/internal/usecase/account"
	healthuc "github.com/gearsh/gearsh-api/internal/usecase/health"
	reviewuc "github.com/gearsh/gearsh-api/internal/usecase/review"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Searcher runs catalog searches.
type Searcher interface {
	Search(ctx context.Context, spec filter.Spec) ([]profile.Ranked, error)
}

// Catalog serves the artist listing and artist pages.
type Catalog interface {
	List(ctx context.Context, spec filter.Spec) ([]profile.Profile, error)
	Detail(ctx context.Context, id string) (profile.Detail, error)
}

// Reviews creates and lists reviews.
type Reviews interface {
	Create(ctx context.Context, p reviewuc.CreateParams) (string, error)
	List(ctx context.Context, q review.ListQuery) ([]review.Entry, int, error)
}

// Bookings creates and lists bookings.
type Bookings interface {
	Create(ctx context.Context, p booking.Params) (booking.Booking, error)
	List(ctx context.Context, q booking.Query) ([]booking.Entry, error)
}

// Accounts handles sign-up, sign-in and user profiles.
type Accounts interface {
	Register(ctx context.Context, p user.RegistrationParams) (accountuc.Session, error)
	Login(ctx context.Context, email, password string) (accountuc.Session, error)
	Get(ctx context.Context, id string) (accountuc.Profile, error)
	List(ctx context.Context, q user.ListQuery) ([]user.Account, int, error)
	UpdateProfile(ctx context.Context, id string, patch user.ProfilePatch) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Services groups the use cases served over HTTP.
type Services struct {
	Search   Searcher
	Catalog  Catalog
	Reviews  Reviews
	Bookings Bookings
	Accounts Accounts
	Health   HealthChecker
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers of the gearsh API.
type Server struct {
	svc           Services
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	s := &Server{svc: svc, logger: logger}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"),
		sentinelHandler(domain.ErrArtistNotFound, http.StatusNotFound, "Artist not found"),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, "User not found"),
		sentinelHandler(domain.ErrBookingNotFound, http.StatusNotFound, "Booking not found"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "Not found"),
		sentinelHandler(domain.ErrEmailTaken, http.StatusConflict,
			"This email is already registered. Please sign in or use a different email."),
		sentinelHandler(domain.ErrReviewExists, http.StatusConflict, "Review already exists for this booking"),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, "Already exists"),
	}
	return s
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data, meta any) {
	writeJSON(w, status, envelope{Success: true, Data: data, Meta: meta})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// handleError maps domain errors to responses. Anything unrecognised is logged
// and answered with a generic 500 carrying failMsg.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.FromContext(r.Context()).Debug("request rejected", zap.Error(err))
			return
		}
	}
	logger.FromContext(r.Context()).Error(failMsg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, failMsg)
}

func validationHandler(w http.ResponseWriter, err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeError(w, http.StatusBadRequest, ve.Error())
	return true
}

func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

// decodeBody decodes a JSON request body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.Invalid("", "Invalid request body: %v", err)
	}
	return nil
}
