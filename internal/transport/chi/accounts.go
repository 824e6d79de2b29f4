package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/user"
)

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err, "Registration failed")
		return
	}

	sess, err := s.svc.Accounts.Register(r.Context(), user.RegistrationParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Type:      req.UserType,
		Phone:     req.Phone,
		Location:  req.Location,
		Country:   req.Country,
	})
	if err != nil {
		s.handleError(w, r, err, "Registration failed")
		return
	}
	writeData(w, http.StatusCreated, sessionToDTO(sess), nil)
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err, "Login failed")
		return
	}

	sess, err := s.svc.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleError(w, r, err, "Login failed")
		return
	}
	writeData(w, http.StatusOK, sessionToDTO(sess), nil)
}

// ListUsers handles GET /api/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		userType *string
		limit    *int
		offset   *int
	)
	err := queryParams(r.URL.Query(),
		binding{"user_type", &userType},
		binding{"limit", &limit},
		binding{"offset", &offset},
	)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch users")
		return
	}

	q, err := user.NewListQuery(deref(userType), limit, offset)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch users")
		return
	}

	accounts, total, err := s.svc.Accounts.List(r.Context(), q)
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch users")
		return
	}
	out := make([]userDTO, len(accounts))
	for i, a := range accounts {
		out[i] = userToDTO(a)
	}
	writeData(w, http.StatusOK, out, pageMeta{Total: total, Limit: q.Limit, Offset: q.Offset})
}

// GetUser handles GET /api/users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	prof, err := s.svc.Accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err, "Failed to fetch user")
		return
	}
	writeData(w, http.StatusOK, profileOfUserToDTO(prof), nil)
}

// UpdateProfile handles POST /api/update-profile.
// With auth enabled the token subject wins over the body's user_id.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err, "Failed to update profile")
		return
	}
	if sub, ok := SubjectFromContext(r.Context()); ok {
		req.UserID = sub
	}
	if req.UserID == "" {
		s.handleError(w, r, domain.Invalid("user_id", "is required"), "Failed to update profile")
		return
	}

	if err := s.svc.Accounts.UpdateProfile(r.Context(), req.UserID, req.patch()); err != nil {
		s.handleError(w, r, err, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]string{"message": "Profile updated successfully"}})
}
