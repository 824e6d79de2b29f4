package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gearsh/gearsh-api/internal/auth"
	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/booking"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/sortby"
	"github.com/gearsh/gearsh-api/internal/domain/review"
	"github.com/gearsh/gearsh-api/internal/domain/user"
	accountuc "github.com/gearsh/gearsh-api/internal/usecase/account"
	healthuc "github.com/gearsh/gearsh-api/internal/usecase/health"
)

func TestSearch_RankedResults(t *testing.T) {
	env := newTestEnv(t, nil)
	env.search.results = []profile.Ranked{
		{Profile: profile.Profile{ID: "artist_1", Name: "DJ Sipho", Category: "DJ"}, Score: ptr(164.0)},
	}

	rr := env.do(t, "POST", "/api/search", map[string]any{
		"query": "  sipho ", "categories": []string{"DJ"}, "limit": 5, "sortBy": "rating",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	resp := decodeEnvelope(t, rr)
	var data []map[string]any
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data) != 1 || data[0]["artist_id"] != "artist_1" || data[0]["relevance_score"] != 164.0 {
		t.Errorf("data = %v", data)
	}
	if _, ok := data[0]["skills"].([]any); !ok {
		t.Errorf("skills should be an empty array, got %v", data[0]["skills"])
	}

	var meta searchMeta
	if err := json.Unmarshal(resp.Meta, &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta != (searchMeta{Query: "sipho", Total: 1, Limit: 5}) {
		t.Errorf("meta = %+v", meta)
	}
	if env.search.got.SortBy() != sortby.Rating {
		t.Errorf("sort = %q", env.search.got.SortBy())
	}
}

func TestSearch_UnrankedOmitsScore(t *testing.T) {
	env := newTestEnv(t, nil)
	env.search.results = []profile.Ranked{{Profile: profile.Profile{ID: "artist_1"}}}

	rr := env.do(t, "POST", "/api/search", map[string]any{})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "relevance_score") {
		t.Errorf("unexpected relevance_score in %s", rr.Body.String())
	}
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		svcErr     error
		wantStatus int
		wantError  string
	}{
		{"malformed json", `{"query":`, nil, http.StatusBadRequest, "Invalid request body"},
		{"negative limit", map[string]any{"limit": -1}, nil, http.StatusBadRequest, "limit"},
		{"price range inverted", map[string]any{"minPrice": 500, "maxPrice": 100}, nil, http.StatusBadRequest, "maxPrice"},
		{"store failure", map[string]any{}, errors.New("db down"), http.StatusInternalServerError, "Search failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.search.err = tt.svcErr

			rr := env.do(t, "POST", "/api/search", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, rr)
			if resp.Success || !strings.Contains(resp.Error, tt.wantError) {
				t.Errorf("envelope = %+v", resp)
			}
		})
	}
}

func TestListArtists_QueryBinding(t *testing.T) {
	env := newTestEnv(t, nil)
	env.catalog.list = []profile.Profile{{ID: "artist_1"}, {ID: "artist_2"}}

	rr := env.do(t, "GET", "/api/artists?category=DJ&minRating=4.5&verified=true&limit=2&offset=4", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	spec := env.catalog.got
	if cats := spec.Categories(); len(cats) != 1 || cats[0] != "DJ" {
		t.Errorf("categories = %v", cats)
	}
	if r, ok := spec.MinRating(); !ok || r != 4.5 {
		t.Errorf("minRating = %v", r)
	}
	if !spec.VerifiedOnly() || spec.Limit() != 2 || spec.Offset() != 4 {
		t.Errorf("spec = %+v", spec)
	}

	var meta pageMeta
	if err := json.Unmarshal(decodeEnvelope(t, rr).Meta, &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta != (pageMeta{Total: 2, Limit: 2, Offset: 4}) {
		t.Errorf("meta = %+v", meta)
	}
}

func TestListArtists_MalformedNumber(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "GET", "/api/artists?minRating=lots", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeEnvelope(t, rr); !strings.HasPrefix(resp.Error, "minRating") {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestGetArtist(t *testing.T) {
	env := newTestEnv(t, nil)
	env.catalog.detail = profile.Detail{
		Profile:  profile.Profile{ID: "artist_1", Name: "DJ Sipho"},
		Email:    "sipho@example.com",
		Services: []profile.Service{{ID: "svc_1", Name: "Wedding set"}},
	}

	rr := env.do(t, "GET", "/api/artists/artist_1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var data artistDetailDTO
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.ArtistID != "artist_1" || len(data.Services) != 1 || data.Reviews == nil || data.SocialLinks == nil {
		t.Errorf("detail = %+v", data)
	}
}

func TestGetArtist_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	env.catalog.getErr = domain.ErrArtistNotFound

	rr := env.do(t, "GET", "/api/artists/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeEnvelope(t, rr); resp.Error != "Artist not found" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t, nil)
	env.reviews.id = "rev_1"

	rr := env.do(t, "POST", "/api/reviews", map[string]any{
		"booking_id": "book_1", "reviewer_id": "user_1", "artist_id": "artist_1", "rating": 5,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"review_id":"rev_1"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
	if env.reviews.got.Rating != 5 || env.reviews.got.ArtistID != "artist_1" {
		t.Errorf("params = %+v", env.reviews.got)
	}
}

func TestCreateReview_Duplicate409(t *testing.T) {
	env := newTestEnv(t, nil)
	env.reviews.err = domain.ErrReviewExists

	rr := env.do(t, "POST", "/api/reviews", map[string]any{"booking_id": "book_1"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestCreateReview_TokenSubjectOverridesBody(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue("user_9", "client")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	env := newTestEnv(t, issuer)

	rr := env.do(t, "POST", "/api/reviews", map[string]any{"reviewer_id": "user_1"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d", rr.Code)
	}

	req := strings.NewReader(`{"reviewer_id":"user_1","booking_id":"book_1","artist_id":"a","rating":4}`)
	r := newAuthedRequest("POST", "/api/reviews", req, token)
	rr = serve(env, r)
	if rr.Code != http.StatusCreated {
		t.Fatalf("with token: status = %d", rr.Code)
	}
	if env.reviews.got.ReviewerID != "user_9" {
		t.Errorf("reviewer = %q, want token subject", env.reviews.got.ReviewerID)
	}
}

func TestListReviews(t *testing.T) {
	env := newTestEnv(t, nil)
	env.reviews.entries = []review.Entry{{ID: "rev_1", Rating: 4}}
	env.reviews.total = 12

	rr := env.do(t, "GET", "/api/reviews?artist_id=artist_1&limit=500", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var meta pageMeta
	if err := json.Unmarshal(decodeEnvelope(t, rr).Meta, &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta != (pageMeta{Total: 12, Limit: review.MaxLimit}) {
		t.Errorf("meta = %+v", meta)
	}

	rr = env.do(t, "GET", "/api/reviews", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing artist_id: status = %d", rr.Code)
	}
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "POST", "/api/bookings", map[string]any{
		"client_id": "user_1", "artist_id": "artist_1", "event_date": "2026-12-24", "total_price": 2500,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"booking_id":"book_1"`) || !strings.Contains(body, `"status":"pending"`) {
		t.Errorf("body = %s", body)
	}

	rr = env.do(t, "POST", "/api/bookings", map[string]any{"client_id": "user_1"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing fields: status = %d", rr.Code)
	}
}

func TestListBookings(t *testing.T) {
	env := newTestEnv(t, nil)
	env.bookings.entries = []booking.Entry{{ID: "book_1", Status: booking.StatusPending}}

	rr := env.do(t, "GET", "/api/bookings?user_id=artist_1&user_type=artist&status=pending", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	q := env.bookings.gotQuery
	if q.UserID != "artist_1" || q.Party != booking.PartyArtist || q.Status != "pending" {
		t.Errorf("query = %+v", q)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	env := newTestEnv(t, nil)
	env.accounts.err = domain.ErrEmailTaken

	rr := env.do(t, "POST", "/api/auth/register", map[string]any{"email": "a@b.co"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestLogin_NeverLeaksHash(t *testing.T) {
	env := newTestEnv(t, nil)
	env.accounts.session = accountuc.Session{
		Profile: accountuc.Profile{Account: user.Account{ID: "user_1", Email: "a@b.co", PasswordHash: "$2a$secret"}},
		Token:   "tok",
	}

	rr := env.do(t, "POST", "/api/auth/login", map[string]any{"email": "a@b.co", "password": "pw"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if body := rr.Body.String(); strings.Contains(body, "$2a$secret") || strings.Contains(body, "password") {
		t.Errorf("credentials leaked: %s", body)
	}

	env.accounts.err = domain.ErrInvalidCredentials
	rr = env.do(t, "POST", "/api/auth/login", map[string]any{"email": "a@b.co", "password": "bad"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status = %d", rr.Code)
	}
}

func TestListUsers_InvalidType(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "GET", "/api/users?user_type=admin", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "POST", "/api/update-profile", map[string]any{"user_id": "user_1", "bio": "Deep house", "phone": ""})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if env.accounts.updatedID != "user_1" || env.accounts.patch.Bio == nil || env.accounts.patch.Phone != nil {
		t.Errorf("update = %s %+v", env.accounts.updatedID, env.accounts.patch)
	}

	rr = env.do(t, "POST", "/api/update-profile", map[string]any{"bio": "x"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing user_id: status = %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "GET", "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	env.health.report.Status = healthuc.Degraded
	env.health.report.Checks = map[string]healthuc.CheckResult{"database": healthuc.CheckError}
	rr = env.do(t, "GET", "/api/health", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded: status = %d", rr.Code)
	}
	var body healthDTO
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Checks["database"] != "error" {
		t.Errorf("body = %+v", body)
	}
}

func TestCORS_Preflight(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "OPTIONS", "/api/search", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != corsAllowMethods {
		t.Errorf("allow-methods = %q", got)
	}
}

func TestUnknownRoute_404Envelope(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.do(t, "GET", "/api/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeEnvelope(t, rr); resp.Success {
		t.Errorf("envelope = %+v", resp)
	}
}
