package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/domain/booking"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/domain/review"
	"github.com/gearsh/gearsh-api/internal/domain/user"
	accountuc "github.com/gearsh/gearsh-api/internal/usecase/account"
	healthuc "github.com/gearsh/gearsh-api/internal/usecase/health"
	reviewuc "github.com/gearsh/gearsh-api/internal/usecase/review"
)

// --- Stub services ---

type stubSearcher struct {
	got     filter.Spec
	results []profile.Ranked
	err     error
}

func (s *stubSearcher) Search(_ context.Context, spec filter.Spec) ([]profile.Ranked, error) {
	s.got = spec
	return s.results, s.err
}

type stubCatalog struct {
	got     filter.Spec
	list    []profile.Profile
	detail  profile.Detail
	listErr error
	getErr  error
}

func (s *stubCatalog) List(_ context.Context, spec filter.Spec) ([]profile.Profile, error) {
	s.got = spec
	return s.list, s.listErr
}

func (s *stubCatalog) Detail(_ context.Context, _ string) (profile.Detail, error) {
	return s.detail, s.getErr
}

type stubReviews struct {
	got      reviewuc.CreateParams
	gotQuery review.ListQuery
	id       string
	entries  []review.Entry
	total    int
	err      error
}

func (s *stubReviews) Create(_ context.Context, p reviewuc.CreateParams) (string, error) {
	s.got = p
	return s.id, s.err
}

func (s *stubReviews) List(_ context.Context, q review.ListQuery) ([]review.Entry, int, error) {
	s.gotQuery = q
	return s.entries, s.total, s.err
}

type stubBookings struct {
	got      booking.Params
	gotQuery booking.Query
	entries  []booking.Entry
	err      error
}

func (s *stubBookings) Create(_ context.Context, p booking.Params) (booking.Booking, error) {
	s.got = p
	if s.err != nil {
		return booking.Booking{}, s.err
	}
	return booking.New("book_1", p)
}

func (s *stubBookings) List(_ context.Context, q booking.Query) ([]booking.Entry, error) {
	s.gotQuery = q
	return s.entries, s.err
}

type stubAccounts struct {
	session    accountuc.Session
	profile    accountuc.Profile
	users      []user.Account
	total      int
	err        error
	updatedID  string
	patch      user.ProfilePatch
	loginEmail string
}

func (s *stubAccounts) Register(_ context.Context, _ user.RegistrationParams) (accountuc.Session, error) {
	return s.session, s.err
}

func (s *stubAccounts) Login(_ context.Context, email, _ string) (accountuc.Session, error) {
	s.loginEmail = email
	return s.session, s.err
}

func (s *stubAccounts) Get(_ context.Context, _ string) (accountuc.Profile, error) {
	return s.profile, s.err
}

func (s *stubAccounts) List(_ context.Context, _ user.ListQuery) ([]user.Account, int, error) {
	return s.users, s.total, s.err
}

func (s *stubAccounts) UpdateProfile(_ context.Context, id string, patch user.ProfilePatch) error {
	s.updatedID = id
	s.patch = patch
	return s.err
}

type stubHealth struct {
	report healthuc.Report
}

func (s *stubHealth) Check(_ context.Context) healthuc.Report { return s.report }

// --- Harness ---

type testEnv struct {
	search   *stubSearcher
	catalog  *stubCatalog
	reviews  *stubReviews
	bookings *stubBookings
	accounts *stubAccounts
	health   *stubHealth
	handler  http.Handler
}

func newTestEnv(t *testing.T, tokens TokenVerifier) *testEnv {
	t.Helper()
	env := &testEnv{
		search:   &stubSearcher{},
		catalog:  &stubCatalog{},
		reviews:  &stubReviews{},
		bookings: &stubBookings{},
		accounts: &stubAccounts{},
		health: &stubHealth{report: healthuc.Report{
			Status:    healthuc.Healthy,
			Checks:    map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
			CheckedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
	}
	srv := NewServer(Services{
		Search:   env.search,
		Catalog:  env.catalog,
		Reviews:  env.reviews,
		Bookings: env.bookings,
		Accounts: env.accounts,
		Health:   env.health,
	}, zap.NewNop())
	env.handler = NewRouter(srv, RouterOptions{CORSOrigins: []string{"*"}, Tokens: tokens})
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

type rawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) rawEnvelope {
	t.Helper()
	var env rawEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rr.Body.String())
	}
	return env
}

func ptr[T any](v T) *T { return &v }

func newAuthedRequest(method, path string, body io.Reader, token string) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}
