package gearsh

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gearsh/gearsh-api/internal/db/dbtest"
)

func TestNew_NoDatabase(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no database provided")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "mysql", dsn: "x"}
	_, err := openStore(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_SQLiteInMemory(t *testing.T) {
	c, err := New(context.Background(), WithSQLite(":memory:"), WithSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
	if h := c.Health(context.Background()); h.Status != "ok" || h.Checks["database"] != "ok" {
		t.Errorf("health = %+v", h)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithPostgres("postgres://localhost/gearsh").apply(cfg)
	if cfg.driver != driverPostgres || cfg.dsn != "postgres://localhost/gearsh" {
		t.Errorf("postgres cfg = %+v", cfg)
	}

	cfg2 := &clientConfig{}
	WithSQLite("gearsh.db").apply(cfg2)
	WithSchema().apply(cfg2)
	if cfg2.driver != driverSQLite || cfg2.dsn != "gearsh.db" || !cfg2.applySchema {
		t.Errorf("sqlite cfg = %+v", cfg2)
	}

	cfg3 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg3)
	if cfg3.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithMetrics(reg).apply(cfg3)
	if cfg3.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func seededClient(t *testing.T, reg prometheus.Registerer) *Client {
	t.Helper()
	store := dbtest.NewStore(t)
	dbtest.SeedArtist(t, store, dbtest.Artist{
		ID: "a1", Name: "DJ Sipho", Category: "DJ", Genre: "Amapiano", BaseRate: 1500, Rating: 4.8, ReviewCount: 12,
	})
	dbtest.SeedArtist(t, store, dbtest.Artist{
		ID: "a2", Name: "Thandi Keys", Category: "Musician", BaseRate: 3000, Rating: 4.9, ReviewCount: 3, Verified: true,
	})
	dbtest.SeedArtist(t, store, dbtest.Artist{
		ID: "a3", Name: "Ghost DJ", Category: "DJ", Rating: 5, Inactive: true,
	})
	dbtest.SeedService(t, store, "svc1", "a1", "Wedding set", 2500)

	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("observer: %v", err)
	}
	return wireClient(store, obs)
}

func TestSearch_Filters(t *testing.T) {
	c := seededClient(t, nil)

	res, err := c.Search(context.Background(), SearchOptions{Categories: []string{"DJ"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].ID != "a1" || res[0].HasScore {
		t.Errorf("results = %+v", res)
	}

	res, err = c.Search(context.Background(), SearchOptions{MinPrice: 2000})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].ID != "a2" {
		t.Errorf("price filter results = %+v", res)
	}
}

func TestSearch_QueryIsRanked(t *testing.T) {
	c := seededClient(t, nil)

	res, err := c.Search(context.Background(), SearchOptions{Query: "sipho"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || !res[0].HasScore || res[0].Score <= 0 {
		t.Errorf("results = %+v", res)
	}
}

func TestSearch_InvalidOptions(t *testing.T) {
	c := seededClient(t, nil)

	_, err := c.Search(context.Background(), SearchOptions{Limit: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestArtists_ListTopRated(t *testing.T) {
	c := seededClient(t, nil)

	list, err := c.Artists().List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a2" || list[1].ID != "a1" {
		t.Errorf("list = %+v", list)
	}

	list, err = c.Artists().List(context.Background(), ListOptions{Verified: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "a2" {
		t.Errorf("verified list = %+v", list)
	}
}

func TestArtists_Get(t *testing.T) {
	c := seededClient(t, nil)

	page, err := c.Artists().Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if page.Name != "DJ Sipho" || len(page.Services) != 1 || page.Services[0].Name != "Wedding set" {
		t.Errorf("page = %+v", page)
	}

	_, err = c.Artists().Get(context.Background(), "a3")
	if !errors.Is(err, ErrArtistNotFound) {
		t.Errorf("inactive artist: expected ErrArtistNotFound, got %v", err)
	}
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := seededClient(t, reg)

	_, _ = c.Search(context.Background(), SearchOptions{})
	_, _ = c.Artists().Get(context.Background(), "missing")

	obs := c.obs.metrics
	if got := testutil.ToFloat64(obs.operations.WithLabelValues("search", statusOK)); got != 1 {
		t.Errorf("search ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.operations.WithLabelValues("artists.get", statusNotFound)); got != 1 {
		t.Errorf("get not_found = %v, want 1", got)
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered counter to be reused")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var o *observer
	o.observe("ping", time.Now(), nil)
}
