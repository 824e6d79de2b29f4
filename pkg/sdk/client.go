package gearsh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/db/postgres"
	"github.com/gearsh/gearsh-api/internal/db/sqlite"
	"github.com/gearsh/gearsh-api/internal/db/sqlstore"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	artistrepo "github.com/gearsh/gearsh-api/internal/repository/artist"
	reviewrepo "github.com/gearsh/gearsh-api/internal/repository/review"
	artistuc "github.com/gearsh/gearsh-api/internal/usecase/artist"
	healthuc "github.com/gearsh/gearsh-api/internal/usecase/health"
	searchuc "github.com/gearsh/gearsh-api/internal/usecase/search"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"

	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, spec filter.Spec) ([]profile.Ranked, error)
}

type catalogUseCase interface {
	List(ctx context.Context, spec filter.Spec) ([]profile.Profile, error)
	Detail(ctx context.Context, id string) (profile.Detail, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Client is the gearsh SDK entry point.
type Client struct {
	store      *sqlstore.Store
	db         pinger
	searchSvc  searchUseCase
	catalogSvc catalogUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a gearsh Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("gearsh: database required (use WithPostgres or WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("gearsh: database not ready: %w", err)
	}

	return wireClient(store, obs), nil
}

func openStore(ctx context.Context, cfg *clientConfig) (*sqlstore.Store, error) {
	var (
		store *sqlstore.Store
		apply func(context.Context, *sqlstore.Store) error
		err   error
	)
	// SDK callers log through slog; the store's zap logger stays quiet.
	nop := zap.NewNop()
	switch cfg.driver {
	case driverPostgres:
		store, err = postgres.Open(ctx, postgres.Config{DSN: cfg.dsn}, nop)
		apply = postgres.ApplySchema
	case driverSQLite:
		store, err = sqlite.Open(ctx, sqlite.Config{Path: cfg.dsn}, nop)
		apply = sqlite.ApplySchema
	default:
		return nil, fmt.Errorf("gearsh: unknown driver %q", cfg.driver)
	}
	if err != nil {
		return nil, fmt.Errorf("gearsh: open %s: %w", cfg.driver, err)
	}

	if cfg.applySchema {
		if err := apply(ctx, store); err != nil {
			store.Close()
			return nil, fmt.Errorf("gearsh: apply schema: %w", err)
		}
	}
	return store, nil
}

func wireClient(store *sqlstore.Store, obs *observer) *Client {
	artists := artistrepo.New(store)
	reviews := reviewrepo.New(store)

	return &Client{
		store:      store,
		db:         store,
		searchSvc:  searchuc.New(artists, nil),
		catalogSvc: artistuc.New(artists, reviews, nil),
		healthSvc:  healthuc.New(store, nil),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.db.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a filtered catalog search. With a free-text query and the
// relevance sort, results are re-ranked and carry a score.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (out []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observeN("search", start, len(out), err) }()

	spec, err := filter.New(filter.Params{
		Term:       opts.Query,
		Categories: opts.Categories,
		MinRating:  positive(opts.MinRating),
		MinPrice:   positive(opts.MinPrice),
		MaxPrice:   positive(opts.MaxPrice),
		Verified:   opts.Verified,
		SortBy:     opts.SortBy,
		Limit:      nonZero(opts.Limit),
		Offset:     nonZero(opts.Offset),
	})
	if err != nil {
		return nil, err
	}

	ranked, err := c.searchSvc.Search(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	out = make([]SearchResult, len(ranked))
	for i, r := range ranked {
		out[i] = searchResultFromDomain(r)
	}
	return out, nil
}

// Artists returns the artist listing service.
func (c *Client) Artists() *ArtistService {
	return &ArtistService{svc: c.catalogSvc, obs: c.obs}
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func nonZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
