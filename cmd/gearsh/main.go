package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/auth"
	"github.com/gearsh/gearsh-api/internal/config"
	"github.com/gearsh/gearsh-api/internal/db/postgres"
	dbRedis "github.com/gearsh/gearsh-api/internal/db/redis"
	"github.com/gearsh/gearsh-api/internal/db/sqlite"
	"github.com/gearsh/gearsh-api/internal/db/sqlstore"
	logpkg "github.com/gearsh/gearsh-api/internal/logger"
	"github.com/gearsh/gearsh-api/internal/metrics"
	artistrepo "github.com/gearsh/gearsh-api/internal/repository/artist"
	"github.com/gearsh/gearsh-api/internal/repository/artistcache"
	bookingrepo "github.com/gearsh/gearsh-api/internal/repository/booking"
	reviewrepo "github.com/gearsh/gearsh-api/internal/repository/review"
	userrepo "github.com/gearsh/gearsh-api/internal/repository/user"
	chiTransport "github.com/gearsh/gearsh-api/internal/transport/chi"
	accountuc "github.com/gearsh/gearsh-api/internal/usecase/account"
	artistuc "github.com/gearsh/gearsh-api/internal/usecase/artist"
	bookinguc "github.com/gearsh/gearsh-api/internal/usecase/booking"
	healthuc "github.com/gearsh/gearsh-api/internal/usecase/health"
	reviewuc "github.com/gearsh/gearsh-api/internal/usecase/review"
	searchuc "github.com/gearsh/gearsh-api/internal/usecase/search"
	"github.com/gearsh/gearsh-api/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting gearsh API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
		zap.Bool("auth_enabled", cfg.Auth.JWTSecret != ""),
	)

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Pass nil interfaces (not typed nil pointers!) when the cache is off.
	// Go gotcha: (*artistcache.Cache)(nil) wrapped in an interface != nil.
	var (
		detailCache artistuc.Cache
		reviewInv   reviewuc.Invalidator
		bookingInv  bookinguc.Invalidator
		cachePinger healthuc.Pinger
	)
	if cfg.Cache.Enabled() {
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer kv.Close()

		c := artistcache.New(kv, time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.ArtistCacheTotal, logger)
		detailCache, reviewInv, bookingInv, cachePinger = c, c, c, kv
		logger.Info("Artist cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Repositories
	artistRepo := artistrepo.New(store)
	reviewRepo := reviewrepo.New(store)
	bookingRepo := bookingrepo.New(store)
	userRepo := userrepo.New(store)

	// Use cases
	tokens := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if !tokens.Enabled() {
		logger.Warn("auth.jwt_secret is empty: token checks disabled and no tokens issued")
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Search:   searchuc.New(artistRepo, metrics.SearchRecorder{}),
		Catalog:  artistuc.New(artistRepo, reviewRepo, detailCache),
		Reviews:  reviewuc.New(reviewRepo, reviewInv),
		Bookings: bookinguc.New(bookingRepo, bookingInv),
		Accounts: accountuc.New(userRepo, auth.NewHasher(cfg.Auth.BcryptCost), tokens),
		Health:   healthuc.New(store, cachePinger),
	}, logger)

	handler := chiTransport.NewRouter(server, chiTransport.RouterOptions{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Tokens:      tokens,
		Logger:      logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore opens the configured SQL backend and applies the bundled schema when asked to.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sqlstore.Store, error) {
	var (
		store *sqlstore.Store
		apply func(context.Context, *sqlstore.Store) error
		err   error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err = postgres.Open(ctx, postgres.Config{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMin) * time.Minute,
		}, logger)
		apply = postgres.ApplySchema
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, sqlite.Config{Path: cfg.DSN}, logger)
		apply = sqlite.ApplySchema
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.ApplySchema {
		if err := apply(ctx, store); err != nil {
			store.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
		logger.Info("Schema applied", zap.String("driver", cfg.Driver))
	}
	return store, nil
}
