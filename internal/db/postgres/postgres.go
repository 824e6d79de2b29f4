// Package postgres opens a lib/pq backed db.Store.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/db/sqlstore"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// Config holds connection and pool parameters.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to Postgres and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*sqlstore.Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	sqlDB, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 25))
	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 5))
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	sqlDB.SetConnMaxLifetime(lifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("postgres connected",
		zap.Int("max_open_conns", orDefault(cfg.MaxOpenConns, 25)),
	)

	return sqlstore.New(sqlDB, db.Postgres, TranslateError), nil
}

// ApplySchema creates the marketplace tables if they do not exist.
func ApplySchema(ctx context.Context, s *sqlstore.Store) error {
	if _, err := s.DB().ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// TranslateError maps unique violations to db.ErrDuplicate.
func TranslateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s", db.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
