// Package sqlite opens a go-sqlite3 backed db.Store for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/db/sqlstore"
)

//go:embed schema.sql
var schema string

// Config holds the database path. ":memory:" opens a private in-memory database.
type Config struct {
	Path string
}

// Open opens the database file and enables foreign keys.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*sqlstore.Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	sqlDB, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// single writer; in-memory databases also vanish once their last connection closes
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	logger.Info("sqlite opened", zap.String("path", cfg.Path))

	return sqlstore.New(sqlDB, db.SQLite, TranslateError), nil
}

// ApplySchema creates the marketplace tables if they do not exist.
func ApplySchema(ctx context.Context, s *sqlstore.Store) error {
	if _, err := s.DB().ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// TranslateError maps UNIQUE and PRIMARY KEY constraint failures to db.ErrDuplicate.
func TranslateError(err error) error {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		if sqErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%w: %s", db.ErrDuplicate, sqErr.Error())
		}
	}
	return err
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_foreign_keys=on&_busy_timeout=5000"
}
