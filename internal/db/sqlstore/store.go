// Package sqlstore implements db.Store over database/sql. Driver packages
// (postgres, sqlite) open the connection and supply error translation.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gearsh/gearsh-api/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// ErrorTranslator maps driver errors onto db sentinels (ErrDuplicate etc).
// It returns the input unchanged when there is nothing to translate.
type ErrorTranslator func(error) error

// Store wraps *sql.DB with row-map scanning and transactions.
type Store struct {
	sqlDB     *sql.DB
	dialect   db.Dialect
	translate ErrorTranslator
}

// New wraps an opened *sql.DB.
func New(sqlDB *sql.DB, d db.Dialect, translate ErrorTranslator) *Store {
	if translate == nil {
		translate = func(err error) error { return err }
	}
	return &Store{sqlDB: sqlDB, dialect: d, translate: translate}
}

// DB exposes the underlying handle for migrations.
func (s *Store) DB() *sql.DB { return s.sqlDB }

// Dialect returns the placeholder dialect of the connection.
func (s *Store) Dialect() db.Dialect { return s.dialect }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	_ = s.sqlDB.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Query runs stmt and returns all rows.
func (s *Store) Query(ctx context.Context, stmt db.Statement) ([]db.Row, error) {
	return query(ctx, s.sqlDB, s.translate, stmt)
}

// QueryRow runs stmt and returns the first row or db.ErrNoRows.
func (s *Store) QueryRow(ctx context.Context, stmt db.Statement) (db.Row, error) {
	return queryRow(ctx, s.sqlDB, s.translate, stmt)
}

// Exec runs stmt and returns affected rows.
func (s *Store) Exec(ctx context.Context, stmt db.Statement) (int64, error) {
	return exec(ctx, s.sqlDB, s.translate, stmt)
}

// InTx runs fn in a transaction. A returned error or panic rolls back.
func (s *Store) InTx(ctx context.Context, fn func(q db.Querier) error) (err error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpBegin, Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&txQuerier{tx: tx, translate: s.translate}); err != nil {
		return err
	}
	if cerr := tx.Commit(); cerr != nil {
		return &db.Error{Op: db.OpCommit, Err: cerr}
	}
	return nil
}

type txQuerier struct {
	tx        *sql.Tx
	translate ErrorTranslator
}

func (q *txQuerier) Query(ctx context.Context, stmt db.Statement) ([]db.Row, error) {
	return query(ctx, q.tx, q.translate, stmt)
}

func (q *txQuerier) QueryRow(ctx context.Context, stmt db.Statement) (db.Row, error) {
	return queryRow(ctx, q.tx, q.translate, stmt)
}

func (q *txQuerier) Exec(ctx context.Context, stmt db.Statement) (int64, error) {
	return exec(ctx, q.tx, q.translate, stmt)
}

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func query(ctx context.Context, r runner, tr ErrorTranslator, stmt db.Statement) ([]db.Row, error) {
	rows, err := r.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: tr(err)}
	}
	defer func() { _ = rows.Close() }()

	out, err := scanRows(rows)
	if err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: tr(err)}
	}
	return out, nil
}

func queryRow(ctx context.Context, r runner, tr ErrorTranslator, stmt db.Statement) (db.Row, error) {
	rows, err := query(ctx, r, tr, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, db.ErrNoRows
	}
	return rows[0], nil
}

func exec(ctx context.Context, r runner, tr ErrorTranslator, stmt db.Statement) (int64, error) {
	res, err := r.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, &db.Error{Op: db.OpExec, Err: tr(err)}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &db.Error{Op: db.OpExec, Err: err}
	}
	return n, nil
}

// scanRows reads every row into a column-keyed map.
func scanRows(rows *sql.Rows) ([]db.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []db.Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(db.Row, len(cols))
		for i, c := range cols {
			// drivers may reuse []byte buffers between Next calls
			if b, ok := vals[i].([]byte); ok {
				vals[i] = append([]byte(nil), b...)
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
