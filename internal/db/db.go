package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	Querier
	Transactor
	Dialect() Dialect
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Querier runs compiled statements. Implemented by the store and by transactions.
type Querier interface {
	// Query returns every row of the result set. A failed fetch never returns partial rows.
	Query(ctx context.Context, stmt Statement) ([]Row, error)
	// QueryRow returns the first row or ErrNoRows.
	QueryRow(ctx context.Context, stmt Statement) (Row, error)
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, stmt Statement) (int64, error)
}

// Transactor runs fn inside a single transaction.
// fn's error (or a panic) rolls back; nil commits.
type Transactor interface {
	InTx(ctx context.Context, fn func(q Querier) error) error
}

// KVStore provides simple key-value operations (cache backend).
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Close()
}
