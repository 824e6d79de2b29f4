package artist

import (
	"context"
	"testing"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	dialect    db.Dialect
	queryFn    func(ctx context.Context, stmt db.Statement) ([]db.Row, error)
	queryRowFn func(ctx context.Context, stmt db.Statement) (db.Row, error)
	statements []db.Statement
}

func (m *mockStore) Query(ctx context.Context, stmt db.Statement) ([]db.Row, error) {
	m.statements = append(m.statements, stmt)
	if m.queryFn != nil {
		return m.queryFn(ctx, stmt)
	}
	return nil, nil
}

func (m *mockStore) QueryRow(ctx context.Context, stmt db.Statement) (db.Row, error) {
	m.statements = append(m.statements, stmt)
	if m.queryRowFn != nil {
		return m.queryRowFn(ctx, stmt)
	}
	return nil, db.ErrNoRows
}

func (m *mockStore) Dialect() db.Dialect {
	if m.dialect == "" {
		return db.SQLite
	}
	return m.dialect
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func mustSpec(t *testing.T, p filter.Params) filter.Spec {
	t.Helper()
	s, err := filter.New(p)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return s
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
