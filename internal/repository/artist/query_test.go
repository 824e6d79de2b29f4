package artist

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/sortby"
)

func whereClause(sql string) string {
	i := strings.Index(sql, " WHERE ")
	j := strings.Index(sql, " ORDER BY ")
	return sql[i+len(" WHERE ") : j]
}

func TestCompileSearch_NoFilters(t *testing.T) {
	stmt, err := compileSearch(mustSpec(t, filter.Params{}), db.SQLite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := whereClause(stmt.SQL); got != "u.is_active = ?" {
		t.Errorf("where = %q, want only the active conjunct", got)
	}
	if strings.Contains(stmt.SQL, " IN (") {
		t.Error("empty category set must not add an IN clause")
	}
	if !strings.HasSuffix(stmt.SQL,
		"ORDER BY ap.is_trending DESC, ap.avg_rating DESC, ap.total_reviews DESC, ap.id ASC LIMIT ? OFFSET ?") {
		t.Errorf("unexpected ordering: %s", stmt.SQL)
	}
	if !reflect.DeepEqual(stmt.Args, []any{true, 50, 0}) {
		t.Errorf("args = %v", stmt.Args)
	}
}

func TestCompileSearch_TermIsSingleGroupedConjunct(t *testing.T) {
	spec := mustSpec(t, filter.Params{Term: "Sipho", Categories: []string{"DJ"}})
	stmt, err := compileSearch(spec, db.Postgres)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "u.is_active = $1 AND (" +
		`LOWER(u.display_name) LIKE $2 ESCAPE '\' OR ` +
		`LOWER(u.bio) LIKE $3 ESCAPE '\' OR ` +
		`LOWER(ap.category) LIKE $4 ESCAPE '\' OR ` +
		`LOWER(ap.genre) LIKE $5 ESCAPE '\' OR ` +
		`LOWER(u.location) LIKE $6 ESCAPE '\'` +
		") AND ap.category IN ($7)"
	if got := whereClause(stmt.SQL); got != want {
		t.Errorf("where =\n%s\nwant\n%s", got, want)
	}
	for i := 1; i <= 5; i++ {
		if stmt.Args[i] != "%sipho%" {
			t.Errorf("arg %d = %v, want lowercased pattern", i, stmt.Args[i])
		}
	}
	if strings.Contains(stmt.SQL, "Sipho") {
		t.Error("term must be bound, never inlined")
	}
}

func TestCompileSearch_AllFilters(t *testing.T) {
	spec := mustSpec(t, filter.Params{
		Categories: []string{"DJ", "Photographer"},
		MinRating:  floatPtr(4),
		MinPrice:   floatPtr(100),
		MaxPrice:   floatPtr(900),
		Verified:   true,
		Limit:      intPtr(10),
		Offset:     intPtr(20),
	})
	stmt, err := compileSearch(spec, db.SQLite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "u.is_active = ? AND ap.category IN (?, ?) AND ap.avg_rating >= ?" +
		" AND ap.base_rate >= ? AND ap.base_rate <= ? AND u.is_verified = ?"
	if got := whereClause(stmt.SQL); got != want {
		t.Errorf("where =\n%s\nwant\n%s", got, want)
	}
	wantArgs := []any{true, "DJ", "Photographer", 4.0, 100.0, 900.0, true, 10, 20}
	if !reflect.DeepEqual(stmt.Args, wantArgs) {
		t.Errorf("args = %v, want %v", stmt.Args, wantArgs)
	}
}

func TestOrderFor(t *testing.T) {
	tests := []struct {
		sort sortby.SortBy
		want []db.Order
	}{
		{sortby.Rating, []db.Order{db.Desc("ap.avg_rating"), db.Asc("ap.id")}},
		{sortby.PriceLow, []db.Order{db.Asc("ap.base_rate"), db.Asc("ap.id")}},
		{sortby.PriceHigh, []db.Order{db.Desc("ap.base_rate"), db.Asc("ap.id")}},
		{sortby.Popular, []db.Order{db.Desc("ap.total_reviews"), db.Asc("ap.id")}},
		{sortby.Relevance, []db.Order{
			db.Desc("ap.is_trending"), db.Desc("ap.avg_rating"), db.Desc("ap.total_reviews"), db.Asc("ap.id"),
		}},
		{sortby.TopRated, []db.Order{db.Desc("ap.avg_rating"), db.Desc("ap.total_reviews"), db.Asc("ap.id")}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			if got := orderFor(tt.sort); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("orderFor(%s) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestCompileDetail(t *testing.T) {
	stmt, err := compileDetail("artist_1", db.Postgres)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(stmt.SQL, "WHERE ap.id = $1 AND u.is_active = $2") {
		t.Errorf("sql = %s", stmt.SQL)
	}
	if !strings.Contains(stmt.SQL, "ap.social_links AS social_links") {
		t.Error("detail should select extended columns")
	}
}
