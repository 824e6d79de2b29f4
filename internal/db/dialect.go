package db

import (
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax for compiled statements.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// IsValid checks if the dialect is supported.
func (d Dialect) IsValid() bool {
	return d == Postgres || d == SQLite
}

// placeholder returns the n-th (1-based) bind marker.
func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Rebind rewrites '?' markers into the dialect's placeholder syntax.
// Markers inside single-quoted literals are left untouched.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			sb.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			sb.WriteString(d.placeholder(n))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Raw builds a statement from hand-written SQL using '?' markers.
func Raw(d Dialect, query string, args ...any) Statement {
	return Statement{SQL: Rebind(d, query), Args: args}
}
