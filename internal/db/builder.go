package db

import (
	"fmt"
	"strings"
)

// Statement is a compiled SQL statement with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// String returns a debug representation with the argument list.
func (s Statement) String() string {
	return fmt.Sprintf("%s %v", s.SQL, s.Args)
}

// Order is a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Asc orders by column ascending.
func Asc(column string) Order { return Order{Column: column} }

// Desc orders by column descending.
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// SelectBuilder is a fluent builder for SELECT statements.
// Predicates accumulate as AND-ed conjuncts and are compiled on Build.
type SelectBuilder struct {
	columns []string
	from    string
	joins   []string
	where   []Predicate
	orderBy []Order
	limit   *int
	offset  *int
}

// Select starts building a SELECT statement.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From sets the base table expression.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.from = table
	return b
}

// Join adds an inner join clause ("users u ON ap.user_id = u.id").
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, "JOIN "+clause)
	return b
}

// LeftJoin adds a left outer join clause.
func (b *SelectBuilder) LeftJoin(clause string) *SelectBuilder {
	b.joins = append(b.joins, "LEFT JOIN "+clause)
	return b
}

// Where adds conjuncts. Nil predicates are ignored.
func (b *SelectBuilder) Where(preds ...Predicate) *SelectBuilder {
	for _, p := range preds {
		if p != nil {
			b.where = append(b.where, p)
		}
	}
	return b
}

// OrderBy appends ORDER BY terms.
func (b *SelectBuilder) OrderBy(orders ...Order) *SelectBuilder {
	b.orderBy = append(b.orderBy, orders...)
	return b
}

// Limit bounds the result size.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Offset skips n matching rows in the established order.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = &n
	return b
}

// Build validates and compiles the statement for the dialect.
func (b *SelectBuilder) Build(d Dialect) (Statement, error) {
	if !d.IsValid() {
		return Statement{}, fmt.Errorf("%w: unknown dialect %q", ErrInvalidQuery, d)
	}
	if len(b.columns) == 0 {
		return Statement{}, fmt.Errorf("%w: at least one column is required", ErrInvalidQuery)
	}
	if b.from == "" {
		return Statement{}, fmt.Errorf("%w: FROM is required", ErrInvalidQuery)
	}

	c := &compiler{dialect: d}
	c.write("SELECT " + strings.Join(b.columns, ", "))
	c.write(" FROM " + b.from)
	for _, j := range b.joins {
		c.write(" " + j)
	}

	for i, p := range b.where {
		if i == 0 {
			c.write(" WHERE ")
		} else {
			c.write(" AND ")
		}
		if err := p.appendTo(c); err != nil {
			return Statement{}, err
		}
	}

	for i, o := range b.orderBy {
		if i == 0 {
			c.write(" ORDER BY ")
		} else {
			c.write(", ")
		}
		if err := c.column(o.Column); err != nil {
			return Statement{}, err
		}
		if o.Desc {
			c.write(" DESC")
		} else {
			c.write(" ASC")
		}
	}

	if b.limit != nil {
		if *b.limit < 0 {
			return Statement{}, fmt.Errorf("%w: negative limit", ErrInvalidQuery)
		}
		c.write(" LIMIT ")
		c.bind(*b.limit)
	}
	if b.offset != nil {
		if *b.offset < 0 {
			return Statement{}, fmt.Errorf("%w: negative offset", ErrInvalidQuery)
		}
		c.write(" OFFSET ")
		c.bind(*b.offset)
	}

	return Statement{SQL: c.sb.String(), Args: c.args}, nil
}

// MustBuild calls Build and panics on error.
func (b *SelectBuilder) MustBuild(d Dialect) Statement {
	stmt, err := b.Build(d)
	if err != nil {
		panic(err)
	}
	return stmt
}
