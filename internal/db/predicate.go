package db

import (
	"fmt"
	"regexp"
	"strings"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Predicate is a typed WHERE condition. Values are always bound, never inlined.
type Predicate interface {
	appendTo(c *compiler) error
}

type comparison struct {
	column string
	op     string
	value  any
}

// Eq matches column = value.
func Eq(column string, value any) Predicate { return comparison{column: column, op: "=", value: value} }

// Gte matches column >= value.
func Gte(column string, value any) Predicate { return comparison{column: column, op: ">=", value: value} }

// Lte matches column <= value.
func Lte(column string, value any) Predicate { return comparison{column: column, op: "<=", value: value} }

func (p comparison) appendTo(c *compiler) error {
	if err := c.column(p.column); err != nil {
		return err
	}
	c.write(" " + p.op + " ")
	c.bind(p.value)
	return nil
}

type membership struct {
	column string
	values []any
}

// In matches column against a non-empty set of values.
func In[T any](column string, values ...T) Predicate {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return membership{column: column, values: vals}
}

func (p membership) appendTo(c *compiler) error {
	if len(p.values) == 0 {
		return fmt.Errorf("%w: IN on %q requires at least one value", ErrInvalidQuery, p.column)
	}
	if err := c.column(p.column); err != nil {
		return err
	}
	c.write(" IN (")
	for i, v := range p.values {
		if i > 0 {
			c.write(", ")
		}
		c.bind(v)
	}
	c.write(")")
	return nil
}

type containsFold struct {
	column string
	term   string
}

// ContainsFold matches rows whose column contains term, case-insensitively.
// LIKE wildcards in term are escaped so they match literally.
func ContainsFold(column, term string) Predicate {
	return containsFold{column: column, term: term}
}

func (p containsFold) appendTo(c *compiler) error {
	if err := c.columnFunc("LOWER", p.column); err != nil {
		return err
	}
	c.write(" LIKE ")
	c.bind("%" + escapeLike(strings.ToLower(p.term)) + "%")
	c.write(` ESCAPE '\'`)
	return nil
}

type anyOf struct {
	preds []Predicate
}

// AnyOf groups predicates into a parenthesized OR-group (a single conjunct).
func AnyOf(preds ...Predicate) Predicate { return anyOf{preds: preds} }

func (p anyOf) appendTo(c *compiler) error {
	if len(p.preds) == 0 {
		return fmt.Errorf("%w: empty OR group", ErrInvalidQuery)
	}
	c.write("(")
	for i, sub := range p.preds {
		if i > 0 {
			c.write(" OR ")
		}
		if err := sub.appendTo(c); err != nil {
			return err
		}
	}
	c.write(")")
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// compiler accumulates SQL text and bound arguments.
type compiler struct {
	dialect Dialect
	sb      strings.Builder
	args    []any
}

func (c *compiler) write(s string) { c.sb.WriteString(s) }

func (c *compiler) bind(v any) {
	c.args = append(c.args, v)
	c.sb.WriteString(c.dialect.placeholder(len(c.args)))
}

func (c *compiler) column(name string) error {
	if !identRegex.MatchString(name) {
		return fmt.Errorf("%w: column %q contains invalid characters", ErrInvalidQuery, name)
	}
	c.write(name)
	return nil
}

func (c *compiler) columnFunc(fn, name string) error {
	if !identRegex.MatchString(name) {
		return fmt.Errorf("%w: column %q contains invalid characters", ErrInvalidQuery, name)
	}
	c.write(fn + "(" + name + ")")
	return nil
}
