package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/gearsh/gearsh-api/internal/domain"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/sortby"
)

// Filter limits.
const (
	MaxTermLength = 200
	MaxCategories = 32
	DefaultLimit  = 50
	MaxLimit      = 100
)

// Params is raw caller input. Nil pointers mean "not supplied".
type Params struct {
	Term       string
	Categories []string
	MinRating  *float64
	MinPrice   *float64
	MaxPrice   *float64
	Verified   bool
	SortBy     string
	Limit      *int
	Offset     *int
}

// Spec is a validated, normalized catalog filter. Immutable once built.
type Spec struct {
	term       string
	categories []string
	minRating  float64
	minPrice   float64
	maxPrice   float64
	verified   bool
	sortBy     sortby.SortBy
	limit      int
	offset     int
}

// New validates and normalizes p.
// Non-positive rating and price bounds mean "no filter". Limit defaults to 50
// and is clamped to 100. Negative limit or offset is rejected.
func New(p Params) (Spec, error) {
	s := Spec{
		term:     strings.TrimSpace(p.Term),
		verified: p.Verified,
		sortBy:   sortby.Parse(p.SortBy),
		limit:    DefaultLimit,
	}

	if utf8.RuneCountInString(s.term) > MaxTermLength {
		return Spec{}, domain.Invalid("query", "too long (max %d chars)", MaxTermLength)
	}

	cats, err := normalizeCategories(p.Categories)
	if err != nil {
		return Spec{}, err
	}
	s.categories = cats

	if p.MinRating != nil && *p.MinRating > 0 {
		s.minRating = *p.MinRating
	}
	if p.MinPrice != nil && *p.MinPrice > 0 {
		s.minPrice = *p.MinPrice
	}
	if p.MaxPrice != nil && *p.MaxPrice > 0 {
		s.maxPrice = *p.MaxPrice
	}
	if s.minPrice > 0 && s.maxPrice > 0 && s.maxPrice < s.minPrice {
		return Spec{}, domain.Invalid("maxPrice", "must be greater than or equal to minPrice")
	}

	if p.Limit != nil {
		switch {
		case *p.Limit < 0:
			return Spec{}, domain.Invalid("limit", "must be non-negative")
		case *p.Limit > MaxLimit:
			s.limit = MaxLimit
		case *p.Limit > 0:
			s.limit = *p.Limit
		}
	}
	if p.Offset != nil {
		if *p.Offset < 0 {
			return Spec{}, domain.Invalid("offset", "must be non-negative")
		}
		s.offset = *p.Offset
	}

	return s, nil
}

// WithSort returns a copy of s ordered by sb. Used for fixed listing orders.
func (s Spec) WithSort(sb sortby.SortBy) Spec {
	s.sortBy = sb
	return s
}

func normalizeCategories(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) > MaxCategories {
		return nil, domain.Invalid("categories", "too many values (max %d)", MaxCategories)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Term returns the trimmed free-text term, "" when absent.
func (s Spec) Term() string { return s.term }

// HasTerm reports whether a free-text term is present.
func (s Spec) HasTerm() bool { return s.term != "" }

// Categories returns the deduplicated category set in first-seen order.
func (s Spec) Categories() []string { return s.categories }

// MinRating returns the rating floor and whether it is active.
func (s Spec) MinRating() (float64, bool) { return s.minRating, s.minRating > 0 }

// MinPrice returns the base rate floor and whether it is active.
func (s Spec) MinPrice() (float64, bool) { return s.minPrice, s.minPrice > 0 }

// MaxPrice returns the base rate ceiling and whether it is active.
func (s Spec) MaxPrice() (float64, bool) { return s.maxPrice, s.maxPrice > 0 }

// VerifiedOnly reports whether only verified owners are eligible.
func (s Spec) VerifiedOnly() bool { return s.verified }

// SortBy returns the ordering directive.
func (s Spec) SortBy() sortby.SortBy { return s.sortBy }

// Limit returns the page size.
func (s Spec) Limit() int { return s.limit }

// Offset returns the number of rows to skip.
func (s Spec) Offset() int { return s.offset }

// Ranked reports whether results are re-ranked by relevance score.
func (s Spec) Ranked() bool { return s.sortBy == sortby.Relevance && s.term != "" }
