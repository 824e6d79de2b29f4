package sortby

// SortBy is the result ordering directive.
type SortBy string

// Caller-selectable sort directives.
const (
	// Relevance orders trending first, then rating, then review count.
	// With a free-text term the results are re-ranked by relevance score.
	Relevance SortBy = "relevance"
	Rating    SortBy = "rating"
	PriceLow  SortBy = "price_low"
	PriceHigh SortBy = "price_high"
	Popular   SortBy = "popular"
)

// TopRated is the fixed ordering of the artist listing: rating, then review count.
// It is not selectable by callers.
const TopRated SortBy = "top_rated"

// IsValid checks if s is one of the caller-selectable directives.
func (s SortBy) IsValid() bool {
	switch s {
	case Relevance, Rating, PriceLow, PriceHigh, Popular:
		return true
	}
	return false
}

// Parse maps raw input to a directive. Unknown values fall back to Relevance.
func Parse(raw string) SortBy {
	s := SortBy(raw)
	if !s.IsValid() {
		return Relevance
	}
	return s
}
