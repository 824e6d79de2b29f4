package artist

import (
	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/filter"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/sortby"
)

const (
	fromProfiles = "artist_profiles ap"
	joinOwners   = "users u ON ap.user_id = u.id"
)

var summaryColumns = []string{
	"ap.id AS artist_id",
	"u.id AS user_id",
	"u.display_name AS name",
	"u.profile_picture_url AS image",
	"u.bio AS bio",
	"u.location AS location",
	"u.is_verified AS is_verified",
	"ap.category AS category",
	"ap.genre AS genre",
	"ap.base_rate AS base_rate",
	"ap.hourly_rate AS hourly_rate",
	"ap.avg_rating AS rating",
	"ap.total_reviews AS review_count",
	"ap.is_trending AS is_trending",
	"ap.skills AS skills",
	"ap.years_experience AS years_experience",
}

var detailColumns = append(append([]string(nil), summaryColumns...),
	"u.first_name AS first_name",
	"u.last_name AS last_name",
	"u.email AS email",
	"u.country AS country",
	"u.phone AS phone",
	"ap.total_bookings AS total_bookings",
	"ap.portfolio_urls AS portfolio_urls",
	"ap.social_links AS social_links",
	"ap.availability_status AS availability_status",
)

// termColumns are matched case-insensitively as one OR-group.
var termColumns = []string{
	"u.display_name",
	"u.bio",
	"ap.category",
	"ap.genre",
	"u.location",
}

// compileSearch translates a filter into a paginated catalog query.
// Only active owners are eligible regardless of the filter.
func compileSearch(spec filter.Spec, d db.Dialect) (db.Statement, error) {
	return db.Select(summaryColumns...).
		From(fromProfiles).
		Join(joinOwners).
		Where(predicates(spec)...).
		OrderBy(orderFor(spec.SortBy())...).
		Limit(spec.Limit()).
		Offset(spec.Offset()).
		Build(d)
}

func predicates(spec filter.Spec) []db.Predicate {
	preds := []db.Predicate{db.Eq("u.is_active", true)}

	if spec.HasTerm() {
		group := make([]db.Predicate, len(termColumns))
		for i, col := range termColumns {
			group[i] = db.ContainsFold(col, spec.Term())
		}
		preds = append(preds, db.AnyOf(group...))
	}
	if cats := spec.Categories(); len(cats) > 0 {
		preds = append(preds, db.In("ap.category", cats...))
	}
	if v, ok := spec.MinRating(); ok {
		preds = append(preds, db.Gte("ap.avg_rating", v))
	}
	if v, ok := spec.MinPrice(); ok {
		preds = append(preds, db.Gte("ap.base_rate", v))
	}
	if v, ok := spec.MaxPrice(); ok {
		preds = append(preds, db.Lte("ap.base_rate", v))
	}
	if spec.VerifiedOnly() {
		preds = append(preds, db.Eq("u.is_verified", true))
	}
	return preds
}

// orderFor maps a sort directive to ORDER BY terms.
// Every ordering ends with the artist id so pages partition the result set.
func orderFor(sb sortby.SortBy) []db.Order {
	var orders []db.Order
	switch sb {
	case sortby.Rating:
		orders = []db.Order{db.Desc("ap.avg_rating")}
	case sortby.PriceLow:
		orders = []db.Order{db.Asc("ap.base_rate")}
	case sortby.PriceHigh:
		orders = []db.Order{db.Desc("ap.base_rate")}
	case sortby.Popular:
		orders = []db.Order{db.Desc("ap.total_reviews")}
	case sortby.TopRated:
		orders = []db.Order{db.Desc("ap.avg_rating"), db.Desc("ap.total_reviews")}
	default:
		orders = []db.Order{db.Desc("ap.is_trending"), db.Desc("ap.avg_rating"), db.Desc("ap.total_reviews")}
	}
	return append(orders, db.Asc("ap.id"))
}

func compileDetail(id string, d db.Dialect) (db.Statement, error) {
	return db.Select(detailColumns...).
		From(fromProfiles).
		Join(joinOwners).
		Where(db.Eq("ap.id", id), db.Eq("u.is_active", true)).
		Build(d)
}

func compileServices(artistID string, d db.Dialect) (db.Statement, error) {
	return db.Select("id", "name", "description", "price", "duration_hours").
		From("services").
		Where(db.Eq("artist_id", artistID), db.Eq("is_active", true)).
		OrderBy(db.Asc("name"), db.Asc("id")).
		Build(d)
}
