package search

import (
	"sort"
	"strings"

	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
)

// Relevance weights.
const (
	exactNameBoost   = 100
	partialNameBoost = 80
	categoryBoost    = 60
	bioBoost         = 20
	locationBoost    = 25
	ratingWeight     = 5
	verifiedBoost    = 15
	reviewWeight     = 0.1
	trendingBoost    = 20
)

// score computes the relevance of p for an already lowercased term.
func score(p profile.Profile, term string) float64 {
	var s float64

	name := strings.ToLower(p.Name)
	switch {
	case name == term:
		s += exactNameBoost
	case strings.Contains(name, term):
		s += partialNameBoost
	}
	if strings.ToLower(p.Category) == term {
		s += categoryBoost
	}
	if p.Bio != nil && strings.Contains(strings.ToLower(*p.Bio), term) {
		s += bioBoost
	}
	if p.Location != nil && strings.Contains(strings.ToLower(*p.Location), term) {
		s += locationBoost
	}

	s += p.Rating * ratingWeight
	if p.Verified {
		s += verifiedBoost
	}
	s += float64(p.ReviewCount) * reviewWeight
	if p.Trending {
		s += trendingBoost
	}
	return s
}

// rank scores every profile and orders them by descending score.
// Equal scores keep their input order, so the store ordering decides ties.
func rank(profiles []profile.Profile, term string) []profile.Ranked {
	term = strings.ToLower(term)

	out := make([]profile.Ranked, len(profiles))
	for i, p := range profiles {
		s := score(p, term)
		out[i] = profile.Ranked{Profile: p, Score: &s}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Score > *out[j].Score
	})
	return out
}

// unranked wraps profiles without scores, preserving store order.
func unranked(profiles []profile.Profile) []profile.Ranked {
	out := make([]profile.Ranked, len(profiles))
	for i, p := range profiles {
		out[i] = profile.Ranked{Profile: p}
	}
	return out
}
