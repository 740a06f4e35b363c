// Package search filters a venue list by location, category and free text.
//
// Every predicate is independent and the result is their conjunction, so
// the order in which predicates are applied does not change the result.
// Surviving venues keep their original relative order.
package search

import (
	"strings"

	"github.com/pkordes/dining-scout/internal/domain"
)

// Predicate reports whether a venue should be kept.
type Predicate func(domain.Venue) bool

// Query applies q to venues and returns the survivors in their original order.
// The input slice is not modified.
func Query(venues []domain.Venue, q domain.Query) []domain.Venue {
	return Apply(venues, ByLocation(q.Location), ByCategory(q.Categories), ByText(q.Text))
}

// Apply keeps the venues for which every predicate holds.
// It always returns a non-nil slice.
func Apply(venues []domain.Venue, preds ...Predicate) []domain.Venue {
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if matchAll(v, preds) {
			out = append(out, v)
		}
	}
	return out
}

func matchAll(v domain.Venue, preds []Predicate) bool {
	for _, p := range preds {
		if !p(v) {
			return false
		}
	}
	return true
}

// ByLocation keeps venues whose location equals the filter value exactly.
// domain.AnyLocation() keeps everything.
func ByLocation(f domain.LocationFilter) Predicate {
	return func(v domain.Venue) bool {
		return f.Matches(v.Location)
	}
}

// ByCategory keeps venues whose category is in set. An empty set keeps nothing.
func ByCategory(set domain.CategorySet) Predicate {
	return func(v domain.Venue) bool {
		return set.Contains(v.Category)
	}
}

// ByText keeps venues whose name, location or tips contain text,
// ignoring case. Only the empty string keeps everything; whitespace is
// matched literally, like any other character.
func ByText(text string) Predicate {
	needle := strings.ToLower(text)
	if needle == "" {
		return func(domain.Venue) bool { return true }
	}
	return func(v domain.Venue) bool {
		for _, hay := range []string{v.Name, v.Location, v.Tips} {
			if hay != "" && strings.Contains(strings.ToLower(hay), needle) {
				return true
			}
		}
		return false
	}
}
