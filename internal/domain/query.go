package domain

// LocationFilter restricts results to a single location, or to none at all.
// The zero value means "no restriction". It is deliberately not a string so
// that a real location literally named "All" cannot collide with the marker.
type LocationFilter struct {
	value      string
	restricted bool
}

// AnyLocation returns the no-restriction marker.
func AnyLocation() LocationFilter {
	return LocationFilter{}
}

// LocationIs restricts results to venues whose location equals v exactly.
func LocationIs(v string) LocationFilter {
	return LocationFilter{value: v, restricted: true}
}

// Value returns the required location and whether a restriction is set.
func (f LocationFilter) Value() (string, bool) {
	return f.value, f.restricted
}

// Matches reports whether location passes the filter (case-sensitive).
func (f LocationFilter) Matches(location string) bool {
	return !f.restricted || f.value == location
}

// CategorySet is the set of categories a venue may belong to.
// An empty set admits nothing.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(categories ...string) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether category is a member of the set.
func (s CategorySet) Contains(category string) bool {
	_, ok := s[category]
	return ok
}

// Query carries the filter parameters for one search.
type Query struct {
	Location   LocationFilter
	Categories CategorySet
	// Text is matched case-insensitively against name, location and tips.
	// Empty text places no restriction; whitespace is matched as given.
	Text string
}
