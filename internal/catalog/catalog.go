// Package catalog holds the session's venue collection.
//
// A Catalog is built once per load cycle and never modified afterwards; a
// reload builds a new Catalog and swaps it in as a whole. It performs no
// filtering of its own.
package catalog

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/normalize"
)

// namespace scopes catalog IDs so they cannot collide with other
// name-based UUIDs derived from the same bytes.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pkordes/dining-scout/catalog"))

// Catalog is an immutable, ordered collection of normalized venues.
type Catalog struct {
	id         uuid.UUID
	loadedAt   time.Time
	venues     []domain.Venue
	locations  []string
	categories []string
	stats      domain.LoadStats
}

// Load normalizes batch and builds a Catalog from the surviving venues.
// Loading the same rows twice yields catalogs with equal contents and ID.
func Load(batch domain.RowBatch) *Catalog {
	res := normalize.Rows(batch.Rows)
	return New(res.Venues, domain.LoadStats{
		Rows:             len(batch.Rows),
		Venues:           len(res.Venues),
		SkippedMalformed: batch.Skipped,
		DroppedNameless:  res.Dropped,
	})
}

// New builds a Catalog from already-normalized venues. The venues are
// copied, so later changes to the caller's slice are not observed.
func New(venues []domain.Venue, stats domain.LoadStats) *Catalog {
	c := &Catalog{
		loadedAt: time.Now().UTC(),
		venues:   make([]domain.Venue, len(venues)),
		stats:    stats,
	}
	seenLoc := make(map[string]struct{})
	seenCat := make(map[string]struct{})
	for i, v := range venues {
		c.venues[i] = v.Clone()
		if _, ok := seenLoc[v.Location]; !ok && v.Location != "" {
			seenLoc[v.Location] = struct{}{}
			c.locations = append(c.locations, v.Location)
		}
		if _, ok := seenCat[v.Category]; !ok {
			seenCat[v.Category] = struct{}{}
			c.categories = append(c.categories, v.Category)
		}
	}
	slices.Sort(c.locations)
	c.id = contentID(c.venues)
	return c
}

// contentID derives a stable ID from the normalized venues.
func contentID(venues []domain.Venue) uuid.UUID {
	// Venue holds only JSON-safe field types, so Marshal cannot fail.
	b, _ := json.Marshal(venues)
	return uuid.NewSHA1(namespace, b)
}

// ID identifies the catalog contents. Equal contents produce equal IDs.
func (c *Catalog) ID() uuid.UUID { return c.id }

// LoadedAt is the time the catalog was built.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Len returns the number of venues.
func (c *Catalog) Len() int { return len(c.venues) }

// Stats returns the load statistics recorded when the catalog was built.
func (c *Catalog) Stats() domain.LoadStats { return c.stats }

// Venues returns a copy of all venues in load order.
func (c *Catalog) Venues() []domain.Venue {
	out := make([]domain.Venue, len(c.venues))
	for i, v := range c.venues {
		out[i] = v.Clone()
	}
	return out
}

// At returns the venue at index i in load order.
func (c *Catalog) At(i int) (domain.Venue, bool) {
	if i < 0 || i >= len(c.venues) {
		return domain.Venue{}, false
	}
	return c.venues[i].Clone(), true
}

// Locations returns the distinct non-blank venue locations, sorted.
// A blank location cannot be selected, so it is not offered.
func (c *Catalog) Locations() []string {
	return slices.Clone(c.locations)
}

// Categories returns the distinct non-blank venue categories in first-seen
// order.
func (c *Catalog) Categories() []string {
	return slices.DeleteFunc(slices.Clone(c.categories), func(s string) bool { return s == "" })
}

// AllCategories returns a set containing every category in the catalog,
// blank included. It is the default category selection, so venues without a
// category still show until the user picks categories.
func (c *Catalog) AllCategories() domain.CategorySet {
	return domain.NewCategorySet(c.categories...)
}
