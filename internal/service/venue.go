// Package service contains the business logic for the Dining Scout API.
// It owns the session's catalog, runs searches against it and resolves
// links. No data access lives here; the service depends on repo.RowSource.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pkordes/dining-scout/internal/catalog"
	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/geo"
	"github.com/pkordes/dining-scout/internal/links"
	"github.com/pkordes/dining-scout/internal/repo"
	"github.com/pkordes/dining-scout/internal/search"
)

// ErrNotLoaded is returned when no catalog has been loaded yet.
var ErrNotLoaded = fmt.Errorf("%w: catalog not loaded", domain.ErrLoad)

// SearchResult is one filtered, link-resolved view of the catalog.
type SearchResult struct {
	CatalogID uuid.UUID
	Venues    []domain.VenueView
}

// Filter is a search request. It differs from domain.Query only in how the
// default category selection is expressed: a nil Categories slice selects
// every category of the catalog the search runs against, while an empty
// non-nil slice selects none.
type Filter struct {
	Location   domain.LocationFilter
	Categories []string
	Text       string
}

// query binds f to catalog c.
func (f Filter) query(c *catalog.Catalog) domain.Query {
	q := domain.Query{Location: f.Location, Text: f.Text}
	if f.Categories == nil {
		q.Categories = c.AllCategories()
	} else {
		q.Categories = domain.NewCategorySet(f.Categories...)
	}
	return q
}

// Options are the values offered by the location and category selectors.
type Options struct {
	Locations  []string
	Categories []string
}

// VenueService serves searches from the most recently loaded catalog.
// A load builds a complete new catalog before swapping it in, so concurrent
// readers see either the old or the new catalog, never a mix.
type VenueService struct {
	source   repo.RowSource
	resolver *links.Resolver
	log      *slog.Logger
	current  atomic.Pointer[catalog.Catalog]
}

// NewVenueService constructs a VenueService. Call Load before serving.
func NewVenueService(src repo.RowSource, resolver *links.Resolver, log *slog.Logger) *VenueService {
	if log == nil {
		log = slog.Default()
	}
	return &VenueService{source: src, resolver: resolver, log: log}
}

// Load reads the source and replaces the current catalog.
// On failure the previous catalog, if any, stays in place and an error
// wrapping domain.ErrLoad is returned.
func (s *VenueService) Load(ctx context.Context) (*catalog.Catalog, error) {
	batch, err := s.source.Rows(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrLoad) {
			err = fmt.Errorf("%w: %w", domain.ErrLoad, err)
		}
		s.log.ErrorContext(ctx, "venue load failed", "error", err)
		return nil, fmt.Errorf("service.VenueService.Load: %w", err)
	}

	c := catalog.Load(batch)
	s.current.Store(c)

	st := c.Stats()
	s.log.InfoContext(ctx, "venues loaded",
		"catalog_id", c.ID().String(),
		"rows", st.Rows,
		"venues", st.Venues,
		"skipped_malformed", st.SkippedMalformed,
		"dropped_nameless", st.DroppedNameless,
	)
	return c, nil
}

// Catalog returns the current catalog, or ErrNotLoaded.
func (s *VenueService) Catalog() (*catalog.Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrNotLoaded
	}
	return c, nil
}

// Search filters the catalog and resolves links for every surviving venue.
// The booking is expected to have passed domain.NewBooking; an invalid one
// only suppresses reservation links.
func (s *VenueService) Search(f Filter, b domain.Booking) (SearchResult, error) {
	c, err := s.Catalog()
	if err != nil {
		return SearchResult{}, fmt.Errorf("service.VenueService.Search: %w", err)
	}

	found := search.Query(c.Venues(), f.query(c))
	views := make([]domain.VenueView, len(found))
	for i, v := range found {
		views[i] = domain.VenueView{Venue: v, Links: s.resolver.Resolve(v, b)}
	}
	return SearchResult{CatalogID: c.ID(), Venues: views}, nil
}

// Map filters the catalog and projects the result onto map coordinates.
// The boolean is false when no matching venue has coordinates.
func (s *VenueService) Map(f Filter) (domain.Projection, bool, error) {
	c, err := s.Catalog()
	if err != nil {
		return domain.Projection{}, false, fmt.Errorf("service.VenueService.Map: %w", err)
	}
	p, ok := geo.Project(search.Query(c.Venues(), f.query(c)))
	return p, ok, nil
}

// Options returns the selector values of the current catalog.
func (s *VenueService) Options() (Options, error) {
	c, err := s.Catalog()
	if err != nil {
		return Options{}, fmt.Errorf("service.VenueService.Options: %w", err)
	}
	return Options{Locations: c.Locations(), Categories: c.Categories()}, nil
}
