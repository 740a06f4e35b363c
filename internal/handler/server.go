// Package handler implements the HTTP handlers for the Dining Scout API.
// All handlers are methods on Server. Methods are split into files by
// resource (health.go, venue.go) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/dining-scout/internal/catalog"
	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/service"
)

// VenueServicer defines the business operations the venue handlers depend on.
// It is declared here, in the consumer package, so handler tests can inject
// a mock without a data source.
type VenueServicer interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
	Catalog() (*catalog.Catalog, error)
	Search(f service.Filter, b domain.Booking) (service.SearchResult, error)
	Map(f service.Filter) (domain.Projection, bool, error)
	Options() (service.Options, error)
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	venues    VenueServicer
	partySize int
	now       func() time.Time
	openAPI   []byte
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultPartySize sets the party size used when a request omits party_size.
func WithDefaultPartySize(n int) Option {
	return func(s *Server) { s.partySize = n }
}

// WithClock sets the clock used to derive the default booking date.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithOpenAPI sets the document served at /openapi.yaml.
func WithOpenAPI(doc []byte) Option {
	return func(s *Server) { s.openAPI = doc }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(venues VenueServicer, opts ...Option) *Server {
	s := &Server{venues: venues, partySize: 2, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router serving every API endpoint.
// main.go mounts it under "/" after installing the middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Route("/venues", func(r chi.Router) {
		r.Get("/", s.ListVenues)
		r.Get("/options", s.GetOptions)
		r.Get("/map", s.GetMap)
		r.Get("/stats", s.GetStats)
		r.Post("/reload", s.ReloadVenues)
	})
	return r
}
