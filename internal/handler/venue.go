package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/dining-scout/internal/catalog"
	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/service"
)

// BookingResponse echoes the booking applied to reservation links.
type BookingResponse struct {
	Date      openapi_types.Date `json:"date"`
	PartySize int                `json:"party_size"`
}

// VenueListResponse is the body of GET /venues.
// Count is the "Found N locations" figure shown above the result list.
type VenueListResponse struct {
	CatalogID uuid.UUID          `json:"catalog_id"`
	Count     int                `json:"count"`
	Booking   BookingResponse    `json:"booking"`
	Data      []domain.VenueView `json:"data"`
}

// OptionsResponse is the body of GET /venues/options.
type OptionsResponse struct {
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
}

// MapResponse is the body of GET /venues/map.
type MapResponse struct {
	Mappable bool                `json:"mappable"`
	Center   *domain.Coordinates `json:"center"`
	Points   []domain.MapPoint   `json:"points"`
}

// StatsResponse is the body of GET /venues/stats and POST /venues/reload.
type StatsResponse struct {
	CatalogID uuid.UUID `json:"catalog_id"`
	LoadedAt  time.Time `json:"loaded_at"`
	domain.LoadStats
	Skipped int `json:"skipped"`
}

// ListVenues handles GET /venues.
// Supports ?location=, repeated ?category=, ?q=, ?date= and ?party_size=.
func (s *Server) ListVenues(w http.ResponseWriter, r *http.Request) {
	f, err := filterParams(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	var date *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "date", r.URL.Query(), &date); err != nil {
		requestError(w, err.Error())
		return
	}
	var partySize *int
	if err := runtime.BindQueryParameter("form", true, false, "party_size", r.URL.Query(), &partySize); err != nil {
		requestError(w, err.Error())
		return
	}

	day := s.today()
	if date != nil {
		day = date.Time
	}
	n := s.partySize
	if partySize != nil {
		n = *partySize
	}
	b, err := domain.NewBooking(day, n)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	res, err := s.venues.Search(f, b)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	data := res.Venues
	if data == nil {
		data = []domain.VenueView{}
	}
	writeJSON(w, http.StatusOK, VenueListResponse{
		CatalogID: res.CatalogID,
		Count:     len(data),
		Booking:   BookingResponse{Date: openapi_types.Date{Time: b.Date}, PartySize: b.PartySize},
		Data:      data,
	})
}

// GetOptions handles GET /venues/options.
func (s *Server) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.venues.Options()
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OptionsResponse{
		Locations:  nonNil(opts.Locations),
		Categories: nonNil(opts.Categories),
	})
}

// GetMap handles GET /venues/map. It accepts the same filters as ListVenues.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	f, err := filterParams(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	p, ok, err := s.venues.Map(f)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	points := p.Points
	if points == nil {
		points = []domain.MapPoint{}
	}
	writeJSON(w, http.StatusOK, MapResponse{Mappable: ok, Center: p.Center, Points: points})
}

// GetStats handles GET /venues/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	c, err := s.venues.Catalog()
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse(c))
}

// ReloadVenues handles POST /venues/reload.
// A failed reload answers 503 and leaves the previous catalog in service.
func (s *Server) ReloadVenues(w http.ResponseWriter, r *http.Request) {
	c, err := s.venues.Load(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse(c))
}

// --- mapping helpers --------------------------------------------------------

// filterParams binds the filter parameters shared by /venues and /venues/map.
// A blank location places no restriction. An absent category parameter
// selects every category; a present one selects only its non-blank values,
// so "?category=" selects nothing.
func filterParams(r *http.Request) (service.Filter, error) {
	query := r.URL.Query()

	var location, text *string
	if err := runtime.BindQueryParameter("form", true, false, "location", query, &location); err != nil {
		return service.Filter{}, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &text); err != nil {
		return service.Filter{}, err
	}

	f := service.Filter{Location: domain.AnyLocation()}
	if location != nil && strings.TrimSpace(*location) != "" {
		f.Location = domain.LocationIs(*location)
	}
	if text != nil {
		f.Text = *text
	}
	if values, ok := query["category"]; ok {
		f.Categories = make([]string, 0, len(values))
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				f.Categories = append(f.Categories, v)
			}
		}
	}
	return f, nil
}

// today returns the current calendar date at midnight UTC.
func (s *Server) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func statsResponse(c *catalog.Catalog) StatsResponse {
	st := c.Stats()
	return StatsResponse{
		CatalogID: c.ID(),
		LoadedAt:  c.LoadedAt(),
		LoadStats: st,
		Skipped:   st.Skipped(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
