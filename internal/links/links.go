// Package links builds the outbound menu and reservation URLs for a venue.
//
// Resolution is pure string construction: no I/O, no errors. A link that
// cannot be built safely from the venue and booking is omitted.
package links

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkordes/dining-scout/internal/domain"
)

// Defaults used when no override is configured.
const (
	DefaultBaseURL        = "https://disneyworld.disney.go.com"
	DefaultExternalDomain = "opentable.com"
)

// Link labels shown next to each URL.
const (
	LabelMenu        = "Menu"
	LabelReservation = "Disney"
	LabelExternal    = "OpenTable"
)

// Resolver builds links against a dining site base URL and gates external
// booking URLs on a single expected domain.
type Resolver struct {
	base   string
	domain string
}

// NewResolver constructs a Resolver. Empty arguments fall back to the defaults.
// A trailing slash on baseURL is ignored.
func NewResolver(baseURL, externalDomain string) *Resolver {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	dom := strings.ToLower(strings.Trim(strings.TrimSpace(externalDomain), "."))
	if dom == "" {
		dom = DefaultExternalDomain
	}
	return &Resolver{base: base, domain: dom}
}

// Resolve returns the links for v under booking b.
func (r *Resolver) Resolve(v domain.Venue, b domain.Booking) domain.Links {
	out := domain.Links{Menu: domain.Link{Label: LabelMenu, URL: r.MenuURL(v.Slug)}}
	if u, ok := r.ReservationURL(v.ReservationID, b); ok {
		out.Reservation = &domain.Link{Label: LabelReservation, URL: u}
	}
	if u, ok := r.ExternalURL(v.ExternalBookingURL); ok {
		out.External = &domain.Link{Label: LabelExternal, URL: u}
	}
	return out
}

// MenuURL returns {base}/dining/{slug}/menus/, or {base}/dining/ when slug
// is blank. The slug is escaped as a single path segment.
func (r *Resolver) MenuURL(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return r.base + "/dining/"
	}
	return r.base + "/dining/" + url.PathEscape(slug) + "/menus/"
}

// ReservationURL returns the booking-details deep link. It fails closed when
// the venue has no reservation id or the booking is out of range.
func (r *Resolver) ReservationURL(id *int64, b domain.Booking) (string, bool) {
	if id == nil || *id <= 0 || !b.Valid() {
		return "", false
	}
	return r.base + "/dining-res/restaurant-search/booking-details/" +
		"?restaurantId=" + strconv.FormatInt(*id, 10) +
		"&date=" + b.DateString() +
		"&partySize=" + strconv.Itoa(b.PartySize), true
}

// ExternalURL returns raw unchanged when it is an absolute http(s) URL on
// the expected domain or one of its subdomains. The host is compared, not
// the whole string, so "https://evil.example/opentable.com" is rejected.
func (r *Resolver) ExternalURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", false
	}
	if u.User != nil || u.Opaque != "" {
		return "", false
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == r.domain || strings.HasSuffix(host, "."+r.domain) {
		return raw, true
	}
	return "", false
}
