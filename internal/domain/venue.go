// Package domain contains the core data types for the Dining Scout application.
// This package has zero external dependencies and is imported by every other
// internal package (normalize, catalog, search, links, geo, service, handler).
package domain

import "slices"

// Coordinates is a latitude/longitude pair in decimal degrees.
// A Venue either has both components or none (see Venue.Coordinates).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Venue is a single dining establishment after normalization.
// Optional text fields use "" for absent; optional numeric fields use nil.
type Venue struct {
	Name               string       `json:"name"`
	Location           string       `json:"location"`
	Category           string       `json:"category"`
	Slug               string       `json:"slug,omitempty"`
	ReservationID      *int64       `json:"reservation_id,omitempty"` // nil for walk-up venues
	ExternalBookingURL string       `json:"external_booking_url,omitempty"`
	Discounts          []string     `json:"discounts"`
	HappyHour          string       `json:"happy_hour,omitempty"`
	Tips               string       `json:"tips,omitempty"`
	Coordinates        *Coordinates `json:"coordinates,omitempty"`
}

// Reservable reports whether the venue takes advance dining reservations.
func (v Venue) Reservable() bool {
	return v.ReservationID != nil
}

// Clone returns a deep copy so callers cannot reach into a catalog's
// backing storage through pointer or slice fields.
func (v Venue) Clone() Venue {
	out := v
	if v.ReservationID != nil {
		id := *v.ReservationID
		out.ReservationID = &id
	}
	if v.Coordinates != nil {
		c := *v.Coordinates
		out.Coordinates = &c
	}
	out.Discounts = slices.Clone(v.Discounts)
	if out.Discounts == nil {
		out.Discounts = []string{}
	}
	return out
}
