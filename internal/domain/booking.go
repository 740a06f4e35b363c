package domain

import (
	"fmt"
	"time"
)

// Party size bounds accepted by the reservation system.
const (
	MinPartySize = 1
	MaxPartySize = 20
)

// DateLayout is the calendar date format embedded in reservation links.
const DateLayout = "2006-01-02"

// Booking holds the session-level parameters applied to every reservation link.
type Booking struct {
	Date      time.Time
	PartySize int
}

// NewBooking validates date and partySize and returns a Booking.
// Returns ErrValidation if the date is zero or the party size is out of range.
func NewBooking(date time.Time, partySize int) (Booking, error) {
	b := Booking{Date: date, PartySize: partySize}
	if date.IsZero() {
		return Booking{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !b.Valid() {
		return Booking{}, fmt.Errorf("%w: party_size must be between %d and %d", ErrValidation, MinPartySize, MaxPartySize)
	}
	return b, nil
}

// Valid reports whether the booking can be embedded in a link.
func (b Booking) Valid() bool {
	return !b.Date.IsZero() && b.PartySize >= MinPartySize && b.PartySize <= MaxPartySize
}

// DateString formats the booking date as YYYY-MM-DD.
func (b Booking) DateString() string {
	return b.Date.Format(DateLayout)
}
