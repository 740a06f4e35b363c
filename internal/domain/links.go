package domain

// Link is one outbound URL shown next to a venue.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Links is the resolved set of outbound links for a venue.
// Menu is always present; the other two are nil when they cannot be built.
type Links struct {
	Menu        Link  `json:"menu"`
	Reservation *Link `json:"reservation,omitempty"`
	External    *Link `json:"external,omitempty"`
}

// VenueView pairs a venue with the links resolved for the current booking.
type VenueView struct {
	Venue Venue `json:"venue"`
	Links Links `json:"links"`
}
