package normalize

import "github.com/pkordes/dining-scout/internal/domain"

// ToRow maps a venue back onto the canonical input columns. Feeding the
// result to Row yields the same venue. Discounts stay a []string, so a
// store must keep list items intact rather than re-joining them as text.
func ToRow(v domain.Venue) domain.RawRow {
	row := domain.RawRow{
		ColName:      v.Name,
		ColLocation:  v.Location,
		ColCategory:  v.Category,
		ColSlug:      v.Slug,
		ColID:        nil,
		ColExternal:  v.ExternalBookingURL,
		ColDiscounts: append([]string{}, v.Discounts...),
		ColHappyHour: v.HappyHour,
		ColTips:      v.Tips,
		ColLat:       nil,
		ColLon:       nil,
	}
	if v.ReservationID != nil {
		row[ColID] = *v.ReservationID
	}
	if v.Coordinates != nil {
		row[ColLat] = v.Coordinates.Lat
		row[ColLon] = v.Coordinates.Lon
	}
	return row
}

// ToRows maps venues to rows, preserving order.
func ToRows(venues []domain.Venue) []domain.RawRow {
	rows := make([]domain.RawRow, len(venues))
	for i, v := range venues {
		rows[i] = ToRow(v)
	}
	return rows
}
