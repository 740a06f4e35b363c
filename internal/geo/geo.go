// Package geo extracts the mappable subset of a venue list.
package geo

import "github.com/pkordes/dining-scout/internal/domain"

// Project returns the venues that have coordinates, in input order, and the
// arithmetic mean of their coordinates as the suggested map centre.
// The boolean is false when no venue has coordinates; the projection then
// has no points and a nil centre.
func Project(venues []domain.Venue) (domain.Projection, bool) {
	p := domain.Projection{Points: make([]domain.MapPoint, 0, len(venues))}

	var sumLat, sumLon float64
	for _, v := range venues {
		if v.Coordinates == nil {
			continue
		}
		p.Points = append(p.Points, domain.MapPoint{
			Name:        v.Name,
			Coordinates: *v.Coordinates,
			Reservable:  v.Reservable(),
		})
		sumLat += v.Coordinates.Lat
		sumLon += v.Coordinates.Lon
	}
	if len(p.Points) == 0 {
		return p, false
	}

	n := float64(len(p.Points))
	p.Center = &domain.Coordinates{Lat: sumLat / n, Lon: sumLon / n}
	return p, true
}
