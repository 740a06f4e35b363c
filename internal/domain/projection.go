package domain

// MapPoint is a venue placed on the map.
// Reservable distinguishes reservation venues from walk-up ones for marker styling.
type MapPoint struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Reservable  bool        `json:"reservable"`
}

// Projection is the mappable subset of a filtered venue list.
// Center is nil when Points is empty; it is never a (0,0) placeholder.
type Projection struct {
	Points []MapPoint    `json:"points"`
	Center *Coordinates `json:"center"`
}
