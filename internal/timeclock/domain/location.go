package domain

import "time"

// Location is a geofenced site staff may clock in or out at. Locations are
// immutable reference data; the core only ever reads them.
type Location struct {
	ID           string
	Name         string
	Lat          float64
	Lng          float64
	RadiusMeters float64
	CreatedAt    time.Time
}
