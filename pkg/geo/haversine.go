// Package geo provides great-circle distance math for geofence checks.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius of the spherical model.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance in meters between two
// coordinates using the haversine formula. The spherical model is accurate
// to well under a percent, which is plenty for radius checks at the
// tens-to-thousands-of-meters scale geofences operate on.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
