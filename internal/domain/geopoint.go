package domain

import "math"

// Earth radius in miles, matching the constant used across the load board.
const earthRadiusMiles = 3959.0

// Immutable geographic point (latitude, longitude) with optional place names.
type GeoPoint struct {
	Lat   float64
	Lon   float64
	City  string
	State string
}

// HaversineMiles returns the great-circle distance between two points in miles.
// It is symmetric, zero only for identical coordinates, and a safe lower bound
// on road distance, which keeps radius pruning sound.
func HaversineMiles(a, b GeoPoint) float64 {
	dLat := Radians(b.Lat - a.Lat)
	dLon := Radians(b.Lon - a.Lon)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(Radians(a.Lat))*math.Cos(Radians(b.Lat))*math.Pow(math.Sin(dLon/2), 2)

	return earthRadiusMiles * 2 * math.Asin(math.Sqrt(h))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// ValidCoordinates reports whether the point lies within the WGS 84 range.
func (p GeoPoint) ValidCoordinates() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
