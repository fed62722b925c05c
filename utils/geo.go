package utils

import "math"

const (
	earthRadiusMiles = 3963.2
	milesPerKm       = 0.621371192
)

// Haversine returns the great-circle distance in miles between two
// latitude/longitude points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// DistanceInUnit returns the haversine distance between two points in the
// requested unit ("mi" or "km"; anything else defaults to miles).
func DistanceInUnit(lat1, lng1, lat2, lng2 float64, unit string) float64 {
	miles := Haversine(lat1, lng1, lat2, lng2)
	if unit == "km" {
		return miles / milesPerKm
	}
	return miles
}
