package geo

import "math"

// EarthMeanRadiusKm is the volumetric mean radius of the Earth used by the
// spherical formula. The 6378.137 km equatorial radius is deliberately not used.
const EarthMeanRadiusKm = 6371.0

// SphericalKm returns the haversine great-circle distance between a and b in kilometers.
// It is accurate to roughly 0.5% and cheap enough for per-candidate filtering.
func SphericalKm(a, b GeoPoint) float64 {
	latA := toRadians(a.lat)
	latB := toRadians(b.lat)
	dLat := latB - latA
	dLng := toRadians(b.lng - a.lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng

	// Rounding can push h marginally outside [0,1], where asin returns NaN.
	h = math.Max(0, math.Min(1, h))

	return 2 * EarthMeanRadiusKm * math.Asin(math.Sqrt(h))
}
