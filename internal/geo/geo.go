// Package geo provides the pure geodesic primitives used by geofencing and
// movement analytics: great-circle distance, derived speed, and containment
// tests. Everything here is stateless.
package geo

import (
	"math"

	"github.com/farmsense/herdhub/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used for Haversine distances.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle (Haversine) distance between two
// points. Symmetric in its arguments; identical points return exactly 0.
func DistanceMeters(a, b models.LatLng) float64 {
	if a == b {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	// Clamp against floating-point drift before the inverse trig step.
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// SpeedMps computes the speed implied by moving from prev to curr, in
// meters per second. The elapsed time is floored at one second so that
// bursts of near-simultaneous reports do not produce absurd speeds.
// Returns 0 when prev is nil.
func SpeedMps(prev, curr *models.LocationSample) float64 {
	if prev == nil || curr == nil {
		return 0
	}
	elapsed := float64(curr.Timestamp-prev.Timestamp) / 1000
	if elapsed < 1 {
		elapsed = 1
	}
	return DistanceMeters(prev.Point(), curr.Point()) / elapsed
}

// PointInCircle reports whether point lies within radiusMeters of center.
// Points exactly on the radius are contained.
func PointInCircle(point, center models.LatLng, radiusMeters float64) bool {
	return DistanceMeters(point, center) <= radiusMeters
}

// PointInPolygon reports whether point lies inside the polygon described by
// vertices, using the even-odd ray-casting rule. The ring is implicitly
// closed. A point exactly on an edge may be reported either way; callers
// must not rely on boundary-exact results.
func PointInPolygon(point models.LatLng, vertices []models.LatLng) bool {
	if len(vertices) < 3 {
		return false
	}

	inside := false
	j := len(vertices) - 1
	for i := 0; i < len(vertices); i++ {
		vi, vj := vertices[i], vertices[j]
		if (vi.Lng > point.Lng) != (vj.Lng > point.Lng) {
			crossLat := (vj.Lat-vi.Lat)*(point.Lng-vi.Lng)/(vj.Lng-vi.Lng) + vi.Lat
			if point.Lat < crossLat {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
