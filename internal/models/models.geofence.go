// FilePath: internal/models/models.geofence.go
package models

import "time"

// GeofenceKind discriminates the closed set of supported geometries.
type GeofenceKind string

const (
	GeofenceKindCircular GeofenceKind = "circular"
	GeofenceKindPolygon  GeofenceKind = "polygon"
)

// LatLng is a geographic coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// CircleGeometry describes a circular geofence.
type CircleGeometry struct {
	Center       LatLng  `json:"center"`
	RadiusMeters float64 `json:"radius_meters"`
}

// PolygonGeometry describes a polygonal geofence. The vertex ring is
// implicitly closed: the last vertex connects back to the first.
type PolygonGeometry struct {
	Vertices []LatLng `json:"vertices"`
}

// Geofence is a named geographic boundary. Immutable after creation except
// for deactivation.
type Geofence struct {
	ID        string           `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Kind      GeofenceKind     `json:"kind" db:"kind"`
	Circle    *CircleGeometry  `json:"circle,omitempty"`
	Polygon   *PolygonGeometry `json:"polygon,omitempty"`
	Active    bool             `json:"active" db:"active"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// GeofenceMembership is the last known containment state for one
// (animal, geofence) pair. Pure transition-detection state, not history.
type GeofenceMembership struct {
	AnimalID    string    `json:"animal_id" db:"animal_id"`
	GeofenceID  string    `json:"geofence_id" db:"geofence_id"`
	Inside      bool      `json:"inside" db:"inside"`
	EvaluatedAt time.Time `json:"evaluated_at" db:"evaluated_at"`
}
