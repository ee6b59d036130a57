// FilePath: internal/models/models.movement.go
package models

// BoundingBox is the min/max latitude and longitude over a set of samples.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Hotspot is a grid cell with a high sample density. Lat/Lng are the cell's
// lower-left corner in degrees.
type Hotspot struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	VisitCount int     `json:"visit_count"`
}

// MovementSummary aggregates one animal's movement over a time window.
// Derived on demand, not persisted long-term.
type MovementSummary struct {
	AnimalID            string      `json:"animal_id"`
	WindowDays          int         `json:"window_days"`
	BoundingBox         BoundingBox `json:"bounding_box"`
	AreaCoveredSqMeters float64     `json:"area_covered_sq_meters"`
	TotalDistanceMeters float64     `json:"total_distance_meters"`
	AvgSpeedMps         float64     `json:"avg_speed_mps"`
	Hotspots            []Hotspot   `json:"hotspots"`
	SampleCount         int         `json:"sample_count"`
}
