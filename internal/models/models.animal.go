// FilePath: internal/models/models.animal.go
package models

import "time"

// LocationSample represents a single validated location measurement for an
// animal. Samples are immutable once stored; DerivedSpeed is computed against
// the previous sample at ingest time.
type LocationSample struct {
	Latitude     float64 `json:"latitude" db:"latitude"`
	Longitude    float64 `json:"longitude" db:"longitude"`
	Altitude     float64 `json:"altitude" db:"altitude"`
	Accuracy     float64 `json:"accuracy" db:"accuracy"`
	Timestamp    int64   `json:"timestamp" db:"timestamp"` // ms since epoch
	DerivedSpeed float64 `json:"derived_speed" db:"derived_speed"`
}

// Point returns the sample's coordinates as a LatLng.
func (s LocationSample) Point() LatLng {
	return LatLng{Lat: s.Latitude, Lng: s.Longitude}
}

// Time converts the sample's epoch-millisecond timestamp to time.Time.
func (s LocationSample) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// AnimalTrack holds the tracking state for one animal. Tracks are never
// structurally deleted, only disabled.
type AnimalTrack struct {
	AnimalID        string          `json:"animal_id" db:"animal_id"`
	Name            string          `json:"name" db:"name"`
	Species         string          `json:"species" db:"species"`
	CurrentLocation *LocationSample `json:"current_location,omitempty"`
	TrackingEnabled bool            `json:"tracking_enabled" db:"tracking_enabled"`
	LastUpdate      time.Time       `json:"last_update" db:"last_update"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// LocationReport is the raw ingest shape delivered by the telemetry
// collaborator. Altitude and accuracy are optional on the wire.
type LocationReport struct {
	AnimalID  string  `json:"animal_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude,omitempty"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	Timestamp int64   `json:"timestamp"` // ms since epoch
}
