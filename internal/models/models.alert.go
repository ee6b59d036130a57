// FilePath: internal/models/models.alert.go
package models

import "time"

// AlertKind identifies the condition that produced an alert.
type AlertKind string

const (
	AlertKindBoundaryBreach     AlertKind = "boundary_breach"
	AlertKindStationaryBehavior AlertKind = "stationary_behavior"
	AlertKindExcessiveMovement  AlertKind = "excessive_movement"
)

// AlertSeverity grades an alert for downstream routing.
type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "low"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityHigh   AlertSeverity = "high"
)

// AlertRecord is the write-once structured record handed to the external
// alert sink. Delivery mechanics are the sink's responsibility.
type AlertRecord struct {
	ID        string        `json:"id" db:"id"`
	Kind      AlertKind     `json:"kind" db:"kind"`
	AnimalID  string        `json:"animal_id" db:"animal_id"`
	Severity  AlertSeverity `json:"severity" db:"severity"`
	Message   string        `json:"message" db:"message"`
	Location  LatLng        `json:"location"`
	Timestamp time.Time     `json:"timestamp" db:"timestamp"`
}
