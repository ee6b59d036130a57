// Package behavior classifies an animal's recent movement profile into
// normal, stationary or excessive and produces alert candidates.
package behavior

import (
	"fmt"
	"time"

	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// Thresholds are the tunable classification limits. They come from
// configuration so herds and species can be tuned without code changes.
type Thresholds struct {
	StationarySpeedMps      float64
	ExcessiveSpeedMps       float64
	MinSamplesForStationary int
}

// Detector classifies movement summaries.
type Detector struct {
	thresholds Thresholds
}

// NewDetector creates a behavior detector with the given thresholds.
func NewDetector(thresholds Thresholds) *Detector {
	return &Detector{thresholds: thresholds}
}

// Classify inspects a short-window movement summary and returns an alert
// candidate, or nil when the profile looks normal. A nil summary (no data in
// the window) classifies as normal.
func (d *Detector) Classify(summary *models.MovementSummary) *models.AlertRecord {
	if summary == nil {
		return nil
	}

	switch {
	case summary.AvgSpeedMps < d.thresholds.StationarySpeedMps &&
		summary.SampleCount > d.thresholds.MinSamplesForStationary:
		nuts.L.Infof("[BehaviorDetector] Animal %s flagged stationary (avg %.4f m/s over %d samples)",
			summary.AnimalID, summary.AvgSpeedMps, summary.SampleCount)
		return d.alert(summary, models.AlertKindStationaryBehavior,
			fmt.Sprintf("animal %s has barely moved over the last %d day(s) (avg speed %.4f m/s)",
				summary.AnimalID, summary.WindowDays, summary.AvgSpeedMps))

	case summary.AvgSpeedMps > d.thresholds.ExcessiveSpeedMps:
		nuts.L.Infof("[BehaviorDetector] Animal %s flagged for excessive movement (avg %.2f m/s)",
			summary.AnimalID, summary.AvgSpeedMps)
		return d.alert(summary, models.AlertKindExcessiveMovement,
			fmt.Sprintf("animal %s is moving unusually fast (avg speed %.2f m/s over %d day(s))",
				summary.AnimalID, summary.AvgSpeedMps, summary.WindowDays))
	}

	return nil
}

func (d *Detector) alert(summary *models.MovementSummary, kind models.AlertKind, message string) *models.AlertRecord {
	box := summary.BoundingBox
	return &models.AlertRecord{
		ID:       nuts.NID("alrt", 12),
		Kind:     kind,
		AnimalID: summary.AnimalID,
		Severity: models.AlertSeverityMedium,
		Message:  message,
		Location: models.LatLng{
			Lat: (box.MinLat + box.MaxLat) / 2,
			Lng: (box.MinLng + box.MaxLng) / 2,
		},
		Timestamp: timeNow(),
	}
}
