// FilePath: internal/herdservice/herdservice.analytics.go
package herdservice

import (
	"context"

	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Summarize returns the movement summary for an animal over the trailing
// windowDays, or nil when the window holds no samples.
func (s *HerdService) Summarize(ctx context.Context, animalID string, windowDays int) *models.MovementSummary {
	return s.Analytics.Summarize(animalID, windowDays)
}

// GetHistory returns the ordered location samples for an animal with
// timestamp >= since (ms since epoch).
func (s *HerdService) GetHistory(ctx context.Context, animalID string, since int64) []models.LocationSample {
	return s.History.History(animalID, since)
}

// ListAlerts returns stored alerts matching the filters.
func (s *HerdService) ListAlerts(ctx context.Context, filters models.AlertFilters, offset, limit int) ([]*models.AlertRecord, error) {
	if s.alerts == nil {
		return []*models.AlertRecord{}, nil
	}
	return s.alerts.List(ctx, filters, offset, limit)
}

// ClassifyBehavior summarizes the animal's recent window and classifies it.
// Returns the emitted alert, or nil when the movement profile is normal.
// The alert, if any, is dispatched before returning.
func (s *HerdService) ClassifyBehavior(ctx context.Context, animalID string) *models.AlertRecord {
	summary := s.Analytics.Summarize(animalID, s.BehaviorWindowDays)
	alert := s.Behavior.Classify(summary)
	if alert == nil {
		return nil
	}
	s.dispatchAlerts(ctx, []models.AlertRecord{*alert})
	return alert
}

// RunBehaviorSweep classifies every tracked animal. The surrounding
// scheduler decides the cadence; the core itself is cadence-agnostic.
func (s *HerdService) RunBehaviorSweep(ctx context.Context) int {
	emitted := 0
	for _, animalID := range s.History.TrackedAnimalIDs() {
		if alert := s.ClassifyBehavior(ctx, animalID); alert != nil {
			emitted++
		}
	}
	if emitted > 0 {
		nuts.L.Infof("[HerdService] Behavior sweep emitted %d alert(s)", emitted)
	}
	return emitted
}
