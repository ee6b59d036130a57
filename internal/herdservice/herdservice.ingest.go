// FilePath: internal/herdservice/herdservice.ingest.go
package herdservice

import (
	"context"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// IngestReport runs the full pipeline for one location report: append and
// trim the history, evaluate boundary transitions, dispatch any alerts.
// Appending and transition evaluation happen under the animal's lock so
// concurrent reports for the same animal are strictly serialized.
//
// The returned alerts are the ones this report produced; they have already
// been dispatched to the configured sinks.
func (s *HerdService) IngestReport(ctx context.Context, report models.LocationReport) ([]models.AlertRecord, error) {
	if report.AnimalID == "" {
		return nil, errors.NewValidationError("animal_id is required", nil)
	}

	if track, err := s.History.Track(report.AnimalID); err == nil && !track.TrackingEnabled {
		return nil, errors.NewValidationError("tracking is disabled for animal "+report.AnimalID, nil)
	}

	mu := s.lockAnimal(report.AnimalID)
	sample, err := s.History.RecordSample(report.AnimalID, report)
	if err != nil {
		mu.Unlock()
		return nil, err
	}

	alerts, err := s.Detector.Evaluate(ctx, report.AnimalID, sample)
	mu.Unlock()
	if err != nil {
		// Membership evaluation failures leave the stored sample intact;
		// the caller sees the error, the history stays consistent.
		return nil, err
	}

	if s.animals != nil {
		if err := s.animals.UpdateLastSeen(ctx, report.AnimalID, sample.Time()); err != nil && !errors.IsNotFound(err) {
			nuts.L.Warnf("[HerdService] Failed to update last seen for %s: %v", report.AnimalID, err)
		}
	}

	s.dispatchAlerts(ctx, alerts)

	return alerts, nil
}

// dispatchAlerts persists each alert and hands it to every sink. Sink
// failures are logged and do not fail the ingest: delivery guarantees belong
// to the sink, not the tracking core.
func (s *HerdService) dispatchAlerts(ctx context.Context, alerts []models.AlertRecord) {
	for _, alert := range alerts {
		if s.alerts != nil {
			if err := s.alerts.Create(ctx, &alert); err != nil {
				nuts.L.Errorf("[HerdService] Failed to store alert %s: %v", alert.ID, err)
			}
		}
		for _, sink := range s.sinks {
			if err := sink.Deliver(ctx, alert); err != nil {
				nuts.L.Errorf("[HerdService] Failed to deliver alert %s: %v", alert.ID, err)
			}
		}
	}
}
