// FilePath: internal/geofence/detector.go
package geofence

import (
	"context"
	"fmt"

	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// TransitionDetector compares each new containment result against the last
// known state per (animal, geofence) pair and emits alerts for observed
// exits. Entries are expected movement and update state silently.
type TransitionDetector struct {
	registry    *Registry
	memberships MembershipStore
}

// NewTransitionDetector creates a detector over the given registry and
// membership store.
func NewTransitionDetector(registry *Registry, memberships MembershipStore) *TransitionDetector {
	return &TransitionDetector{
		registry:    registry,
		memberships: memberships,
	}
}

// Evaluate checks location against every active geofence and returns a
// BoundaryBreach alert for each true→false transition. Membership state is
// always updated, so a freshly registered geofence never alerts on an animal
// that was already outside it: alerts represent observed crossings, not
// absolute state.
func (d *TransitionDetector) Evaluate(ctx context.Context, animalID string, location models.LocationSample) ([]models.AlertRecord, error) {
	var alerts []models.AlertRecord
	point := location.Point()

	for _, fence := range d.registry.List() {
		inside, err := d.registry.Contains(point, fence.ID)
		if err != nil {
			return alerts, err
		}

		wasInside, known, err := d.memberships.Get(ctx, animalID, fence.ID)
		if err != nil {
			return alerts, err
		}

		if known && wasInside && !inside {
			alerts = append(alerts, models.AlertRecord{
				ID:       nuts.NID("alrt", 12),
				Kind:     models.AlertKindBoundaryBreach,
				AnimalID: animalID,
				Severity: models.AlertSeverityHigh,
				Message: fmt.Sprintf("animal %s left geofence %q at (%.5f, %.5f)",
					animalID, fence.Name, location.Latitude, location.Longitude),
				Location:  point,
				Timestamp: location.Time(),
			})
			nuts.L.Infof("[TransitionDetector] Animal %s exited geofence %s", animalID, fence.Name)
		} else if known && !wasInside && inside {
			nuts.L.Debugf("[TransitionDetector] Animal %s entered geofence %s", animalID, fence.Name)
		}

		if err := d.memberships.Set(ctx, animalID, fence.ID, inside); err != nil {
			return alerts, err
		}
	}

	return alerts, nil
}
