// FilePath: internal/herdservice/herdservice.animals.go
package herdservice

import (
	"context"
	"time"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RegisterAnimal begins tracking for an animal and persists its roster
// entry.
func (s *HerdService) RegisterAnimal(ctx context.Context, track *models.AnimalTrack) error {
	if track.AnimalID == "" {
		return errors.NewValidationError("animal_id is required", nil)
	}

	now := time.Now()
	track.TrackingEnabled = true
	if track.CreatedAt.IsZero() {
		track.CreatedAt = now
	}
	track.UpdatedAt = now

	s.History.EnableTracking(*track)

	if s.animals != nil {
		if err := s.animals.Create(ctx, track); err != nil {
			return err
		}
	}

	nuts.L.Infof("[HerdService] Registered animal %s for tracking", track.AnimalID)
	return nil
}

// GetAnimal returns the current tracking state for an animal.
func (s *HerdService) GetAnimal(ctx context.Context, animalID string) (models.AnimalTrack, error) {
	return s.History.Track(animalID)
}

// ListAnimals returns the persisted herd roster.
func (s *HerdService) ListAnimals(ctx context.Context, offset, limit int) ([]*models.AnimalTrack, error) {
	if s.animals == nil {
		return []*models.AnimalTrack{}, nil
	}
	return s.animals.List(ctx, offset, limit)
}

// SetTrackingEnabled enables or disables tracking for an animal. Disabled
// tracks keep their history; they are never structurally deleted.
func (s *HerdService) SetTrackingEnabled(ctx context.Context, animalID string, enabled bool) error {
	if enabled {
		s.History.EnableTracking(models.AnimalTrack{AnimalID: animalID})
	} else if err := s.History.DisableTracking(animalID); err != nil {
		return err
	}

	if s.animals != nil {
		if err := s.animals.SetTrackingEnabled(ctx, animalID, enabled); err != nil && !errors.IsNotFound(err) {
			return err
		}
	}

	nuts.L.Infof("[HerdService] Tracking for animal %s set to %t", animalID, enabled)
	return nil
}

// RegisterGeofence validates, registers and persists a geofence.
func (s *HerdService) RegisterGeofence(ctx context.Context, fence *models.Geofence) error {
	if err := s.Registry.Register(fence); err != nil {
		return err
	}
	if s.geofences != nil {
		if err := s.geofences.Create(ctx, fence); err != nil {
			return err
		}
	}
	return nil
}

// DeactivateGeofence removes a geofence from evaluation.
func (s *HerdService) DeactivateGeofence(ctx context.Context, id string) error {
	if err := s.Registry.Deactivate(id); err != nil {
		return err
	}
	if s.geofences != nil {
		if err := s.geofences.Deactivate(ctx, id); err != nil && !errors.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// LoadGeofences rehydrates the in-memory registry from the repository.
// Called once at startup.
func (s *HerdService) LoadGeofences(ctx context.Context) error {
	if s.geofences == nil {
		return nil
	}
	fences, err := s.geofences.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, fence := range fences {
		if err := s.Registry.Register(fence); err != nil {
			nuts.L.Warnf("[HerdService] Skipping stored geofence %s: %v", fence.ID, err)
		}
	}
	nuts.L.Infof("[HerdService] Loaded %d geofences from store", len(fences))
	return nil
}
