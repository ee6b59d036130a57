// FilePath: internal/cleanup/cleanup.go
package cleanup

import (
	"context"
	"fmt"

	"github.com/farmsense/herdhub/internal/geofence"
	"github.com/farmsense/herdhub/internal/history"
	"github.com/farmsense/herdhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates removal of everything attached to a retired
// animal: rolling history, membership state, stored alerts and the roster
// entry.
type CleanupService struct {
	history     *history.Store
	memberships geofence.MembershipStore
	animals     repository.AnimalRepository
	alerts      repository.AlertRepository
	events      *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	historyStore *history.Store,
	memberships geofence.MembershipStore,
	animals repository.AnimalRepository,
	alerts repository.AlertRepository,
) *CleanupService {
	return &CleanupService{
		history:     historyStore,
		memberships: memberships,
		animals:     animals,
		alerts:      alerts,
		events:      nuts.NewEventEmitter(),
	}
}

// RetireAnimal deletes an animal and all its associated state. Unlike
// disabling tracking, this removes the animal from the herd entirely.
func (s *CleanupService) RetireAnimal(ctx context.Context, animalID string) error {
	if s.alerts != nil {
		if err := s.alerts.DeleteByAnimalID(ctx, animalID); err != nil {
			return fmt.Errorf("failed to delete alerts: %w", err)
		}
		s.events.Emit("alerts.deleted", animalID)
	}

	if s.memberships != nil {
		if err := s.memberships.PurgeAnimal(ctx, animalID); err != nil {
			return fmt.Errorf("failed to purge membership state: %w", err)
		}
		s.events.Emit("memberships.deleted", animalID)
	}

	s.history.PurgeAnimal(animalID)
	s.events.Emit("history.deleted", animalID)

	if s.animals != nil {
		if err := s.animals.Delete(ctx, animalID); err != nil {
			return fmt.Errorf("failed to delete animal: %w", err)
		}
	}
	s.events.Emit("animal.deleted", animalID)

	nuts.L.Infof("[Cleanup] Animal %s and all associated data deleted", animalID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
