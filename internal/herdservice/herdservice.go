// Package herdservice wires the tracking core (history, geofencing,
// analytics, behavior) to the persistence repositories and alert sinks, and
// enforces the per-animal single-writer discipline for ingest.
package herdservice

import (
	"sync"

	"github.com/farmsense/herdhub/internal/analytics"
	"github.com/farmsense/herdhub/internal/behavior"
	"github.com/farmsense/herdhub/internal/cleanup"
	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/geofence"
	"github.com/farmsense/herdhub/internal/history"
	"github.com/farmsense/herdhub/internal/repository"
)

// HerdService contains the tracking core, repositories and service-wide
// dependencies
type HerdService struct {
	History   *history.Store
	Registry  *geofence.Registry
	Detector  *geofence.TransitionDetector
	Analytics *analytics.Engine
	Behavior  *behavior.Detector
	Cleanup   *cleanup.CleanupService

	BehaviorWindowDays int

	animals     repository.AnimalRepository
	geofences   repository.GeofenceRepository
	alerts      repository.AlertRepository
	memberships geofence.MembershipStore
	sinks       []repository.AlertSink

	animalLocks sync.Map // animalID -> *sync.Mutex
}

// Deps bundles the collaborators a HerdService is built from. The
// repositories and sinks may be nil/empty for a purely in-memory core.
type Deps struct {
	History            *history.Store
	Registry           *geofence.Registry
	Memberships        geofence.MembershipStore
	Analytics          *analytics.Engine
	Behavior           *behavior.Detector
	BehaviorWindowDays int

	Animals   repository.AnimalRepository
	Geofences repository.GeofenceRepository
	Alerts    repository.AlertRepository
	Sinks     []repository.AlertSink
}

// New creates a new HerdService instance
func New(deps Deps) *HerdService {
	svc := &HerdService{
		History:            deps.History,
		Registry:           deps.Registry,
		Detector:           geofence.NewTransitionDetector(deps.Registry, deps.Memberships),
		Analytics:          deps.Analytics,
		Behavior:           deps.Behavior,
		BehaviorWindowDays: deps.BehaviorWindowDays,
		animals:            deps.Animals,
		geofences:          deps.Geofences,
		alerts:             deps.Alerts,
		memberships:        deps.Memberships,
		sinks:              deps.Sinks,
	}
	svc.Cleanup = cleanup.New(deps.History, deps.Memberships, deps.Animals, deps.Alerts)
	return svc
}

// Validate checks if all required core components are initialized
func (s *HerdService) Validate() error {
	if s.History == nil {
		return ErrMissingComponent("history")
	}
	if s.Registry == nil {
		return ErrMissingComponent("registry")
	}
	if s.memberships == nil {
		return ErrMissingComponent("memberships")
	}
	if s.Analytics == nil {
		return ErrMissingComponent("analytics")
	}
	if s.Behavior == nil {
		return ErrMissingComponent("behavior")
	}
	return nil
}

func ErrMissingComponent(name string) error {
	return errors.NewInternalError("missing component: "+name, nil)
}

// lockAnimal serializes state updates for one animal. Reports for different
// animals proceed in parallel; the animal ID is the natural sharding key.
func (s *HerdService) lockAnimal(animalID string) *sync.Mutex {
	m, _ := s.animalLocks.LoadOrStore(animalID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu
}
