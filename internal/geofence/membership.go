// FilePath: internal/geofence/membership.go
package geofence

import (
	"context"
	"sync"
)

// MembershipStore keeps the last known containment state per
// (animal, geofence) pair. Entries are created lazily on first evaluation
// and are pure transition-detection state, not history.
type MembershipStore interface {
	// Get returns the stored containment state. known is false when the
	// pair has never been evaluated.
	Get(ctx context.Context, animalID, geofenceID string) (inside bool, known bool, err error)
	// Set stores the containment state for the pair.
	Set(ctx context.Context, animalID, geofenceID string, inside bool) error
	// PurgeAnimal drops all membership state for an animal.
	PurgeAnimal(ctx context.Context, animalID string) error
}

// memoryMembershipStore is the default in-process MembershipStore.
type memoryMembershipStore struct {
	mu     sync.RWMutex
	states map[string]map[string]bool // animalID -> geofenceID -> inside
}

// NewMemoryMembershipStore creates an in-memory membership store.
func NewMemoryMembershipStore() MembershipStore {
	return &memoryMembershipStore{
		states: make(map[string]map[string]bool),
	}
}

func (m *memoryMembershipStore) Get(_ context.Context, animalID, geofenceID string) (bool, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byFence, ok := m.states[animalID]
	if !ok {
		return false, false, nil
	}
	inside, known := byFence[geofenceID]
	return inside, known, nil
}

func (m *memoryMembershipStore) Set(_ context.Context, animalID, geofenceID string, inside bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byFence, ok := m.states[animalID]
	if !ok {
		byFence = make(map[string]bool)
		m.states[animalID] = byFence
	}
	byFence[geofenceID] = inside
	return nil
}

func (m *memoryMembershipStore) PurgeAnimal(_ context.Context, animalID string) error {
	m.mu.Lock()
	delete(m.states, animalID)
	m.mu.Unlock()
	return nil
}
