// FilePath: internal/geofence/registry.go
package geofence

import (
	"sync"
	"time"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/geo"
	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Registry stores geofence definitions and answers containment queries.
// Reads are safe for unlimited concurrency; registration and deactivation
// are rare and take the write lock.
type Registry struct {
	mu     sync.RWMutex
	fences map[string]*models.Geofence
}

// NewRegistry creates an empty geofence registry.
func NewRegistry() *Registry {
	return &Registry{
		fences: make(map[string]*models.Geofence),
	}
}

// Register validates and stores a geofence. A missing ID is filled in.
// Circular fences need a positive radius, polygonal fences at least three
// vertices.
func (r *Registry) Register(fence *models.Geofence) error {
	if fence == nil {
		return errors.NewValidationError("geofence is required", nil)
	}

	switch fence.Kind {
	case models.GeofenceKindCircular:
		if fence.Circle == nil || fence.Circle.RadiusMeters <= 0 {
			return errors.NewValidationError("circular geofence requires a positive radius", nil)
		}
	case models.GeofenceKindPolygon:
		if fence.Polygon == nil || len(fence.Polygon.Vertices) < 3 {
			return errors.NewValidationError("polygon geofence requires at least 3 vertices", nil)
		}
	default:
		return errors.NewValidationError("unknown geofence kind: "+string(fence.Kind), nil)
	}

	if fence.ID == "" {
		fence.ID = nuts.NID("gf", 12)
	}
	if fence.CreatedAt.IsZero() {
		fence.CreatedAt = time.Now()
	}
	fence.Active = true

	r.mu.Lock()
	r.fences[fence.ID] = fence
	r.mu.Unlock()

	nuts.L.Infof("[GeofenceRegistry] Registered %s geofence %s (%s)", fence.Kind, fence.Name, fence.ID)
	return nil
}

// Get returns a geofence by ID.
func (r *Registry) Get(id string) (*models.Geofence, error) {
	r.mu.RLock()
	fence, ok := r.fences[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("geofence not found: "+id, nil)
	}
	return fence, nil
}

// Contains reports whether point lies inside the named geofence. The kind
// dispatch lives here and nowhere else; the geometry set is closed.
func (r *Registry) Contains(point models.LatLng, geofenceID string) (bool, error) {
	fence, err := r.Get(geofenceID)
	if err != nil {
		return false, err
	}

	switch fence.Kind {
	case models.GeofenceKindCircular:
		return geo.PointInCircle(point, fence.Circle.Center, fence.Circle.RadiusMeters), nil
	case models.GeofenceKindPolygon:
		return geo.PointInPolygon(point, fence.Polygon.Vertices), nil
	default:
		return false, errors.NewInternalError("unknown geofence kind: "+string(fence.Kind), nil)
	}
}

// List returns all active geofences. No ordering guarantee.
func (r *Registry) List() []*models.Geofence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fences := make([]*models.Geofence, 0, len(r.fences))
	for _, fence := range r.fences {
		if fence.Active {
			fences = append(fences, fence)
		}
	}
	return fences
}

// Deactivate removes a geofence from evaluation without deleting its record.
func (r *Registry) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fence, ok := r.fences[id]
	if !ok {
		return errors.NewNotFoundError("geofence not found: "+id, nil)
	}
	fence.Active = false

	nuts.L.Infof("[GeofenceRegistry] Deactivated geofence %s", id)
	return nil
}
