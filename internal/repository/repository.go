// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/farmsense/herdhub/internal/database"
	"github.com/farmsense/herdhub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// AnimalRepository persists animal metadata. This is the "persistent record
// store" collaborator: the in-memory tracking core is authoritative for the
// rolling history, the repository for the herd roster.
type AnimalRepository interface {
	database.Repository
	Create(ctx context.Context, track *models.AnimalTrack) error
	Get(ctx context.Context, animalID string) (*models.AnimalTrack, error)
	List(ctx context.Context, offset, limit int) ([]*models.AnimalTrack, error)
	SetTrackingEnabled(ctx context.Context, animalID string, enabled bool) error
	UpdateLastSeen(ctx context.Context, animalID string, lastUpdate time.Time) error
	Delete(ctx context.Context, animalID string) error
}

// GeofenceRepository persists geofence definitions so the in-memory registry
// can be rehydrated on startup.
type GeofenceRepository interface {
	database.Repository
	Create(ctx context.Context, fence *models.Geofence) error
	Get(ctx context.Context, id string) (*models.Geofence, error)
	ListActive(ctx context.Context) ([]*models.Geofence, error)
	Deactivate(ctx context.Context, id string) error
}

// AlertRepository stores emitted alert records for the query surface.
type AlertRepository interface {
	database.Repository
	Create(ctx context.Context, alert *models.AlertRecord) error
	List(ctx context.Context, filters models.AlertFilters, offset, limit int) ([]*models.AlertRecord, error)
	DeleteByAnimalID(ctx context.Context, animalID string) error
}

// AlertSink receives emitted alerts. Delivery and retry guarantees are the
// sink's responsibility, not the tracking core's.
type AlertSink interface {
	Deliver(ctx context.Context, alert models.AlertRecord) error
}
