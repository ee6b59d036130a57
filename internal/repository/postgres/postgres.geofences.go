// FilePath: internal/repository/postgres/postgres.geofences.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/farmsense/herdhub/internal/database"
	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
)

type GeofenceRepo struct {
	PostgresBaseRepo
}

func NewGeofenceRepository(db database.DB) *GeofenceRepo {
	repo := &PostgresBaseRepo{db: db}
	return &GeofenceRepo{PostgresBaseRepo: *repo}
}

// geofenceRow flattens the tagged geometry variant into a JSONB column.
type geofenceRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Kind      string    `db:"kind"`
	Geometry  []byte    `db:"geometry"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

func toRow(fence *models.Geofence) (*geofenceRow, error) {
	var geometry any
	switch fence.Kind {
	case models.GeofenceKindCircular:
		geometry = fence.Circle
	case models.GeofenceKindPolygon:
		geometry = fence.Polygon
	}
	raw, err := json.Marshal(geometry)
	if err != nil {
		return nil, err
	}
	return &geofenceRow{
		ID:        fence.ID,
		Name:      fence.Name,
		Kind:      string(fence.Kind),
		Geometry:  raw,
		Active:    fence.Active,
		CreatedAt: fence.CreatedAt,
	}, nil
}

func fromRow(row *geofenceRow) (*models.Geofence, error) {
	fence := &models.Geofence{
		ID:        row.ID,
		Name:      row.Name,
		Kind:      models.GeofenceKind(row.Kind),
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}
	switch fence.Kind {
	case models.GeofenceKindCircular:
		fence.Circle = &models.CircleGeometry{}
		if err := json.Unmarshal(row.Geometry, fence.Circle); err != nil {
			return nil, err
		}
	case models.GeofenceKindPolygon:
		fence.Polygon = &models.PolygonGeometry{}
		if err := json.Unmarshal(row.Geometry, fence.Polygon); err != nil {
			return nil, err
		}
	}
	return fence, nil
}

func (r *GeofenceRepo) Create(ctx context.Context, fence *models.Geofence) error {
	row, err := toRow(fence)
	if err != nil {
		return errors.NewInternalError("failed to encode geofence geometry", err)
	}

	query := `
		INSERT INTO geofences (id, name, kind, geometry, active, created_at)
		VALUES (:id, :name, :kind, :geometry, :active, :created_at)`

	_, err = r.db.GetDB().NamedExecContext(ctx, query, row)
	if err != nil {
		return errors.NewDatabaseError("failed to create geofence", err)
	}
	return nil
}

func (r *GeofenceRepo) Get(ctx context.Context, id string) (*models.Geofence, error) {
	row := &geofenceRow{}
	query := `SELECT id, name, kind, geometry, active, created_at FROM geofences WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("geofence not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get geofence", err)
	}
	return fromRow(row)
}

func (r *GeofenceRepo) ListActive(ctx context.Context) ([]*models.Geofence, error) {
	rows := []*geofenceRow{}
	query := `SELECT id, name, kind, geometry, active, created_at FROM geofences WHERE active = TRUE`

	err := r.db.GetDB().SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list geofences", err)
	}

	fences := make([]*models.Geofence, 0, len(rows))
	for _, row := range rows {
		fence, err := fromRow(row)
		if err != nil {
			return nil, errors.NewInternalError("failed to decode geofence geometry", err)
		}
		fences = append(fences, fence)
	}
	return fences, nil
}

func (r *GeofenceRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE geofences SET active = FALSE WHERE id = $1`
	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to deactivate geofence", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("geofence not found", nil)
	}
	return nil
}
