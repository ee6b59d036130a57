// FilePath: internal/repository/postgres/postgres.animals.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/farmsense/herdhub/internal/database"
	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
)

type AnimalRepo struct {
	PostgresBaseRepo
}

func NewAnimalRepository(db database.DB) *AnimalRepo {
	repo := &PostgresBaseRepo{db: db}
	return &AnimalRepo{PostgresBaseRepo: *repo}
}

func (r *AnimalRepo) Create(ctx context.Context, track *models.AnimalTrack) error {
	query := `
		INSERT INTO animals (
			animal_id, name, species, tracking_enabled,
			last_update, created_at, updated_at
		) VALUES (
			:animal_id, :name, :species, :tracking_enabled,
			:last_update, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, track)
	if err != nil {
		return errors.NewDatabaseError("failed to create animal", err)
	}
	return nil
}

func (r *AnimalRepo) Get(ctx context.Context, animalID string) (*models.AnimalTrack, error) {
	track := &models.AnimalTrack{}
	query := `SELECT animal_id, name, species, tracking_enabled, last_update, created_at, updated_at
		FROM animals WHERE animal_id = $1`

	err := r.db.GetDB().GetContext(ctx, track, query, animalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("animal not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get animal", err)
	}
	return track, nil
}

func (r *AnimalRepo) List(ctx context.Context, offset, limit int) ([]*models.AnimalTrack, error) {
	tracks := []*models.AnimalTrack{}
	query := `SELECT animal_id, name, species, tracking_enabled, last_update, created_at, updated_at
		FROM animals ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &tracks, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list animals", err)
	}
	return tracks, nil
}

func (r *AnimalRepo) SetTrackingEnabled(ctx context.Context, animalID string, enabled bool) error {
	query := `UPDATE animals SET tracking_enabled = $1, updated_at = NOW() WHERE animal_id = $2`
	result, err := r.db.GetDB().ExecContext(ctx, query, enabled, animalID)
	if err != nil {
		return errors.NewDatabaseError("failed to update tracking state", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("animal not found", nil)
	}
	return nil
}

func (r *AnimalRepo) UpdateLastSeen(ctx context.Context, animalID string, lastUpdate time.Time) error {
	query := `UPDATE animals SET last_update = $1, updated_at = NOW() WHERE animal_id = $2`
	result, err := r.db.GetDB().ExecContext(ctx, query, lastUpdate, animalID)
	if err != nil {
		return errors.NewDatabaseError("failed to update last seen", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("animal not found", nil)
	}
	return nil
}

func (r *AnimalRepo) Delete(ctx context.Context, animalID string) error {
	query := `DELETE FROM animals WHERE animal_id = $1`
	result, err := r.db.GetDB().ExecContext(ctx, query, animalID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete animal", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("animal not found", nil)
	}
	return nil
}
