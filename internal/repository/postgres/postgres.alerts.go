// FilePath: internal/repository/postgres/postgres.alerts.go
package postgres

import (
	"context"
	"fmt"

	"github.com/farmsense/herdhub/internal/database"
	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
)

type AlertRepo struct {
	PostgresBaseRepo
}

func NewAlertRepository(db database.DB) *AlertRepo {
	repo := &PostgresBaseRepo{db: db}
	return &AlertRepo{PostgresBaseRepo: *repo}
}

func (r *AlertRepo) Create(ctx context.Context, alert *models.AlertRecord) error {
	query := `
		INSERT INTO alerts (id, kind, animal_id, severity, message, lat, lng, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.GetDB().ExecContext(ctx, query,
		alert.ID, alert.Kind, alert.AnimalID, alert.Severity,
		alert.Message, alert.Location.Lat, alert.Location.Lng, alert.Timestamp)
	if err != nil {
		return errors.NewDatabaseError("failed to store alert", err)
	}
	return nil
}

func (r *AlertRepo) List(ctx context.Context, filters models.AlertFilters, offset, limit int) ([]*models.AlertRecord, error) {
	query := `SELECT id, kind, animal_id, severity, message, lat, lng, timestamp FROM alerts WHERE 1=1`
	args := []interface{}{}

	if filters.AnimalID != "" {
		args = append(args, filters.AnimalID)
		query += fmt.Sprintf(" AND animal_id = $%d", len(args))
	}
	if filters.Kind != "" {
		args = append(args, filters.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filters.Severity != "" {
		args = append(args, filters.Severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.GetDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list alerts", err)
	}
	defer rows.Close()

	alerts := []*models.AlertRecord{}
	for rows.Next() {
		alert := &models.AlertRecord{}
		if err := rows.Scan(&alert.ID, &alert.Kind, &alert.AnimalID, &alert.Severity,
			&alert.Message, &alert.Location.Lat, &alert.Location.Lng, &alert.Timestamp); err != nil {
			return nil, errors.NewDatabaseError("failed to scan alert", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("failed to iterate alerts", err)
	}
	return alerts, nil
}

func (r *AlertRepo) DeleteByAnimalID(ctx context.Context, animalID string) error {
	query := `DELETE FROM alerts WHERE animal_id = $1`
	if _, err := r.db.GetDB().ExecContext(ctx, query, animalID); err != nil {
		return errors.NewDatabaseError("failed to delete alerts", err)
	}
	return nil
}
