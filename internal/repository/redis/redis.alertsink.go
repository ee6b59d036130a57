// FilePath: internal/repository/redis/redis.alertsink.go
package redis

import (
	"context"
	"encoding/json"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// AlertChannel is the pub/sub channel notification workers subscribe to.
const AlertChannel = "herdhub:alerts"

// AlertPublisher publishes alert records to a Redis pub/sub channel. The
// notification service downstream owns delivery and retries.
type AlertPublisher struct {
	client *redis.Client
}

// NewAlertPublisher creates a Redis-backed alert sink.
func NewAlertPublisher(client *redis.Client) *AlertPublisher {
	return &AlertPublisher{client: client}
}

// Deliver publishes the alert as JSON.
func (p *AlertPublisher) Deliver(ctx context.Context, alert models.AlertRecord) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return errors.NewInternalError("failed to encode alert", err)
	}
	if err := p.client.Publish(ctx, AlertChannel, payload).Err(); err != nil {
		return errors.NewDatabaseError("failed to publish alert", err)
	}
	nuts.L.Debugf("[AlertPublisher] Published %s alert %s for animal %s", alert.Kind, alert.ID, alert.AnimalID)
	return nil
}
