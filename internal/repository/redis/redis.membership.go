// FilePath: internal/repository/redis/redis.membership.go
package redis

import (
	"context"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/redis/go-redis/v9"
)

// MembershipStore keeps per-(animal, geofence) containment state in a Redis
// hash per animal, so transition detection survives process restarts and can
// be shared between hub instances.
type MembershipStore struct {
	client *redis.Client
	prefix string
}

// NewMembershipStore creates a Redis-backed membership store.
func NewMembershipStore(client *redis.Client) *MembershipStore {
	return &MembershipStore{
		client: client,
		prefix: "herdhub:membership:",
	}
}

func (s *MembershipStore) key(animalID string) string {
	return s.prefix + animalID
}

// Get returns the stored containment state; known is false when the pair has
// never been evaluated.
func (s *MembershipStore) Get(ctx context.Context, animalID, geofenceID string) (bool, bool, error) {
	val, err := s.client.HGet(ctx, s.key(animalID), geofenceID).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, errors.NewDatabaseError("failed to read membership state", err)
	}
	return val == "1", true, nil
}

// Set stores the containment state for the pair.
func (s *MembershipStore) Set(ctx context.Context, animalID, geofenceID string, inside bool) error {
	val := "0"
	if inside {
		val = "1"
	}
	if err := s.client.HSet(ctx, s.key(animalID), geofenceID, val).Err(); err != nil {
		return errors.NewDatabaseError("failed to write membership state", err)
	}
	return nil
}

// PurgeAnimal drops all membership state for an animal.
func (s *MembershipStore) PurgeAnimal(ctx context.Context, animalID string) error {
	if err := s.client.Del(ctx, s.key(animalID)).Err(); err != nil {
		return errors.NewDatabaseError("failed to purge membership state", err)
	}
	return nil
}
