// Package history maintains a bounded, per-animal rolling window of
// location samples with derived speed. Appends for one animal are
// serialized; different animals are fully independent.
package history

import (
	"sync"
	"time"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/geo"
	"github.com/farmsense/herdhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Store is the in-memory location history keyed by animal ID.
type Store struct {
	retention time.Duration
	now       func() time.Time

	mu     sync.RWMutex
	tracks map[string]*animalHistory
}

// animalHistory is the per-animal state. Its mutex serializes appends and
// trims for one animal without blocking others.
type animalHistory struct {
	mu      sync.Mutex
	track   models.AnimalTrack
	samples []models.LocationSample
}

// NewStore creates a history store with the given retention window.
func NewStore(retention time.Duration) *Store {
	return &Store{
		retention: retention,
		now:       time.Now,
		tracks:    make(map[string]*animalHistory),
	}
}

// SetClock overrides the store's time source. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// EnableTracking creates (or re-enables) the track for an animal.
func (s *Store) EnableTracking(track models.AnimalTrack) {
	ah := s.getOrCreate(track.AnimalID)
	ah.mu.Lock()
	name, species := track.Name, track.Species
	ah.track.AnimalID = track.AnimalID
	if name != "" {
		ah.track.Name = name
	}
	if species != "" {
		ah.track.Species = species
	}
	ah.track.TrackingEnabled = true
	if ah.track.CreatedAt.IsZero() {
		ah.track.CreatedAt = s.now()
	}
	ah.track.UpdatedAt = s.now()
	ah.mu.Unlock()
}

// DisableTracking marks the animal's track as disabled. The track and its
// history are retained; tracks are never structurally deleted.
func (s *Store) DisableTracking(animalID string) error {
	ah, err := s.get(animalID)
	if err != nil {
		return err
	}
	ah.mu.Lock()
	ah.track.TrackingEnabled = false
	ah.track.UpdatedAt = s.now()
	ah.mu.Unlock()
	return nil
}

// Track returns a copy of the animal's tracking state.
func (s *Store) Track(animalID string) (models.AnimalTrack, error) {
	ah, err := s.get(animalID)
	if err != nil {
		return models.AnimalTrack{}, err
	}
	ah.mu.Lock()
	defer ah.mu.Unlock()
	track := ah.track
	if ah.track.CurrentLocation != nil {
		loc := *ah.track.CurrentLocation
		track.CurrentLocation = &loc
	}
	return track, nil
}

// TrackedAnimalIDs returns the IDs of all animals with tracking enabled.
func (s *Store) TrackedAnimalIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tracks))
	for id, ah := range s.tracks {
		ah.mu.Lock()
		enabled := ah.track.TrackingEnabled
		ah.mu.Unlock()
		if enabled {
			ids = append(ids, id)
		}
	}
	return ids
}

// RecordSample validates and appends a report for an animal, computes the
// derived speed against the previous sample, updates the track's current
// location and trims samples that fell out of the retention window. The
// returned sample is the stored, immutable value.
//
// Validation happens before any state is modified, so a rejected report
// leaves existing history untouched.
func (s *Store) RecordSample(animalID string, report models.LocationReport) (models.LocationSample, error) {
	if report.Latitude < -90 || report.Latitude > 90 {
		return models.LocationSample{}, errors.NewValidationError("latitude out of range [-90,90]", nil)
	}
	if report.Longitude < -180 || report.Longitude > 180 {
		return models.LocationSample{}, errors.NewValidationError("longitude out of range [-180,180]", nil)
	}
	if report.Accuracy < 0 {
		return models.LocationSample{}, errors.NewValidationError("accuracy must be non-negative", nil)
	}

	ah := s.getOrCreate(animalID)
	ah.mu.Lock()
	defer ah.mu.Unlock()

	var prev *models.LocationSample
	if n := len(ah.samples); n > 0 {
		prev = &ah.samples[n-1]
		// Accepting an out-of-order sample would corrupt the monotonic
		// ordering the analytics engine depends on. Reject, don't drop.
		if report.Timestamp <= prev.Timestamp {
			return models.LocationSample{}, errors.NewOutOfOrderError(
				"report timestamp is not newer than the last stored sample", nil)
		}
	}

	sample := models.LocationSample{
		Latitude:  report.Latitude,
		Longitude: report.Longitude,
		Altitude:  report.Altitude,
		Accuracy:  report.Accuracy,
		Timestamp: report.Timestamp,
	}
	sample.DerivedSpeed = geo.SpeedMps(prev, &sample)

	ah.samples = append(ah.samples, sample)
	loc := sample
	ah.track.AnimalID = animalID
	ah.track.CurrentLocation = &loc
	ah.track.LastUpdate = sample.Time()
	ah.track.UpdatedAt = s.now()

	s.trimLocked(ah)

	return sample, nil
}

// History returns the ordered samples for an animal with timestamp >= since
// (ms since epoch). An animal with no samples yields an empty slice, not an
// error.
func (s *Store) History(animalID string, since int64) []models.LocationSample {
	s.mu.RLock()
	ah, ok := s.tracks[animalID]
	s.mu.RUnlock()
	if !ok {
		return []models.LocationSample{}
	}

	ah.mu.Lock()
	defer ah.mu.Unlock()

	// Samples are strictly increasing by timestamp, so the result is a
	// contiguous suffix.
	idx := len(ah.samples)
	for i, sample := range ah.samples {
		if sample.Timestamp >= since {
			idx = i
			break
		}
	}
	out := make([]models.LocationSample, len(ah.samples)-idx)
	copy(out, ah.samples[idx:])
	return out
}

// PurgeAnimal drops all history state for an animal. Used by cleanup when an
// animal is retired from the herd entirely.
func (s *Store) PurgeAnimal(animalID string) {
	s.mu.Lock()
	delete(s.tracks, animalID)
	s.mu.Unlock()
	nuts.L.Infof("[HistoryStore] Purged history for animal %s", animalID)
}

// trimLocked drops samples older than now − retention. Caller holds ah.mu.
// Trimming runs on every write, so stored size stays bounded.
func (s *Store) trimLocked(ah *animalHistory) {
	cutoff := s.now().Add(-s.retention).UnixMilli()
	firstKept := 0
	for firstKept < len(ah.samples) && ah.samples[firstKept].Timestamp < cutoff {
		firstKept++
	}
	if firstKept > 0 {
		ah.samples = append(ah.samples[:0:0], ah.samples[firstKept:]...)
	}
}

func (s *Store) get(animalID string) (*animalHistory, error) {
	s.mu.RLock()
	ah, ok := s.tracks[animalID]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("no track for animal: "+animalID, nil)
	}
	return ah, nil
}

func (s *Store) getOrCreate(animalID string) *animalHistory {
	s.mu.RLock()
	ah, ok := s.tracks[animalID]
	s.mu.RUnlock()
	if ok {
		return ah
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ah, ok = s.tracks[animalID]; ok {
		return ah
	}
	ah = &animalHistory{
		track: models.AnimalTrack{
			AnimalID:        animalID,
			TrackingEnabled: true,
			CreatedAt:       s.now(),
		},
	}
	s.tracks[animalID] = ah
	return ah
}
