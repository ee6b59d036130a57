package history

import (
	"testing"
	"time"

	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(lat, lng float64, ts int64) models.LocationReport {
	return models.LocationReport{Latitude: lat, Longitude: lng, Timestamp: ts}
}

func TestRecordSample_Validation(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)

	cases := []models.LocationReport{
		report(91, 0, 1000),
		report(-91, 0, 1000),
		report(0, 181, 1000),
		report(0, -181, 1000),
		{Latitude: 0, Longitude: 0, Accuracy: -1, Timestamp: 1000},
	}
	for _, r := range cases {
		_, err := s.RecordSample("cow-1", r)
		assert.True(t, errors.IsValidation(err), "report %+v must be rejected", r)
	}

	// A rejected report must not create any history.
	assert.Empty(t, s.History("cow-1", 0))
}

func TestRecordSample_RejectsOutOfOrder(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)

	_, err := s.RecordSample("cow-1", report(23.81, 90.41, 100))
	require.NoError(t, err)
	_, err = s.RecordSample("cow-1", report(23.82, 90.41, 200))
	require.NoError(t, err)

	_, err = s.RecordSample("cow-1", report(23.83, 90.41, 150))
	assert.True(t, errors.IsOutOfOrder(err))

	// Equal timestamps are rejected too.
	_, err = s.RecordSample("cow-1", report(23.83, 90.41, 200))
	assert.True(t, errors.IsOutOfOrder(err))

	samples := s.History("cow-1", 0)
	require.Len(t, samples, 2)
	assert.Equal(t, int64(100), samples[0].Timestamp)
	assert.Equal(t, int64(200), samples[1].Timestamp)
}

func TestRecordSample_DerivesSpeed(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)

	first, err := s.RecordSample("cow-1", report(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.DerivedSpeed)

	// One degree of latitude over one hour, ~30.9 m/s.
	second, err := s.RecordSample("cow-1", report(1, 0, 3600_000))
	require.NoError(t, err)
	assert.InDelta(t, 30.9, second.DerivedSpeed, 0.1)
}

func TestRecordSample_UpdatesTrack(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)

	sample, err := s.RecordSample("cow-1", report(23.81, 90.41, 5000))
	require.NoError(t, err)

	track, err := s.Track("cow-1")
	require.NoError(t, err)
	require.NotNil(t, track.CurrentLocation)
	assert.Equal(t, sample, *track.CurrentLocation)
	assert.Equal(t, sample.Time(), track.LastUpdate)
	assert.True(t, track.TrackingEnabled)
}

func TestRecordSample_TrimsRetentionWindow(t *testing.T) {
	s := NewStore(time.Hour)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return base })

	old := base.Add(-2 * time.Hour).UnixMilli()
	edge := base.Add(-30 * time.Minute).UnixMilli()
	fresh := base.UnixMilli()

	for _, ts := range []int64{old, edge, fresh} {
		_, err := s.RecordSample("cow-1", report(23.81, 90.41, ts))
		require.NoError(t, err)
	}

	samples := s.History("cow-1", 0)
	require.Len(t, samples, 2)
	assert.Equal(t, edge, samples[0].Timestamp)
	assert.Equal(t, fresh, samples[1].Timestamp)
}

func TestHistory_SinceFiltering(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)

	for _, ts := range []int64{100, 200, 300, 400} {
		_, err := s.RecordSample("cow-1", report(23.81, 90.41, ts))
		require.NoError(t, err)
	}

	samples := s.History("cow-1", 300)
	require.Len(t, samples, 2)
	assert.Equal(t, int64(300), samples[0].Timestamp)

	assert.Len(t, s.History("cow-1", 0), 4)
	assert.Empty(t, s.History("cow-1", 500))
}

func TestHistory_UnknownAnimal(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)
	samples := s.History("ghost", 0)
	assert.NotNil(t, samples)
	assert.Empty(t, samples)
}

func TestHistory_ReturnsCopy(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)
	_, err := s.RecordSample("cow-1", report(23.81, 90.41, 100))
	require.NoError(t, err)

	samples := s.History("cow-1", 0)
	samples[0].Latitude = 0

	again := s.History("cow-1", 0)
	assert.Equal(t, 23.81, again[0].Latitude)
}

func TestEnableDisableTracking(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)

	s.EnableTracking(models.AnimalTrack{AnimalID: "cow-1", Name: "Bella", Species: "cattle"})
	s.EnableTracking(models.AnimalTrack{AnimalID: "cow-2"})

	require.NoError(t, s.DisableTracking("cow-2"))
	assert.Equal(t, []string{"cow-1"}, s.TrackedAnimalIDs())

	track, err := s.Track("cow-2")
	require.NoError(t, err)
	assert.False(t, track.TrackingEnabled)

	assert.True(t, errors.IsNotFound(s.DisableTracking("ghost")))
}

func TestPurgeAnimal(t *testing.T) {
	s := NewStore(7 * 24 * time.Hour)
	_, err := s.RecordSample("cow-1", report(23.81, 90.41, 100))
	require.NoError(t, err)

	s.PurgeAnimal("cow-1")
	assert.Empty(t, s.History("cow-1", 0))
	_, err = s.Track("cow-1")
	assert.True(t, errors.IsNotFound(err))
}
