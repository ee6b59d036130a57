package herdservice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/farmsense/herdhub/internal/analytics"
	"github.com/farmsense/herdhub/internal/behavior"
	"github.com/farmsense/herdhub/internal/errors"
	"github.com/farmsense/herdhub/internal/geofence"
	"github.com/farmsense/herdhub/internal/history"
	"github.com/farmsense/herdhub/internal/models"
	"github.com/farmsense/herdhub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

// captureSink records delivered alerts for assertions.
type captureSink struct {
	mu     sync.Mutex
	alerts []models.AlertRecord
}

func (c *captureSink) Deliver(_ context.Context, alert models.AlertRecord) error {
	c.mu.Lock()
	c.alerts = append(c.alerts, alert)
	c.mu.Unlock()
	return nil
}

func (c *captureSink) delivered() []models.AlertRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.AlertRecord, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// newService builds an in-memory HerdService with an optional capture sink.
func newService(t *testing.T, sink *captureSink) (*HerdService, *captureSink) {
	t.Helper()

	store := history.NewStore(7 * 24 * time.Hour)
	store.SetClock(func() time.Time { return testBase })
	engine := analytics.NewEngine(store, 0.0001, 5)
	engine.SetClock(func() time.Time { return testBase })

	deps := Deps{
		History:     store,
		Registry:    geofence.NewRegistry(),
		Memberships: geofence.NewMemoryMembershipStore(),
		Analytics:   engine,
		Behavior: behavior.NewDetector(behavior.Thresholds{
			StationarySpeedMps:      0.01,
			ExcessiveSpeedMps:       2.0,
			MinSamplesForStationary: 10,
		}),
		BehaviorWindowDays: 1,
	}
	if sink != nil {
		deps.Sinks = []repository.AlertSink{sink}
	}
	return New(deps), sink
}

func TestIngestAndSummarize(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.RegisterAnimal(ctx, &models.AnimalTrack{AnimalID: "cow-7", Name: "Mathilda", Species: "cattle"}))

	first := testBase.Add(-20 * time.Minute)
	second := first.Add(10 * time.Minute)

	_, err := svc.IngestReport(ctx, models.LocationReport{
		AnimalID: "cow-7", Latitude: 23.81, Longitude: 90.41, Timestamp: first.UnixMilli(),
	})
	require.NoError(t, err)
	_, err = svc.IngestReport(ctx, models.LocationReport{
		AnimalID: "cow-7", Latitude: 23.82, Longitude: 90.42, Timestamp: second.UnixMilli(),
	})
	require.NoError(t, err)

	summary := svc.Summarize(ctx, "cow-7", 1)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.SampleCount)
	assert.InDelta(t, 1470, summary.TotalDistanceMeters, 60)
	assert.InDelta(t, 2.45, summary.AvgSpeedMps, 0.1)

	track, err := svc.GetAnimal(ctx, "cow-7")
	require.NoError(t, err)
	require.NotNil(t, track.CurrentLocation)
	assert.Equal(t, 23.82, track.CurrentLocation.Latitude)
}

func TestIngestEmitsExitAlert(t *testing.T) {
	sink := &captureSink{}
	svc, _ := newService(t, sink)
	ctx := context.Background()

	require.NoError(t, svc.RegisterGeofence(ctx, &models.Geofence{
		Name: "pasture",
		Kind: models.GeofenceKindCircular,
		Circle: &models.CircleGeometry{
			Center:       models.LatLng{Lat: 23.81, Lng: 90.41},
			RadiusMeters: 500,
		},
	}))

	at := testBase.Add(-time.Hour)
	inside := models.LocationReport{AnimalID: "cow-1", Latitude: 23.81, Longitude: 90.41, Timestamp: at.UnixMilli()}
	alerts, err := svc.IngestReport(ctx, inside)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	outside := models.LocationReport{AnimalID: "cow-1", Latitude: 23.90, Longitude: 90.41, Timestamp: at.Add(time.Minute).UnixMilli()}
	alerts, err = svc.IngestReport(ctx, outside)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindBoundaryBreach, alerts[0].Kind)

	delivered := sink.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, alerts[0].ID, delivered[0].ID)
}

func TestIngestRejectsOutOfOrder(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	_, err := svc.IngestReport(ctx, models.LocationReport{
		AnimalID: "cow-1", Latitude: 23.81, Longitude: 90.41, Timestamp: testBase.UnixMilli(),
	})
	require.NoError(t, err)

	_, err = svc.IngestReport(ctx, models.LocationReport{
		AnimalID: "cow-1", Latitude: 23.82, Longitude: 90.41, Timestamp: testBase.Add(-time.Minute).UnixMilli(),
	})
	assert.True(t, errors.IsOutOfOrder(err))

	assert.Len(t, svc.GetHistory(ctx, "cow-1", 0), 1)
}

func TestIngestRejectsDisabledTracking(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.RegisterAnimal(ctx, &models.AnimalTrack{AnimalID: "cow-1"}))
	require.NoError(t, svc.SetTrackingEnabled(ctx, "cow-1", false))

	_, err := svc.IngestReport(ctx, models.LocationReport{
		AnimalID: "cow-1", Latitude: 23.81, Longitude: 90.41, Timestamp: testBase.UnixMilli(),
	})
	assert.True(t, errors.IsValidation(err))

	// Re-enabling resumes ingest on the same track.
	require.NoError(t, svc.SetTrackingEnabled(ctx, "cow-1", true))
	_, err = svc.IngestReport(ctx, models.LocationReport{
		AnimalID: "cow-1", Latitude: 23.81, Longitude: 90.41, Timestamp: testBase.UnixMilli(),
	})
	require.NoError(t, err)
}

func TestIngestRequiresAnimalID(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.IngestReport(context.Background(), models.LocationReport{
		Latitude: 23.81, Longitude: 90.41, Timestamp: testBase.UnixMilli(),
	})
	assert.True(t, errors.IsValidation(err))
}

func TestConcurrentIngestDifferentAnimals(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"cow-1", "cow-2", "cow-3", "cow-4"} {
		wg.Add(1)
		go func(animalID string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := svc.IngestReport(ctx, models.LocationReport{
					AnimalID:  animalID,
					Latitude:  23.81,
					Longitude: 90.41,
					Timestamp: testBase.Add(time.Duration(i) * time.Second).UnixMilli(),
				})
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []string{"cow-1", "cow-2", "cow-3", "cow-4"} {
		assert.Len(t, svc.GetHistory(ctx, id, 0), 50)
	}
}

func TestBehaviorSweep(t *testing.T) {
	sink := &captureSink{}
	svc, _ := newService(t, sink)
	ctx := context.Background()

	// cow-slow barely moves across 12 reports; cow-normal grazes.
	at := testBase.Add(-30 * time.Minute)
	for i := 0; i < 12; i++ {
		_, err := svc.IngestReport(ctx, models.LocationReport{
			AnimalID:  "cow-slow",
			Latitude:  23.81,
			Longitude: 90.41,
			Timestamp: at.Add(time.Duration(i) * time.Minute).UnixMilli(),
		})
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := svc.IngestReport(ctx, models.LocationReport{
			AnimalID:  "cow-normal",
			Latitude:  23.81 + float64(i)*0.001,
			Longitude: 90.41,
			Timestamp: at.Add(time.Duration(i) * time.Minute).UnixMilli(),
		})
		require.NoError(t, err)
	}

	emitted := svc.RunBehaviorSweep(ctx)
	assert.Equal(t, 1, emitted)

	delivered := sink.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, models.AlertKindStationaryBehavior, delivered[0].Kind)
	assert.Equal(t, "cow-slow", delivered[0].AnimalID)
}

func TestValidateRequiresCoreComponents(t *testing.T) {
	svc := New(Deps{})
	assert.Error(t, svc.Validate())

	full, _ := newService(t, nil)
	assert.NoError(t, full.Validate())
}
