package analytics

import (
	"testing"
	"time"

	"github.com/farmsense/herdhub/internal/history"
	"github.com/farmsense/herdhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *history.Store) {
	t.Helper()
	store := history.NewStore(7 * 24 * time.Hour)
	store.SetClock(func() time.Time { return testBase })
	engine := NewEngine(store, 0.0001, 5)
	engine.SetClock(func() time.Time { return testBase })
	return engine, store
}

func record(t *testing.T, store *history.Store, animalID string, lat, lng float64, at time.Time) {
	t.Helper()
	_, err := store.RecordSample(animalID, models.LocationReport{
		Latitude:  lat,
		Longitude: lng,
		Timestamp: at.UnixMilli(),
	})
	require.NoError(t, err)
}

func TestSummarize_EmptyWindow(t *testing.T) {
	engine, store := newTestEngine(t)

	assert.Nil(t, engine.Summarize("ghost", 7))

	// Samples outside the window count as absent too.
	record(t, store, "cow-1", 23.81, 90.41, testBase.Add(-48*time.Hour))
	assert.Nil(t, engine.Summarize("cow-1", 1))
}

func TestSummarize_SingleSample(t *testing.T) {
	engine, store := newTestEngine(t)
	record(t, store, "cow-1", 23.81, 90.41, testBase.Add(-time.Hour))

	summary := engine.Summarize("cow-1", 7)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.SampleCount)
	assert.Equal(t, 0.0, summary.TotalDistanceMeters)
	assert.Equal(t, 0.0, summary.AvgSpeedMps)
	assert.Equal(t, 0.0, summary.AreaCoveredSqMeters)
	assert.Equal(t, 23.81, summary.BoundingBox.MinLat)
	assert.Equal(t, 23.81, summary.BoundingBox.MaxLat)
	require.Len(t, summary.Hotspots, 1)
	assert.Equal(t, 1, summary.Hotspots[0].VisitCount)
}

func TestSummarize_BoundingBoxAndArea(t *testing.T) {
	engine, store := newTestEngine(t)

	record(t, store, "cow-1", 23.80, 90.40, testBase.Add(-3*time.Hour))
	record(t, store, "cow-1", 23.82, 90.44, testBase.Add(-2*time.Hour))
	record(t, store, "cow-1", 23.81, 90.42, testBase.Add(-time.Hour))

	summary := engine.Summarize("cow-1", 7)
	require.NotNil(t, summary)

	box := summary.BoundingBox
	assert.InDelta(t, 23.80, box.MinLat, 1e-9)
	assert.InDelta(t, 23.82, box.MaxLat, 1e-9)
	assert.InDelta(t, 90.40, box.MinLng, 1e-9)
	assert.InDelta(t, 90.44, box.MaxLng, 1e-9)

	// 0.02 x 0.04 degrees on the flat 111km-per-degree approximation.
	assert.InDelta(t, 0.02*111000*0.04*111000, summary.AreaCoveredSqMeters, 1)
}

func TestSummarize_DistanceAndSpeed(t *testing.T) {
	engine, store := newTestEngine(t)

	// Two reports ten minutes apart, ~1.5km: the average speed is the mean
	// of the derived speeds of samples that have a predecessor.
	record(t, store, "cow-7", 23.81, 90.41, testBase.Add(-20*time.Minute))
	record(t, store, "cow-7", 23.82, 90.42, testBase.Add(-10*time.Minute))

	summary := engine.Summarize("cow-7", 1)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.SampleCount)
	assert.InDelta(t, 1470, summary.TotalDistanceMeters, 60)
	assert.InDelta(t, 2.45, summary.AvgSpeedMps, 0.1)
}

func TestSummarize_WindowFiltersSamples(t *testing.T) {
	engine, store := newTestEngine(t)

	record(t, store, "cow-1", 23.50, 90.10, testBase.Add(-72*time.Hour))
	record(t, store, "cow-1", 23.81, 90.41, testBase.Add(-2*time.Hour))
	record(t, store, "cow-1", 23.81, 90.41001, testBase.Add(-time.Hour))

	summary := engine.Summarize("cow-1", 1)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.SampleCount)
	// The ~40km hop from the out-of-window sample must not be counted.
	assert.Less(t, summary.TotalDistanceMeters, 10.0)
}

func TestHotspots_DeterministicRanking(t *testing.T) {
	engine, store := newTestEngine(t)

	// 20 reports in one grid cell, then a single report elsewhere.
	at := testBase.Add(-time.Hour)
	for i := 0; i < 20; i++ {
		record(t, store, "cow-1", 23.81, 90.41, at)
		at = at.Add(time.Minute)
	}
	record(t, store, "cow-1", 23.90, 90.50, at)

	summary := engine.Summarize("cow-1", 7)
	require.NotNil(t, summary)
	require.Len(t, summary.Hotspots, 2)
	assert.Equal(t, 20, summary.Hotspots[0].VisitCount)
	assert.Equal(t, 1, summary.Hotspots[1].VisitCount)
	// Cell coordinates snap to the lower-left corner of the 0.0001 degree grid.
	assert.InDelta(t, 23.81, summary.Hotspots[0].Lat, 0.0001)
	assert.InDelta(t, 90.41, summary.Hotspots[0].Lng, 0.0001)
}

func TestHotspots_TopKLimitAndTieBreak(t *testing.T) {
	engine, store := newTestEngine(t)

	// Seven distinct cells visited once each; only the first five (by first
	// visit) survive the top-K cut.
	at := testBase.Add(-time.Hour)
	for i := 0; i < 7; i++ {
		record(t, store, "cow-1", 23.81+float64(i)*0.001, 90.41, at)
		at = at.Add(time.Minute)
	}

	summary := engine.Summarize("cow-1", 7)
	require.NotNil(t, summary)
	require.Len(t, summary.Hotspots, 5)
	for i, h := range summary.Hotspots {
		assert.Equal(t, 1, h.VisitCount)
		assert.InDelta(t, 23.81+float64(i)*0.001, h.Lat, 0.0001)
	}
}
