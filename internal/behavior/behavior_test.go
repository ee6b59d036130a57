package behavior

import (
	"testing"
	"time"

	"github.com/farmsense/herdhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThresholds() Thresholds {
	return Thresholds{
		StationarySpeedMps:      0.01,
		ExcessiveSpeedMps:       2.0,
		MinSamplesForStationary: 10,
	}
}

func summaryWith(avgSpeed float64, sampleCount int) *models.MovementSummary {
	return &models.MovementSummary{
		AnimalID:    "cow-1",
		WindowDays:  1,
		AvgSpeedMps: avgSpeed,
		SampleCount: sampleCount,
		BoundingBox: models.BoundingBox{
			MinLat: 23.80, MaxLat: 23.82,
			MinLng: 90.40, MaxLng: 90.44,
		},
	}
}

func TestClassify_Stationary(t *testing.T) {
	d := NewDetector(testThresholds())

	fixed := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	alert := d.Classify(summaryWith(0.005, 11))
	require.NotNil(t, alert)
	assert.Equal(t, models.AlertKindStationaryBehavior, alert.Kind)
	assert.Equal(t, models.AlertSeverityMedium, alert.Severity)
	assert.Equal(t, "cow-1", alert.AnimalID)
	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, fixed, alert.Timestamp)
	// The alert is pinned to the center of the bounding box.
	assert.InDelta(t, 23.81, alert.Location.Lat, 1e-9)
	assert.InDelta(t, 90.42, alert.Location.Lng, 1e-9)
}

func TestClassify_StationaryNeedsEnoughSamples(t *testing.T) {
	d := NewDetector(testThresholds())

	// Low speed but too few samples: an idle-looking window with sparse data
	// is not evidence.
	assert.Nil(t, d.Classify(summaryWith(0.005, 10)))
	assert.Nil(t, d.Classify(summaryWith(0.005, 2)))
}

func TestClassify_Excessive(t *testing.T) {
	d := NewDetector(testThresholds())

	alert := d.Classify(summaryWith(3.2, 4))
	require.NotNil(t, alert)
	assert.Equal(t, models.AlertKindExcessiveMovement, alert.Kind)
	assert.Equal(t, models.AlertSeverityMedium, alert.Severity)

	// Exactly at the threshold is still normal.
	assert.Nil(t, d.Classify(summaryWith(2.0, 4)))
}

func TestClassify_Normal(t *testing.T) {
	d := NewDetector(testThresholds())

	assert.Nil(t, d.Classify(summaryWith(0.5, 50)))
	assert.Nil(t, d.Classify(nil))
}
