// Package analytics derives movement summaries (bounding box, area covered,
// total distance, average speed, hotspots) from an animal's rolling location
// history.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/farmsense/herdhub/internal/geo"
	"github.com/farmsense/herdhub/internal/history"
	"github.com/farmsense/herdhub/internal/models"
)

// metersPerDegree is the coarse degrees-to-meters factor used for the area
// approximation. Intentionally not latitude-corrected; the pasture
// utilization figures built on top expect this comparable-but-approximate
// number.
const metersPerDegree = 111000.0

// Engine computes movement summaries over a history store.
type Engine struct {
	store       *history.Store
	gridCellDeg float64
	hotspotTopK int
	now         func() time.Time
}

// NewEngine creates an analytics engine. gridCellDeg is the hotspot grid
// cell size in degrees, topK the number of hotspots reported.
func NewEngine(store *history.Store, gridCellDeg float64, topK int) *Engine {
	return &Engine{
		store:       store,
		gridCellDeg: gridCellDeg,
		hotspotTopK: topK,
		now:         time.Now,
	}
}

// SetClock overrides the engine's time source. Test hook.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Summarize aggregates the animal's samples over the trailing windowDays.
// Returns nil when the window holds no samples; absence of data is a valid,
// common case, not an error.
func (e *Engine) Summarize(animalID string, windowDays int) *models.MovementSummary {
	since := e.now().AddDate(0, 0, -windowDays).UnixMilli()
	samples := e.store.History(animalID, since)
	if len(samples) == 0 {
		return nil
	}

	summary := &models.MovementSummary{
		AnimalID:    animalID,
		WindowDays:  windowDays,
		SampleCount: len(samples),
		BoundingBox: models.BoundingBox{
			MinLat: math.MaxFloat64,
			MaxLat: -math.MaxFloat64,
			MinLng: math.MaxFloat64,
			MaxLng: -math.MaxFloat64,
		},
	}

	var speedSum float64
	for i, sample := range samples {
		box := &summary.BoundingBox
		box.MinLat = math.Min(box.MinLat, sample.Latitude)
		box.MaxLat = math.Max(box.MaxLat, sample.Latitude)
		box.MinLng = math.Min(box.MinLng, sample.Longitude)
		box.MaxLng = math.Max(box.MaxLng, sample.Longitude)

		if i > 0 {
			summary.TotalDistanceMeters += geo.DistanceMeters(samples[i-1].Point(), sample.Point())
			speedSum += sample.DerivedSpeed
		}
	}

	// Mean of per-step derived speeds, not aggregate distance over time:
	// the summary mirrors per-step sampling noise instead of smoothing it
	// out. The window's leading sample carries a placeholder zero speed
	// (no predecessor) and is excluded from the mean.
	if len(samples) > 1 {
		summary.AvgSpeedMps = speedSum / float64(len(samples)-1)
	} else {
		summary.AvgSpeedMps = samples[0].DerivedSpeed
	}

	box := summary.BoundingBox
	summary.AreaCoveredSqMeters = (box.MaxLat - box.MinLat) * metersPerDegree *
		(box.MaxLng - box.MinLng) * metersPerDegree

	summary.Hotspots = e.hotspots(samples)

	return summary
}

type gridKey struct {
	latIdx int64
	lngIdx int64
}

// hotspots partitions the samples into a fixed grid and returns the top-K
// cells by sample count. Ties are broken by insertion order: the first-seen
// cell wins. The reported coordinates are the cell's lower-left corner.
func (e *Engine) hotspots(samples []models.LocationSample) []models.Hotspot {
	counts := make(map[gridKey]int)
	order := make([]gridKey, 0)

	for _, sample := range samples {
		key := gridKey{
			latIdx: int64(math.Floor(sample.Latitude / e.gridCellDeg)),
			lngIdx: int64(math.Floor(sample.Longitude / e.gridCellDeg)),
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	// Stable sort over first-seen order keeps tie-breaking deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	topK := e.hotspotTopK
	if topK > len(order) {
		topK = len(order)
	}

	hotspots := make([]models.Hotspot, 0, topK)
	for _, key := range order[:topK] {
		hotspots = append(hotspots, models.Hotspot{
			Lat:        float64(key.latIdx) * e.gridCellDeg,
			Lng:        float64(key.lngIdx) * e.gridCellDeg,
			VisitCount: counts[key],
		})
	}
	return hotspots
}
