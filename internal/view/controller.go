// Package view owns the derived scene state: the viewport projection and
// the controller that keeps the keyed circle set in sync with the current
// time filter and camera.
package view

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lmalottucsd/bikewatching/internal/metrics"
	"github.com/lmalottucsd/bikewatching/internal/models"
	"github.com/lmalottucsd/bikewatching/internal/traffic"
)

// Controller is the single owner of the render state. The canonical
// station list and the trip history are read-only after construction;
// everything else (filter, viewport, circles) is derived and recomputed
// inside the lock. Handlers run serialized, the service equivalent of the
// client's single event loop.
type Controller struct {
	mu sync.Mutex

	stations []models.Station
	byKey    map[string]models.Station
	trips    []models.Trip

	filter   int
	viewport Viewport

	circles map[string]*Circle
	order   []string

	logger *slog.Logger
}

// NewController performs the initial draw: one circle per station from the
// unfiltered aggregate, positioned through the given viewport.
func NewController(stations []models.Station, trips []models.Trip, vp Viewport, logger *slog.Logger) *Controller {
	byKey := make(map[string]models.Station, len(stations))
	for _, s := range stations {
		byKey[s.ShortName] = s
	}

	c := &Controller{
		stations: stations,
		byKey:    byKey,
		trips:    trips,
		filter:   traffic.AnyTime,
		viewport: vp,
		circles:  make(map[string]*Circle, len(stations)),
		logger:   logger,
	}

	rec := c.recomputeLocked()
	logger.Info("initial draw complete",
		"stations", len(stations),
		"trips", len(trips),
		"circles", len(rec.Entered))
	return c
}

// SetFilter applies a slider change: AnyTime or a minute-of-day in
// [0, 1439]. The filtered trips, the aggregates over the full original
// station list, and the radius scale domain are all recomputed, then the
// circle set is re-bound by station key.
func (c *Controller) SetFilter(minutes int) error {
	if !traffic.IsValidFilter(minutes) {
		return fmt.Errorf("filter minutes %d out of range: want %d or 0..%d", minutes, traffic.AnyTime, traffic.MinutesPerDay-1)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = minutes
	rec := c.recomputeLocked()

	c.logger.Info("filter applied",
		"minutes", minutes,
		"entered", len(rec.Entered),
		"updated", len(rec.Updated),
		"exited", len(rec.Exited))
	return nil
}

// Move applies a map pan/zoom/resize: every bound circle is repositioned
// through the new viewport. Radii, colors, and the bound dataset are not
// touched, and no re-aggregation happens.
func (c *Controller) Move(vp Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.viewport = NewViewport(vp.CenterLon, vp.CenterLat, vp.Zoom, vp.Width, vp.Height)
	c.repositionLocked()
}

// Filter returns the current filter value.
func (c *Controller) Filter() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Viewport returns the current camera state.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// Snapshot returns the current scene: circles in stable station order plus
// the slider readout. At the sentinel the time label is empty and AnyTime
// is set, mirroring the "(any time)" indicator.
func (c *Controller) Snapshot() Scene {
	c.mu.Lock()
	defer c.mu.Unlock()

	scene := Scene{
		Circles:       make([]Circle, 0, len(c.order)),
		FilterMinutes: c.filter,
		AnyTime:       c.filter == traffic.AnyTime,
		Viewport:      c.viewport,
	}
	if !scene.AnyTime {
		scene.TimeLabel = traffic.FormatMinutes(c.filter)
	}

	for _, key := range c.order {
		if circle, ok := c.circles[key]; ok {
			scene.Circles = append(scene.Circles, *circle)
		}
	}
	return scene
}

// recomputeLocked runs the full pipeline for the current filter: filter
// trips, aggregate per station, rebuild the radius scale, reconcile the
// keyed circle set, and reproject everything. Callers hold c.mu.
func (c *Controller) recomputeLocked() Reconciliation {
	start := time.Now()

	filtered := c.filter != traffic.AnyTime
	trips := traffic.FilterTripsByTime(c.trips, c.filter)
	aggregates := traffic.ComputeStationTraffic(c.stations, trips)

	maxTraffic := traffic.MaxTotalTraffic(aggregates)
	scale := traffic.NewRadiusScale(maxTraffic, filtered)

	rec := c.reconcileLocked(aggregates, scale)
	c.repositionLocked()

	metrics.FilteredTrips.Set(float64(len(trips)))
	metrics.MaxTotalTraffic.Set(float64(maxTraffic))
	metrics.VisibleCircles.Set(float64(len(c.circles)))
	metrics.SceneRecomputeDuration.Observe(time.Since(start).Seconds())

	return rec
}

// reconcileLocked re-binds circles to the new aggregate set by station
// key: new keys enter, keys present in both are updated in place, keys
// absent from the new set exit and are removed from the screen.
func (c *Controller) reconcileLocked(aggregates []models.StationTraffic, scale traffic.SqrtScale) Reconciliation {
	var rec Reconciliation

	seen := make(map[string]bool, len(aggregates))
	order := make([]string, 0, len(aggregates))

	for _, agg := range aggregates {
		key := agg.ShortName
		seen[key] = true
		order = append(order, key)

		circle, exists := c.circles[key]
		if !exists {
			circle = &Circle{Key: key}
			c.circles[key] = circle
			rec.Entered = append(rec.Entered, key)
		} else {
			rec.Updated = append(rec.Updated, key)
		}

		ratio := traffic.FlowRatio(agg.Departures, agg.TotalTraffic)
		circle.Radius = scale.Radius(agg.TotalTraffic)
		circle.FlowStep = traffic.FlowRatioStep(ratio)
		circle.Departures = agg.Departures
		circle.Arrivals = agg.Arrivals
		circle.TotalTraffic = agg.TotalTraffic
		circle.Tooltip = fmt.Sprintf("%d trips (%d departures, %d arrivals)",
			agg.TotalTraffic, agg.Departures, agg.Arrivals)
	}

	for key := range c.circles {
		if !seen[key] {
			delete(c.circles, key)
			rec.Exited = append(rec.Exited, key)
		}
	}

	c.order = order
	return rec
}

// repositionLocked reprojects every bound circle through the current
// viewport. It is the only work done on map movement.
func (c *Controller) repositionLocked() {
	for key, circle := range c.circles {
		station, ok := c.byKey[key]
		if !ok {
			continue
		}
		p := c.viewport.Project(station.Lon.Float64(), station.Lat.Float64())
		circle.X = p.X
		circle.Y = p.Y
	}
}
