// Package metrics defines the Prometheus instruments exported by the
// service: dataset sizes, scene recompute timing, and outgoing HTTP
// latency for the dataset fetches.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StationsTotal is the size of the canonical station list loaded at startup.
	StationsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatching_stations_total",
		Help: "Number of stations in the loaded station metadata",
	})

	// TripsTotal is the size of the trip history loaded at startup.
	TripsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatching_trips_total",
		Help: "Number of trips in the loaded trip history",
	})

	// TripsSkipped counts CSV rows dropped at load time (bad timestamps,
	// missing columns).
	TripsSkipped = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatching_trips_skipped_total",
		Help: "Number of trip CSV rows skipped during load due to parse errors",
	})
)

var (
	// FilteredTrips is the number of trips in the current time-filtered view.
	FilteredTrips = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatching_filtered_trips",
		Help: "Number of trips matching the current time filter",
	})

	// MaxTotalTraffic is the radius scale's current domain upper bound.
	MaxTotalTraffic = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatching_max_total_traffic",
		Help: "Maximum total traffic across stations in the current filtered view",
	})

	// VisibleCircles is the number of circles currently bound to the scene.
	VisibleCircles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bikewatching_visible_circles",
		Help: "Number of station circles currently bound to the scene",
	})

	// SceneRecomputeDuration times one full filter -> aggregate -> scale ->
	// reconcile -> reproject pass. There is no debouncing on filter events,
	// so this is where slider jank would show up.
	SceneRecomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bikewatching_scene_recompute_duration_seconds",
		Help:    "Duration of a full scene recompute triggered by a filter change",
		Buckets: prometheus.DefBuckets,
	})
)

var (
	// DatasetLoadSeconds records how long each startup dataset fetch took.
	DatasetLoadSeconds = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bikewatching_dataset_load_seconds",
		Help: "Time spent fetching and parsing each startup dataset",
	}, []string{"dataset"})

	// OutgoingLatency tracks latency of outgoing HTTP requests made by the
	// instrumented dataset client, labeled by URL, method and status.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bikewatching_outgoing_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests for remote datasets",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)
