package data

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/lmalottucsd/bikewatching/internal/metrics"
	"github.com/lmalottucsd/bikewatching/internal/models"
	"github.com/lmalottucsd/bikewatching/internal/report"
	"github.com/lmalottucsd/bikewatching/internal/utils"
)

// Service fetches the remote datasets and owns the stores they live in.
type Service struct {
	Stations *StationStore
	Trips    *TripStore
	Lanes    *LaneStore
	Logger   *slog.Logger
	Client   *http.Client
}

// NewService wires a Service around the given stores, logger and client.
func NewService(stations *StationStore, trips *TripStore, lanes *LaneStore, logger *slog.Logger, client *http.Client) *Service {
	return &Service{
		Stations: stations,
		Trips:    trips,
		Lanes:    lanes,
		Logger:   logger,
		Client:   client,
	}
}

// LoadAll fetches the datasets sequentially: stations, then trips, then
// the lane network. The trip fetch does not start until the station fetch
// completes; total startup latency is the sum of the fetches, which keeps
// the error handling a single linear path. Any failure on the two
// required datasets aborts the whole load — there is no partial or
// degraded rendering mode. The lane network is optional decoration; a
// missing URL skips it.
func (s *Service) LoadAll(ctx context.Context, sources models.DataSources) error {
	stations, err := s.timedLoad(ctx, "stations", sources.StationsURL, func(ctx context.Context) (int, error) {
		stations, err := s.fetchStations(ctx, sources.StationsURL)
		if err != nil {
			return 0, err
		}
		s.Stations.Set(stations)
		metrics.StationsTotal.Set(float64(len(stations)))
		return len(stations), nil
	})
	if err != nil {
		return err
	}

	trips, err := s.timedLoad(ctx, "trips", sources.TripsURL, func(ctx context.Context) (int, error) {
		trips, err := s.fetchTrips(ctx, sources.TripsURL)
		if err != nil {
			return 0, err
		}
		s.Trips.Set(trips)
		metrics.TripsTotal.Set(float64(len(trips)))
		return len(trips), nil
	})
	if err != nil {
		return err
	}

	s.Logger.Info("datasets loaded", "stations", stations, "trips", trips)

	if sources.BikeLanesURL == "" {
		s.Logger.Info("no bike lane source configured, skipping line layer")
		return nil
	}

	_, err = s.timedLoad(ctx, "bike_lanes", sources.BikeLanesURL, func(ctx context.Context) (int, error) {
		lanes, err := s.fetchBikeLanes(ctx, sources.BikeLanesURL)
		if err != nil {
			return 0, err
		}
		s.Lanes.Set(lanes)
		return len(lanes.GeoJSON), nil
	})
	return err
}

// timedLoad runs one dataset fetch, records its duration, and reports
// failures to Sentry tagged with the dataset and URL.
func (s *Service) timedLoad(ctx context.Context, dataset, url string, load func(context.Context) (int, error)) (int, error) {
	start := time.Now()
	n, err := load(ctx)
	metrics.DatasetLoadSeconds.WithLabelValues(dataset).Set(time.Since(start).Seconds())

	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("dataset", dataset),
			ExtraContext: map[string]interface{}{
				"url": url,
			},
			Level: sentry.LevelError,
		})
		return 0, fmt.Errorf("loading %s dataset: %w", dataset, err)
	}
	return n, nil
}
