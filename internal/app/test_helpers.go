package app

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/lmalottucsd/bikewatching/internal/config"
	"github.com/lmalottucsd/bikewatching/internal/data"
	"github.com/lmalottucsd/bikewatching/internal/models"
	"github.com/lmalottucsd/bikewatching/internal/view"
)

// newTestApplication builds an Application with preloaded in-memory
// datasets and a ready controller, skipping the network bootstrap.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	stations := []models.Station{
		{ShortName: "A32000", Name: "Central Square", Lon: -71.1031, Lat: 42.3655},
		{ShortName: "B32001", Name: "Kendall T", Lon: -71.0861, Lat: 42.3625},
	}

	started, _ := time.Parse("2006-01-02 15:04:05", "2024-03-12 08:00:00")
	trips := []models.Trip{
		{RideID: "r1", StartStationID: "A32000", EndStationID: "B32001", StartedAt: started, EndedAt: started.Add(20 * time.Minute)},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.NewConfig(4000, "testing", config.DefaultSources())

	app := New(cfg, logger, nil, "test-version")
	app.DataService.Stations.Set(stations)
	app.DataService.Trips.Set(trips)

	vp := view.NewViewport(view.DefaultCenterLon, view.DefaultCenterLat, view.DefaultZoom, 800, 600)
	app.Controller = view.NewController(stations, trips, vp, logger)

	return app
}

// setTestLanes stores a small lane network on the application.
func setTestLanes(t *testing.T, app *Application) {
	t.Helper()

	app.DataService.Lanes.Set(&data.LaneNetwork{
		GeoJSON: []byte(`{"type":"FeatureCollection","features":[]}`),
		Style:   data.DefaultLaneStyle(),
	})
}
