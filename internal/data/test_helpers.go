package data

import (
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/lmalottucsd/bikewatching/internal/models"
)

// newTestService builds a Service with fresh stores and the given client.
// A nil client gets a plain one with a short timeout.
func newTestService(t *testing.T, client *http.Client) *Service {
	t.Helper()

	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewService(NewStationStore(), NewTripStore(), NewLaneStore(), logger, client)
}

// testSources builds a DataSources pointing at test servers.
func testSources(stationsURL, tripsURL, lanesURL string) models.DataSources {
	return models.DataSources{
		StationsURL:  stationsURL,
		TripsURL:     tripsURL,
		BikeLanesURL: lanesURL,
	}
}

// stationJSON is a minimal GBFS station_information document. One station
// carries string coordinates to exercise the numeric coercion path.
const stationJSON = `{
	"data": {
		"stations": [
			{"short_name": "A32000", "name": "Central Square", "lon": -71.1031, "lat": 42.3655, "capacity": 19},
			{"short_name": "B32001", "name": "Kendall T", "lon": "-71.0861", "lat": "42.3625"},
			{"short_name": "", "name": "nameless", "lon": -71.1, "lat": 42.36},
			{"short_name": "ZERO", "name": "null island dock", "lon": 0, "lat": 0}
		]
	}
}`

// tripCSV is a minimal trip history with one malformed row.
const tripCSV = `ride_id,rideable_type,started_at,ended_at,start_station_id,end_station_id,member_casual
r1,classic,2024-03-12 08:00:00,2024-03-12 08:20:00,A32000,B32001,member
r2,classic,2024-03-12 17:30:00,2024-03-12 17:55:00,B32001,A32000,casual
r3,classic,not-a-time,2024-03-12 18:00:00,A32000,B32001,member
`

// laneGeoJSON is a single-feature FeatureCollection.
const laneGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[-71.1, 42.36], [-71.09, 42.37]]}, "properties": {}}
	]
}`
