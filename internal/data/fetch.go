// Package data fetches and holds the three remote datasets the
// visualization is built on: station metadata (GBFS-style JSON), the trip
// history CSV, and the bike-lane network GeoJSON. Everything is fetched
// once at startup and immutable for the rest of the session.
package data

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lmalottucsd/bikewatching/internal/config"
	"github.com/lmalottucsd/bikewatching/internal/geo"
	"github.com/lmalottucsd/bikewatching/internal/metrics"
	"github.com/lmalottucsd/bikewatching/internal/models"
)

const fetchMaxRetries = 2

// Trip timestamp layouts, tried in order. The Bluebikes export uses the
// first; RFC 3339 covers feeds that export with a timezone.
var tripTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// stationsResponse mirrors the GBFS station_information envelope:
// {"data": {"stations": [...]}}.
type stationsResponse struct {
	Data struct {
		Stations []models.Station `json:"stations"`
	} `json:"data"`
}

// fetchStations downloads and decodes the station metadata. Stations
// without a short code or with invalid coordinates are dropped with a
// warning; they could neither be keyed nor projected.
func (s *Service) fetchStations(ctx context.Context, url string) ([]models.Station, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	defer body.Close()

	var resp stationsResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding stations: %w", err)
	}

	stations := make([]models.Station, 0, len(resp.Data.Stations))
	for _, station := range resp.Data.Stations {
		if station.ShortName == "" {
			s.Logger.Warn("dropping station without short_name", "name", station.Name)
			continue
		}
		if !geo.IsValidLatLon(station.Lat.Float64(), station.Lon.Float64()) {
			s.Logger.Warn("dropping station with invalid coordinates",
				"short_name", station.ShortName, "lat", station.Lat.Float64(), "lon", station.Lon.Float64())
			continue
		}
		stations = append(stations, station)
	}

	if len(stations) == 0 {
		return nil, fmt.Errorf("station feed %s contained no usable stations", url)
	}
	return stations, nil
}

// fetchTrips downloads and parses the trip history CSV. Column order is
// not assumed; the header row is used to locate the four columns that
// matter. Malformed rows are skipped and counted, not fatal.
func (s *Service) fetchTrips(ctx context.Context, url string) ([]models.Trip, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching trips: %w", err)
	}
	defer body.Close()

	reader := csv.NewReader(body)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading trip CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"start_station_id", "end_station_id", "started_at", "ended_at"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("trip CSV is missing required column %q", required)
		}
	}
	rideIDCol, hasRideID := col["ride_id"]

	var trips []models.Trip
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		startedAt, okStart := parseTripTime(record[col["started_at"]])
		endedAt, okEnd := parseTripTime(record[col["ended_at"]])
		if !okStart || !okEnd {
			skipped++
			continue
		}

		trip := models.Trip{
			StartStationID: record[col["start_station_id"]],
			EndStationID:   record[col["end_station_id"]],
			StartedAt:      startedAt,
			EndedAt:        endedAt,
		}
		if hasRideID {
			trip.RideID = record[rideIDCol]
		}
		trips = append(trips, trip)
	}

	metrics.TripsSkipped.Set(float64(skipped))
	if skipped > 0 {
		s.Logger.Warn("skipped malformed trip rows", "skipped", skipped, "parsed", len(trips))
	}
	if len(trips) == 0 {
		return nil, fmt.Errorf("trip feed %s contained no parseable trips", url)
	}
	return trips, nil
}

func parseTripTime(value string) (time.Time, bool) {
	for _, layout := range tripTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LaneStyle is the paint applied to the bike-lane line layer, forwarded
// verbatim to the map client.
type LaneStyle struct {
	LineColor   string  `json:"line-color"`
	LineWidth   float64 `json:"line-width"`
	LineOpacity float64 `json:"line-opacity"`
}

// DefaultLaneStyle matches the original line-layer paint.
func DefaultLaneStyle() LaneStyle {
	return LaneStyle{LineColor: "green", LineWidth: 3, LineOpacity: 0.4}
}

// LaneNetwork is the fetched bike-lane GeoJSON, held as raw bytes so it is
// re-served to the client byte-for-byte, plus the layer style.
type LaneNetwork struct {
	GeoJSON json.RawMessage
	Style   LaneStyle
}

// fetchBikeLanes downloads the lane network and verifies it is a GeoJSON
// FeatureCollection before storing the raw document.
func (s *Service) fetchBikeLanes(ctx context.Context, url string) (*LaneNetwork, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching bike lanes: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading bike lanes: %w", err)
	}

	var probe struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("decoding bike lanes: %w", err)
	}
	if probe.Type != "FeatureCollection" {
		return nil, fmt.Errorf("bike lane document is %q, want a FeatureCollection", probe.Type)
	}

	s.Logger.Info("loaded bike lane network", "features", len(probe.Features))
	return &LaneNetwork{GeoJSON: raw, Style: DefaultLaneStyle()}, nil
}

// get performs one retried GET and hands back the body.
func (s *Service) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := config.DoWithBackoff(ctx, s.Client, req, fetchMaxRetries)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}
