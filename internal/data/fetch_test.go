package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchStations(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stationJSON))
	}))
	defer ts.Close()

	s := newTestService(t, nil)
	stations, err := s.fetchStations(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetchStations failed: %v", err)
	}

	// The nameless station and the (0,0) placeholder are dropped.
	if len(stations) != 2 {
		t.Fatalf("expected 2 usable stations, got %d", len(stations))
	}

	if stations[0].ShortName != "A32000" || stations[0].Capacity != 19 {
		t.Errorf("unexpected first station: %+v", stations[0])
	}

	// String coordinates must coerce to numbers.
	if stations[1].Lon.Float64() != -71.0861 || stations[1].Lat.Float64() != 42.3625 {
		t.Errorf("string coordinates not coerced: lon=%v lat=%v",
			stations[1].Lon.Float64(), stations[1].Lat.Float64())
	}
}

func TestFetchStationsBadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer ts.Close()

	s := newTestService(t, nil)
	if _, err := s.fetchStations(context.Background(), ts.URL); err == nil {
		t.Error("expected decode error, got none")
	}
}

func TestFetchTrips(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(tripCSV))
	}))
	defer ts.Close()

	s := newTestService(t, nil)
	trips, err := s.fetchTrips(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetchTrips failed: %v", err)
	}

	// Two good rows; the row with the bad timestamp is skipped, not fatal.
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}

	first := trips[0]
	if first.RideID != "r1" || first.StartStationID != "A32000" || first.EndStationID != "B32001" {
		t.Errorf("unexpected first trip: %+v", first)
	}

	want, _ := time.Parse("2006-01-02 15:04:05", "2024-03-12 08:00:00")
	if !first.StartedAt.Equal(want) {
		t.Errorf("started_at parsed to %v, want %v", first.StartedAt, want)
	}
	if first.EndedAt.Sub(first.StartedAt) != 20*time.Minute {
		t.Errorf("trip duration: got %v, want 20m", first.EndedAt.Sub(first.StartedAt))
	}
}

func TestFetchTripsMissingColumn(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ride_id,started_at,ended_at\nr1,2024-03-12 08:00:00,2024-03-12 08:20:00\n"))
	}))
	defer ts.Close()

	s := newTestService(t, nil)
	if _, err := s.fetchTrips(context.Background(), ts.URL); err == nil {
		t.Error("expected error for CSV without station columns, got none")
	}
}

func TestFetchBikeLanes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(laneGeoJSON))
	}))
	defer ts.Close()

	s := newTestService(t, nil)
	lanes, err := s.fetchBikeLanes(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetchBikeLanes failed: %v", err)
	}

	if len(lanes.GeoJSON) == 0 {
		t.Error("expected raw GeoJSON to be retained")
	}
	if lanes.Style != DefaultLaneStyle() {
		t.Errorf("unexpected lane style: %+v", lanes.Style)
	}
}

func TestFetchBikeLanesRejectsNonFeatureCollection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "Feature"}`))
	}))
	defer ts.Close()

	s := newTestService(t, nil)
	if _, err := s.fetchBikeLanes(context.Background(), ts.URL); err == nil {
		t.Error("expected error for non-FeatureCollection document, got none")
	}
}

func TestLoadAllAbortsOnFirstFailure(t *testing.T) {
	// Stations 500s every time; trips must never be requested.
	tripRequests := 0

	stations := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer stations.Close()

	trips := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tripRequests++
		w.Write([]byte(tripCSV))
	}))
	defer trips.Close()

	s := newTestService(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.LoadAll(ctx, testSources(stations.URL, trips.URL, ""))
	if err == nil {
		t.Fatal("expected LoadAll to fail when the station fetch fails")
	}
	if tripRequests != 0 {
		t.Errorf("trip fetch started despite station failure: %d requests", tripRequests)
	}
	if _, ok := s.Stations.Get(); ok {
		t.Error("no stations should be stored after an aborted load")
	}
}

func TestLoadAllSequentialSuccess(t *testing.T) {
	stations := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationJSON))
	}))
	defer stations.Close()

	trips := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tripCSV))
	}))
	defer trips.Close()

	lanes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(laneGeoJSON))
	}))
	defer lanes.Close()

	s := newTestService(t, nil)
	if err := s.LoadAll(context.Background(), testSources(stations.URL, trips.URL, lanes.URL)); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if got, ok := s.Stations.Get(); !ok || len(got) != 2 {
		t.Errorf("stations store: got %d stations, ok=%v", len(got), ok)
	}
	if got, ok := s.Trips.Get(); !ok || len(got) != 2 {
		t.Errorf("trips store: got %d trips, ok=%v", len(got), ok)
	}
	if s.Lanes.Get() == nil {
		t.Error("lane store is empty after a successful load")
	}
}

func TestLoadAllSkipsOptionalLanes(t *testing.T) {
	stations := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationJSON))
	}))
	defer stations.Close()

	trips := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tripCSV))
	}))
	defer trips.Close()

	s := newTestService(t, nil)
	if err := s.LoadAll(context.Background(), testSources(stations.URL, trips.URL, "")); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if s.Lanes.Get() != nil {
		t.Error("lane store should stay empty when no lane URL is configured")
	}
}
