package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Coord is a longitude or latitude value that may arrive from the station
// feed either as a JSON number or as a numeric string ("-71.0894"). It is
// coerced to float64 once at decode time so every downstream consumer
// (projection, bounding box) works with plain numbers.
type Coord float64

// UnmarshalJSON accepts both `-71.08` and `"-71.08"`.
func (c *Coord) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Coord(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("coordinate is neither number nor string: %s", b)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("coordinate string %q is not numeric: %w", s, err)
	}
	*c = Coord(n)
	return nil
}

// Float64 returns the underlying numeric value.
func (c Coord) Float64() float64 {
	return float64(c)
}

// Station is one fixed bike-share dock, identified by its short code.
// The canonical station list is loaded once at startup and never mutated;
// traffic counts live on StationTraffic copies, not here.
type Station struct {
	ShortName string `json:"short_name"`
	Name      string `json:"name,omitempty"`
	Lon       Coord  `json:"lon"`
	Lat       Coord  `json:"lat"`
	Capacity  int    `json:"capacity,omitempty"`
}

// Trip is one rental event. Timestamps are parsed at load time, never kept
// as raw strings.
type Trip struct {
	RideID         string
	StartStationID string
	EndStationID   string
	StartedAt      time.Time
	EndedAt        time.Time
}

// StationTraffic is a station augmented with derived trip counts for the
// current filtered view. TotalTraffic is always Arrivals + Departures.
type StationTraffic struct {
	Station
	Arrivals     int `json:"arrivals"`
	Departures   int `json:"departures"`
	TotalTraffic int `json:"total_traffic"`
}

// DataSources names the three remote datasets fetched once at startup.
type DataSources struct {
	StationsURL  string `json:"stations_url"`
	TripsURL     string `json:"trips_url"`
	BikeLanesURL string `json:"bike_lanes_url"`
}

// Validate checks that the two required dataset URLs are present. The lane
// network is optional; the map simply renders without the line layer.
func (ds DataSources) Validate() error {
	if ds.StationsURL == "" {
		return fmt.Errorf("data sources: stations_url is required")
	}
	if ds.TripsURL == "" {
		return fmt.Errorf("data sources: trips_url is required")
	}
	return nil
}
