package data

import (
	"sync"

	"github.com/lmalottucsd/bikewatching/internal/models"
)

// StationStore is a thread-safe holder for the canonical station list.
// It is written once at startup and read-only afterwards; Get returns the
// shared slice and callers must not mutate it.
type StationStore struct {
	mu       sync.RWMutex
	stations []models.Station
}

// NewStationStore returns an empty StationStore.
func NewStationStore() *StationStore {
	return &StationStore{}
}

// Set stores the station list.
func (s *StationStore) Set(stations []models.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations = stations
}

// Get returns the station list and whether it has been loaded.
func (s *StationStore) Get() ([]models.Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stations, s.stations != nil
}

// TripStore is a thread-safe holder for the trip history, written once at
// startup. Consumers share the slice read-only.
type TripStore struct {
	mu    sync.RWMutex
	trips []models.Trip
}

// NewTripStore returns an empty TripStore.
func NewTripStore() *TripStore {
	return &TripStore{}
}

// Set stores the trip history.
func (s *TripStore) Set(trips []models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = trips
}

// Get returns the trip history and whether it has been loaded.
func (s *TripStore) Get() ([]models.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trips, s.trips != nil
}

// LaneStore is a thread-safe holder for the bike-lane network GeoJSON.
type LaneStore struct {
	mu    sync.RWMutex
	lanes *LaneNetwork
}

// NewLaneStore returns an empty LaneStore.
func NewLaneStore() *LaneStore {
	return &LaneStore{}
}

// Set stores the lane network.
func (s *LaneStore) Set(lanes *LaneNetwork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lanes = lanes
}

// Get returns the lane network, or nil if none was loaded.
func (s *LaneStore) Get() *LaneNetwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lanes
}
