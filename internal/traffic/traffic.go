// Package traffic implements the station traffic pipeline: grouping trips
// into per-station arrival/departure counts, filtering trips by time of
// day, and the numeric scales that turn counts into circle radii and
// departure-ratio buckets.
package traffic

import "github.com/lmalottucsd/bikewatching/internal/models"

// ComputeStationTraffic groups trips by station and returns one
// StationTraffic per input station, preserving input order and cardinality.
// Stations untouched by any trip are kept with zero counts. Trips that
// reference a station id not present in stations contribute to nothing;
// they are not an error.
//
// The input station slice is never mutated; every call produces a fresh
// derived copy.
func ComputeStationTraffic(stations []models.Station, trips []models.Trip) []models.StationTraffic {
	departures := make(map[string]int, len(stations))
	arrivals := make(map[string]int, len(stations))

	for _, trip := range trips {
		departures[trip.StartStationID]++
		arrivals[trip.EndStationID]++
	}

	out := make([]models.StationTraffic, len(stations))
	for i, station := range stations {
		dep := departures[station.ShortName]
		arr := arrivals[station.ShortName]
		out[i] = models.StationTraffic{
			Station:      station,
			Arrivals:     arr,
			Departures:   dep,
			TotalTraffic: arr + dep,
		}
	}
	return out
}

// MaxTotalTraffic returns the largest TotalTraffic in the aggregate set,
// or 0 for an empty set. It feeds the radius scale domain, which must be
// recomputed from the currently visible aggregates on every filter change.
func MaxTotalTraffic(stations []models.StationTraffic) int {
	max := 0
	for _, s := range stations {
		if s.TotalTraffic > max {
			max = s.TotalTraffic
		}
	}
	return max
}
