package traffic

import "github.com/lmalottucsd/bikewatching/internal/models"

// AnyTime is the sentinel filter value meaning "show all trips regardless
// of time of day". It matches the slider's reserved position.
const AnyTime = -1

// FilterWindowMinutes is the half-width of the time window applied around
// the selected minute, inclusive on both ends.
const FilterWindowMinutes = 60

// IsValidFilter reports whether m is the sentinel or a minute-of-day.
func IsValidFilter(m int) bool {
	return m == AnyTime || (m >= 0 && m < MinutesPerDay)
}

// FilterTripsByTime returns the trips whose start or end minute-of-day
// falls within FilterWindowMinutes of the selected minute. When minutes is
// AnyTime the input slice itself is returned; callers must treat the result
// as read-only either way.
//
// The comparison is plain wall-clock arithmetic with no wraparound across
// midnight: a filter at minute 5 does not match a trip ending at minute
// 1430. Late-night windows are therefore clipped at the day boundary, which
// mirrors how the slider presents a single day.
func FilterTripsByTime(trips []models.Trip, minutes int) []models.Trip {
	if minutes == AnyTime {
		return trips
	}

	filtered := make([]models.Trip, 0, len(trips))
	for _, trip := range trips {
		start := MinutesSinceMidnight(trip.StartedAt)
		end := MinutesSinceMidnight(trip.EndedAt)
		if absInt(start-minutes) <= FilterWindowMinutes || absInt(end-minutes) <= FilterWindowMinutes {
			filtered = append(filtered, trip)
		}
	}
	return filtered
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
