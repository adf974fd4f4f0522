package traffic

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a wall-clock day; valid
// minute-of-day values are [0, MinutesPerDay-1].
const MinutesPerDay = 24 * 60

// MinutesSinceMidnight converts a timestamp to its minute-of-day in
// [0, 1439]. Only the hour and minute components matter; the date and
// seconds are ignored.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders a minute-of-day as a 12-hour clock string, e.g.
// 0 -> "12:00 AM", 719 -> "11:59 AM", 720 -> "12:00 PM", 1439 -> "11:59 PM".
// Values outside [0, 1439] are wrapped into range so a caller with a raw
// slider value cannot produce a nonsense label.
func FormatMinutes(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	hour := m / 60
	minute := m % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minute, period)
}
