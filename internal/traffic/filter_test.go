package traffic

import (
	"testing"

	"github.com/lmalottucsd/bikewatching/internal/models"
)

func TestFilterTripsByTimeSentinelIsIdentity(t *testing.T) {
	trips := []models.Trip{
		makeTrip("A", "B", "08:00", "08:20"),
		makeTrip("B", "A", "22:00", "22:30"),
	}

	got := FilterTripsByTime(trips, AnyTime)

	if len(got) != len(trips) {
		t.Fatalf("expected all %d trips, got %d", len(trips), len(got))
	}
	// Identity, not a copy: the caller must get the same backing array.
	if &got[0] != &trips[0] {
		t.Error("expected the input slice itself at the sentinel, got a copy")
	}
}

func TestFilterTripsByTimeWindow(t *testing.T) {
	// One trip starting at minute 700 (11:40 AM), ending at minute 730.
	trips := []models.Trip{makeTrip("A", "B", "11:40", "12:10")}

	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{"fifty before start", 650, 1},
		{"thirty after end", 760, 1},
		{"exactly sixty before start", 640, 1},
		{"exactly sixty after end", 790, 1},
		{"sixty-one before start", 639, 0},
		{"far away", 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTripsByTime(trips, tt.minutes)
			if len(got) != tt.want {
				t.Errorf("filter at minute %d: got %d trips, want %d", tt.minutes, len(got), tt.want)
			}
		})
	}
}

func TestFilterTripsByTimeNoMidnightWraparound(t *testing.T) {
	// Trip ending at minute 1430 (11:50 PM). A filter at minute 5 is only
	// 35 real minutes later across midnight, but the window does not wrap.
	trips := []models.Trip{makeTrip("A", "B", "23:40", "23:50")}

	if got := FilterTripsByTime(trips, 5); len(got) != 0 {
		t.Errorf("filter at minute 5 matched a late-night trip: the window must not wrap across midnight")
	}
	if got := FilterTripsByTime(trips, 1400); len(got) != 1 {
		t.Errorf("filter at minute 1400 should match the late-night trip")
	}
}

func TestIsValidFilter(t *testing.T) {
	valid := []int{AnyTime, 0, 720, 1439}
	for _, m := range valid {
		if !IsValidFilter(m) {
			t.Errorf("expected %d to be a valid filter value", m)
		}
	}

	invalid := []int{-2, 1440, 100000}
	for _, m := range invalid {
		if IsValidFilter(m) {
			t.Errorf("expected %d to be rejected", m)
		}
	}
}
