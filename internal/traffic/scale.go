package traffic

import "math"

// Radius scale pixel ranges. The filtered range has a non-zero floor so
// that once the dataset shrinks under a time filter, zero-traffic stations
// still render a small dot instead of vanishing.
const (
	radiusMaxUnfiltered = 20.0
	radiusMinFiltered   = 2.0
	radiusMaxFiltered   = 25.0
)

// SqrtScale maps a traffic count in [0, DomainMax] to a pixel radius in
// [RangeMin, RangeMax] along a square-root curve, so circle *area* tracks
// traffic roughly linearly.
type SqrtScale struct {
	DomainMax float64
	RangeMin  float64
	RangeMax  float64
}

// NewRadiusScale builds the radius scale for the current view. The domain
// upper bound is the maximum total traffic across the post-filter
// aggregates; the range depends on whether a time filter is active.
func NewRadiusScale(maxTraffic int, filtered bool) SqrtScale {
	s := SqrtScale{DomainMax: float64(maxTraffic), RangeMin: 0, RangeMax: radiusMaxUnfiltered}
	if filtered {
		s.RangeMin = radiusMinFiltered
		s.RangeMax = radiusMaxFiltered
	}
	return s
}

// Radius maps a traffic count to pixels. Counts outside the domain are
// clamped. A degenerate domain (max 0) collapses to the range minimum.
func (s SqrtScale) Radius(traffic int) float64 {
	if s.DomainMax <= 0 {
		return s.RangeMin
	}
	v := float64(traffic)
	if v < 0 {
		v = 0
	}
	if v > s.DomainMax {
		v = s.DomainMax
	}
	t := math.Sqrt(v / s.DomainMax)
	return s.RangeMin + t*(s.RangeMax-s.RangeMin)
}

// FlowRatio returns departures/total with an explicit guard: a
// zero-traffic station yields 0 rather than a NaN that would propagate
// into an undefined visual state.
func FlowRatio(departures, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(departures) / float64(total)
}

// FlowRatioStep quantizes a departure ratio in [0,1] into the three
// discrete buckets {0, 0.5, 1} that drive the circle color blend:
// arrival-dominant, balanced, departure-dominant. Out-of-range input is
// clamped before bucketing.
func FlowRatioStep(ratio float64) float64 {
	if ratio < 1.0/3.0 {
		return 0
	}
	if ratio < 2.0/3.0 {
		return 0.5
	}
	return 1
}
