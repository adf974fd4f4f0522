package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// gaugeValue reads the current value of a plain Gauge through the
// client_model DTO.
func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestDatasetGauges(t *testing.T) {
	StationsTotal.Set(42)
	TripsTotal.Set(1000)
	FilteredTrips.Set(120)

	if got := gaugeValue(t, StationsTotal); got != 42 {
		t.Errorf("StationsTotal: got %v, want 42", got)
	}
	if got := gaugeValue(t, TripsTotal); got != 1000 {
		t.Errorf("TripsTotal: got %v, want 1000", got)
	}
	if got := gaugeValue(t, FilteredTrips); got != 120 {
		t.Errorf("FilteredTrips: got %v, want 120", got)
	}
}

func TestDatasetLoadSecondsLabels(t *testing.T) {
	DatasetLoadSeconds.WithLabelValues("stations").Set(1.5)

	m := &dto.Metric{}
	if err := DatasetLoadSeconds.WithLabelValues("stations").Write(m); err != nil {
		t.Fatalf("failed to read labeled gauge: %v", err)
	}
	if got := m.GetGauge().GetValue(); got != 1.5 {
		t.Errorf("DatasetLoadSeconds{dataset=stations}: got %v, want 1.5", got)
	}
}
