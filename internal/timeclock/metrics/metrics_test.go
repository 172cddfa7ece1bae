package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			if m.GetCounter() != nil {
				total += m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		return total
	}

	t.Fatalf("metric %s not found", name)
	return 0
}

func TestCollectorRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordClockEvent("IN")
	c.RecordClockEvent("IN")
	c.RecordClockEvent("OUT")
	c.RecordClockRejected("outside_perimeter")
	c.RecordUserProvisioned()

	require.Equal(t, 3.0, gatherValue(t, reg, "timeclock_clock_events_total"))
	require.Equal(t, 1.0, gatherValue(t, reg, "timeclock_clock_rejected_total"))
	require.Equal(t, 1.0, gatherValue(t, reg, "timeclock_users_provisioned_total"))
}

func TestCollectorRecordsHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordGeofenceDistance(42.5)
	c.RecordGeofenceDistance(1500)
	c.RecordReportLatency(25 * time.Millisecond)

	require.Equal(t, 2.0, gatherValue(t, reg, "timeclock_geofence_distance_meters"))
	require.Equal(t, 1.0, gatherValue(t, reg, "timeclock_report_latency_seconds"))
}

func TestHandlerServesScrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordClockEvent("IN")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `timeclock_clock_events_total{kind="IN"} 1`)
}
