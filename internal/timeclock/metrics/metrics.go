// Package metrics collects and exposes Prometheus metrics for the
// timeclock service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the service layer uses to record outcomes.
type Recorder interface {
	RecordClockEvent(kind string)
	RecordClockRejected(reason string)
	RecordGeofenceDistance(meters float64)
	RecordReportLatency(duration time.Duration)
	RecordUserProvisioned()
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	clockEvents      *prometheus.CounterVec
	clockRejected    *prometheus.CounterVec
	geofenceDistance prometheus.Histogram
	reportLatency    prometheus.Histogram
	usersProvisioned prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		clockEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_clock_events_total",
			Help: "Accepted clock events by kind (IN/OUT).",
		}, []string{"kind"}),
		clockRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_clock_rejected_total",
			Help: "Rejected clock attempts by reason.",
		}, []string{"reason"}),
		geofenceDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeclock_geofence_distance_meters",
			Help:    "Distance from the site center at clock time, in meters.",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2000, 5000},
		}),
		reportLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeclock_report_latency_seconds",
			Help:    "Latency of report generation in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		usersProvisioned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeclock_users_provisioned_total",
			Help: "Users auto-provisioned from verified claims.",
		}),
	}

	reg.MustRegister(
		c.clockEvents,
		c.clockRejected,
		c.geofenceDistance,
		c.reportLatency,
		c.usersProvisioned,
	)

	return c
}

// RecordClockEvent records an accepted clock event.
func (c *Collector) RecordClockEvent(kind string) {
	c.clockEvents.WithLabelValues(kind).Inc()
}

// RecordClockRejected records a rejected clock attempt.
func (c *Collector) RecordClockRejected(reason string) {
	c.clockRejected.WithLabelValues(reason).Inc()
}

// RecordGeofenceDistance records how far from the site center a clock
// attempt was made.
func (c *Collector) RecordGeofenceDistance(meters float64) {
	c.geofenceDistance.Observe(meters)
}

// RecordReportLatency records how long report generation took.
func (c *Collector) RecordReportLatency(duration time.Duration) {
	c.reportLatency.Observe(duration.Seconds())
}

// RecordUserProvisioned records an auto-provisioned user.
func (c *Collector) RecordUserProvisioned() {
	c.usersProvisioned.Inc()
}

// Nop is a Recorder that discards everything. Used in tests and when
// metrics are disabled.
type Nop struct{}

func (Nop) RecordClockEvent(string)           {}
func (Nop) RecordClockRejected(string)        {}
func (Nop) RecordGeofenceDistance(float64)    {}
func (Nop) RecordReportLatency(time.Duration) {}
func (Nop) RecordUserProvisioned()            {}

// Handler returns the HTTP handler that serves the Prometheus scrape
// endpoint for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
