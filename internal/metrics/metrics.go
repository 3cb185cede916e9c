// Package metrics defines the Prometheus metrics for the monitor.
//
// Naming follows Prometheus conventions: chainwatch_ prefix, _total
// suffix for counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chainwatch/pkg/models"
)

var (
	// DisruptionsIngested counts ingested disruptions by type and severity.
	DisruptionsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainwatch_disruptions_ingested_total",
			Help: "Total disruptions ingested, by type and severity.",
		},
		[]string{"type", "severity"},
	)

	// AlertsGenerated counts generated alerts by urgency tier.
	AlertsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainwatch_alerts_generated_total",
			Help: "Total alerts generated, by urgency tier.",
		},
		[]string{"urgency"},
	)

	// IngestFailures counts rejected or failed ingests.
	IngestFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chainwatch_ingest_failures_total",
			Help: "Total disruptions rejected or failed during ingest.",
		},
	)

	// ActiveDisruptions tracks the size of the active set.
	ActiveDisruptions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainwatch_active_disruptions",
			Help: "Number of currently tracked disruptions.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		DisruptionsIngested,
		AlertsGenerated,
		IngestFailures,
		ActiveDisruptions,
	)
}

// MonitorObserver updates metrics on ingest outcomes.
type MonitorObserver struct{}

// AlertGenerated records a generated alert.
func (MonitorObserver) AlertGenerated(alert *models.Alert) {
	DisruptionsIngested.WithLabelValues(string(alert.Disruption.Type), string(alert.Disruption.Severity)).Inc()
	AlertsGenerated.WithLabelValues(urgencyTier(alert.Urgency)).Inc()
}

// IngestFailed records an ingest failure.
func (MonitorObserver) IngestFailed(d *models.Disruption, err error) {
	IngestFailures.Inc()
}

// urgencyTier extracts the tier word from an urgency label.
func urgencyTier(urgency string) string {
	for i := 0; i < len(urgency); i++ {
		if urgency[i] == ' ' {
			return urgency[:i]
		}
	}
	return urgency
}

// Serve exposes /metrics on addr. It blocks until the server fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
