package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarwatch_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solarwatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ClassifierRequestsTotal counts calls to the fault classifier by outcome
	ClassifierRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarwatch_classifier_requests_total",
			Help: "Total number of fault classifier calls",
		},
		[]string{"outcome"},
	)

	// ClassifierRequestDuration observes classifier call latency
	ClassifierRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solarwatch_classifier_request_duration_seconds",
			Help:    "Fault classifier call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PredictionsTotal counts stored predictions by fault type and severity
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarwatch_predictions_total",
			Help: "Total number of stored fault predictions",
		},
		[]string{"fault_type", "severity"},
	)

	// AlertsTotal counts generated alerts by fault type and severity
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solarwatch_alerts_total",
			Help: "Total number of generated maintenance alerts",
		},
		[]string{"fault_type", "severity"},
	)

	// OpenAlerts tracks the number of alerts currently open
	OpenAlerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "solarwatch_open_alerts",
			Help: "Number of alerts currently in the OPEN state",
		},
	)
)

// RecordHTTPRequest records one completed HTTP request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordClassifierCall records one classifier call with its outcome
func RecordClassifierCall(outcome string, duration time.Duration) {
	ClassifierRequestsTotal.WithLabelValues(outcome).Inc()
	ClassifierRequestDuration.Observe(duration.Seconds())
}

// RecordPrediction records one stored prediction
func RecordPrediction(faultType, severity string) {
	PredictionsTotal.WithLabelValues(faultType, severity).Inc()
}

// RecordAlert records one generated alert
func RecordAlert(faultType, severity string) {
	AlertsTotal.WithLabelValues(faultType, severity).Inc()
}
