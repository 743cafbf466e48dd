// Package middleware provides cross-cutting concerns for election runs.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-stump/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks election run latency, outcome counts, and
// electorate-level gauges like voter satisfaction.
type PrometheusMetrics struct {
	runLatency     *prometheus.HistogramVec
	runCounter     *prometheus.CounterVec
	satisfaction   *prometheus.GaugeVec
	electionGauges *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance registered in
// the default Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a PrometheusMetrics instance registered
// against the given registerer. Tests pass a fresh registry to avoid
// duplicate registration panics.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		runLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "election_run_duration_seconds",
				Help:    "Execution time of election runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "method"},
		),
		runCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "election_runs_total",
				Help: "Total number of election runs by outcome.",
			},
			[]string{"operation", "status", "method"},
		),
		satisfaction: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "election_voter_satisfaction",
				Help: "Voter satisfaction of the most recent winner.",
			},
			[]string{"method", "district"},
		),
		electionGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "election_state",
				Help: "Current state values for election runs.",
			},
			[]string{"metric", "method"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// run latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	method, ok := labels["method"]
	if !ok {
		method = "unknown"
	}
	pm.runLatency.WithLabelValues(operation, method).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	method, ok := labels["method"]
	if !ok {
		method = "unknown"
	}

	status, ok := labels["status"]
	if !ok {
		status = "success"
	}
	pm.runCounter.WithLabelValues(metric, status, method).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	method, ok := labels["method"]
	if !ok {
		method = "unknown"
	}

	if metric == "voter_satisfaction" {
		pm.satisfaction.WithLabelValues(method, labels["district"]).Set(value)
		return
	}
	pm.electionGauges.WithLabelValues(metric, method).Set(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
