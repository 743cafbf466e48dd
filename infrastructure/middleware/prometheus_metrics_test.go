package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-stump/internal/ports"
)

func newTestMetrics(t *testing.T) *PrometheusMetrics {
	t.Helper()
	// A fresh registry per test avoids duplicate registration panics.
	return NewPrometheusMetricsWith(prometheus.NewRegistry())
}

func TestNewPrometheusMetrics(t *testing.T) {
	pm := newTestMetrics(t)

	require.NotNil(t, pm)
	assert.NotNil(t, pm.runLatency)
	assert.NotNil(t, pm.runCounter)
	assert.NotNil(t, pm.satisfaction)
	assert.NotNil(t, pm.electionGauges)

	var _ ports.MetricsCollector = pm
}

func TestPrometheusMetricsRecordLatency(t *testing.T) {
	pm := newTestMetrics(t)

	tests := []struct {
		name      string
		operation string
		labels    map[string]string
	}{
		{
			name:      "with method label",
			operation: "election_run",
			labels:    map[string]string{"method": "plurality"},
		},
		{
			name:      "without method label",
			operation: "election_run",
			labels:    map[string]string{"other": "value"},
		},
		{
			name:      "nil labels",
			operation: "election_run",
			labels:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordLatency(tt.operation, 100*time.Millisecond, tt.labels)
			})
		})
	}
}

func TestPrometheusMetricsRecordCounter(t *testing.T) {
	pm := newTestMetrics(t)

	pm.RecordCounter("election_run", 1, map[string]string{"method": "instant_runoff"})
	pm.RecordCounter("election_run", 1, map[string]string{"method": "instant_runoff"})
	pm.RecordCounter("election_run", 1, map[string]string{
		"method": "instant_runoff",
		"status": "error",
	})

	success := pm.runCounter.WithLabelValues("election_run", "success", "instant_runoff")
	assert.InDelta(t, 2, testutil.ToFloat64(success), 1e-9)

	failed := pm.runCounter.WithLabelValues("election_run", "error", "instant_runoff")
	assert.InDelta(t, 1, testutil.ToFloat64(failed), 1e-9)

	// A missing method label falls back to "unknown".
	pm.RecordCounter("election_run", 1, nil)
	unknown := pm.runCounter.WithLabelValues("election_run", "success", "unknown")
	assert.InDelta(t, 1, testutil.ToFloat64(unknown), 1e-9)
}

func TestPrometheusMetricsRecordGauge(t *testing.T) {
	pm := newTestMetrics(t)

	pm.RecordGauge("voter_satisfaction", -0.42, map[string]string{
		"method":   "primary",
		"district": "CA-15",
	})
	sat := pm.satisfaction.WithLabelValues("primary", "CA-15")
	assert.InDelta(t, -0.42, testutil.ToFloat64(sat), 1e-9)

	pm.RecordGauge("slate_size", 5, map[string]string{"method": "primary"})
	size := pm.electionGauges.WithLabelValues("slate_size", "primary")
	assert.InDelta(t, 5, testutil.ToFloat64(size), 1e-9)
}

func TestPrometheusMetricsNegativeCounterPanics(t *testing.T) {
	pm := newTestMetrics(t)

	assert.Panics(t, func() {
		pm.RecordCounter("election_run", -1, map[string]string{"method": "plurality"})
	})
}
