package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetricsRecorder exports service operation counts and latencies.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	warnings   *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder registers the service collectors on reg. A nil
// reg uses a private registry.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &PrometheusMetricsRecorder{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mecore_network_operations_total",
				Help: "Total number of network service operations",
			},
			[]string{"operation", "status"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mecore_network_operation_duration_seconds",
				Help:    "Network service operation duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
			},
			[]string{"operation"},
		),
		warnings: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mecore_network_warnings_total",
				Help: "Recoverable violations raised by network operations",
			},
			[]string{"operation", "rule"},
		),
	}
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveWarnings implements WarningsRecorder.
func (r *PrometheusMetricsRecorder) ObserveWarnings(_ context.Context, operation string, warnings []Violation) {
	for _, v := range warnings {
		r.warnings.WithLabelValues(operation, v.Rule).Inc()
	}
}
