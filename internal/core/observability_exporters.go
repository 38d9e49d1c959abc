package core

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names reported to a MetricsRecorder.
const (
	opLoad      = "load"
	opMerge     = "merge"
	opWithdraw  = "withdraw"
	opRemove    = "remove"
	opSetAmount = "set_amount"
	opClear     = "clear"
	opSave      = "save"
)

// MetricsRecorder receives the outcome and duration of each service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// entriesGauge is implemented by recorders that also track list size.
type entriesGauge interface {
	SetEntries(n int)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

// PrometheusRecorder publishes operation counters, latencies and the current
// number of shopping list entries.
type PrometheusRecorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	entries    prometheus.Gauge
}

// NewPrometheusRecorder constructs a recorder and registers its collectors on
// reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoplist",
			Name:      "operations_total",
			Help:      "Shopping list operations by outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shoplist",
			Name:      "operation_duration_seconds",
			Help:      "Shopping list operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shoplist",
			Name:      "entries",
			Help:      "Number of entries currently on the shopping list.",
		}),
	}
	cs := []prometheus.Collector{r.operations, r.durations, r.entries}
	for i, c := range cs {
		if err := reg.Register(c); err != nil {
			// leave reg as it was so a later attempt can succeed
			for _, done := range cs[:i] {
				reg.Unregister(done)
			}
			return nil, fmt.Errorf("register shoplist metrics: %w", err)
		}
	}
	return r, nil
}

// Observe records a service operation outcome.
func (r *PrometheusRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetEntries updates the entries gauge.
func (r *PrometheusRecorder) SetEntries(n int) {
	r.entries.Set(float64(n))
}
