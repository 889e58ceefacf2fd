// Package metrics holds the Prometheus instrumentation of the bridge service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation is the label value naming a token operation.
type Operation string

const (
	OperationEncode Operation = "encode"
	OperationDecode Operation = "decode"
	OperationVerify Operation = "verify"
)

// ResultSuccess is the result label of a successful operation. Failures are
// labeled with their error kind, e.g. "expired" or "invalid_signature".
const ResultSuccess = "success"

// TokenMetrics holds metrics of token operations
type TokenMetrics struct {
	Operations    *prometheus.CounterVec
	OperationTime *prometheus.HistogramVec
	InFlight      prometheus.Gauge
	BatchSize     prometheus.Histogram
}

// NewTokenMetrics creates the token metrics and registers them with "reg".
// A nil registerer creates unregistered collectors, useful in tests.
func NewTokenMetrics(reg prometheus.Registerer) *TokenMetrics {
	factory := promauto.With(reg)
	return &TokenMetrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jwtengine_token_operations_total",
			Help: "The total number of token operations by operation, algorithm and result",
		}, []string{"operation", "alg", "result"}),

		OperationTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jwtengine_token_operation_duration_seconds",
			Help:    "Histogram of time taken by token operations (in seconds)",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		}, []string{"operation", "alg"}),

		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "jwtengine_token_operations_in_flight",
			Help: "The number of token operations currently holding a worker slot",
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "jwtengine_verify_batch_size",
			Help:    "Histogram of the number of tokens per batch verification",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
}

// Observe records one finished operation. It is safe on a nil receiver.
// The algorithm label may be empty when the token was too malformed to name one.
func (m *TokenMetrics) Observe(op Operation, alg, result string, took time.Duration) {
	if m == nil {
		return
	}

	if alg == "" {
		alg = "unknown"
	}
	m.Operations.WithLabelValues(string(op), alg, result).Inc()
	m.OperationTime.WithLabelValues(string(op), alg).Observe(took.Seconds())
}

// Acquired tracks a worker slot being taken (delta 1) or released (delta -1).
func (m *TokenMetrics) Acquired(delta float64) {
	if m == nil {
		return
	}
	m.InFlight.Add(delta)
}

// Batch records the size of a batch verification.
func (m *TokenMetrics) Batch(size int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
}
