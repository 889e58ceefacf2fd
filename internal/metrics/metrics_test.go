package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TokenMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTokenMetrics(reg)

	m.Observe(OperationEncode, "HS256", ResultSuccess, time.Millisecond)
	m.Observe(OperationVerify, "HS256", ResultSuccess, time.Millisecond)
	m.Observe(OperationVerify, "HS256", "expired", time.Millisecond)
	m.Observe(OperationVerify, "", "malformed_token", time.Microsecond)

	t.Run("Counters by label", func(t *testing.T) {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("encode", "HS256", ResultSuccess)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("verify", "HS256", "expired")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("verify", "unknown", "malformed_token")))
		assert.Equal(t, 4, testutil.CollectAndCount(m.Operations))
	})

	t.Run("Histograms by operation", func(t *testing.T) {
		assert.Equal(t, 3, testutil.CollectAndCount(m.OperationTime))
	})

	t.Run("Registered", func(t *testing.T) {
		families, err := reg.Gather()
		require.NoError(t, err)
		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.Contains(t, names, "jwtengine_token_operations_total")
		assert.Contains(t, names, "jwtengine_token_operation_duration_seconds")
	})
}

func Test_InFlightAndBatch(t *testing.T) {
	m := NewTokenMetrics(nil)

	m.Acquired(1)
	m.Acquired(1)
	m.Acquired(-1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))

	m.Batch(3)
	m.Batch(10)
	assert.Equal(t, 1, testutil.CollectAndCount(m.BatchSize))
}

func Test_NilRecorder(t *testing.T) {
	var m *TokenMetrics
	assert.NotPanics(t, func() {
		m.Observe(OperationDecode, "RS256", ResultSuccess, time.Second)
		m.Acquired(1)
		m.Batch(2)
	})
}
