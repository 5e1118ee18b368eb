package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	first := NewMetrics(prometheus.NewRegistry())
	second := NewMetrics(prometheus.NewRegistry())

	first.FetchRequestsTotal.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.FetchRequestsTotal.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.FetchRequestsTotal.WithLabelValues("success")))
}

func TestNewMetrics_Gathers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.CachedDates.Set(3)
	m.CacheLookupsTotal.WithLabelValues("hit").Inc()

	count, err := testutil.GatherAndCount(reg, "rate_cache_dates", "rate_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
