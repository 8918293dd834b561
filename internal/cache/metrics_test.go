package cache

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := newStringInt(t, 4, identity)
	collector := NewCollector("lrucache", "test", c)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(collector))

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	_, _ = c.Get("nope")
	c.Set("c", 3)

	expected := `
# HELP lrucache_capacity Configured weight capacity.
# TYPE lrucache_capacity gauge
lrucache_capacity{cache="test"} 4
# HELP lrucache_evictions_total Entries evicted to restore capacity.
# TYPE lrucache_evictions_total counter
lrucache_evictions_total{cache="test"} 1
# HELP lrucache_hits_total Lookups that found their key.
# TYPE lrucache_hits_total counter
lrucache_hits_total{cache="test"} 1
# HELP lrucache_items Number of entries currently stored.
# TYPE lrucache_items gauge
lrucache_items{cache="test"} 2
# HELP lrucache_misses_total Lookups that did not find their key.
# TYPE lrucache_misses_total counter
lrucache_misses_total{cache="test"} 1
# HELP lrucache_weight Sum of the weights of all stored entries.
# TYPE lrucache_weight gauge
lrucache_weight{cache="test"} 4
`
	require.NoError(t, testutil.GatherAndCompare(
		reg, strings.NewReader(expected),
	))
	require.Equal(t, 6, testutil.CollectAndCount(collector))
}
