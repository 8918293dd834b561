package cache

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is anything that can report cache Stats. *Cache satisfies it for
// every K and V.
type StatsSource interface {
	Stats() Stats
}

// Collector exports the Stats of one cache as Prometheus metrics. Values are
// read at scrape time, so the cache hot path carries no metric updates.
type Collector struct {
	src StatsSource

	items     *prometheus.Desc
	weight    *prometheus.Desc
	capacity  *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
}

// A compile time check to ensure Collector implements prometheus.Collector.
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector for src. name becomes the constant "cache"
// label so several caches can share one registry.
func NewCollector(namespace, name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", metric), help, nil,
			labels,
		)
	}

	return &Collector{
		src: src,
		items: desc(
			"items", "Number of entries currently stored.",
		),
		weight: desc(
			"weight", "Sum of the weights of all stored entries.",
		),
		capacity: desc(
			"capacity", "Configured weight capacity.",
		),
		hits: desc(
			"hits_total", "Lookups that found their key.",
		),
		misses: desc(
			"misses_total", "Lookups that did not find their key.",
		),
		evictions: desc(
			"evictions_total", "Entries evicted to restore capacity.",
		),
	}
}

// Describe sends the descriptors of all metrics to ch.
//
// NOTE: Part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.items
	ch <- c.weight
	ch <- c.capacity
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
}

// Collect reads the current Stats and sends them to ch.
//
// NOTE: Part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	ch <- prometheus.MustNewConstMetric(
		c.items, prometheus.GaugeValue, float64(s.Items),
	)
	ch <- prometheus.MustNewConstMetric(
		c.weight, prometheus.GaugeValue, float64(s.Weight),
	)
	ch <- prometheus.MustNewConstMetric(
		c.capacity, prometheus.GaugeValue, float64(s.Capacity),
	)
	ch <- prometheus.MustNewConstMetric(
		c.hits, prometheus.CounterValue, float64(s.Hits),
	)
	ch <- prometheus.MustNewConstMetric(
		c.misses, prometheus.CounterValue, float64(s.Misses),
	)
	ch <- prometheus.MustNewConstMetric(
		c.evictions, prometheus.CounterValue, float64(s.Evictions),
	)
}
