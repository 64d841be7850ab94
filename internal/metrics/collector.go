package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"call-insights/internal/repositories"
)

var (
	cacheEntriesDesc = prometheus.NewDesc(
		"call_insights_report_cache_entries",
		"Reports currently held by the in-memory cache",
		nil, nil,
	)
	cacheHitRateDesc = prometheus.NewDesc(
		"call_insights_report_cache_hit_rate_percent",
		"Hit rate of the in-memory report cache since startup",
		nil, nil,
	)
)

// CacheStatsSource is implemented by caches that track their own statistics
type CacheStatsSource interface {
	Stats() repositories.CacheStats
}

// CacheCollector reads cache statistics on each scrape.
type CacheCollector struct {
	source CacheStatsSource
}

// NewCacheCollector creates a collector over source
func NewCacheCollector(source CacheStatsSource) *CacheCollector {
	return &CacheCollector{source: source}
}

// Describe sends the metric descriptors to the channel.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cacheEntriesDesc
	ch <- cacheHitRateDesc
}

// Collect emits the current cache size and hit rate as gauges.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(stats.Size))
	ch <- prometheus.MustNewConstMetric(cacheHitRateDesc, prometheus.GaugeValue, stats.HitRate)
}
