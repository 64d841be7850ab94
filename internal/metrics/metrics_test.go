package metrics

import (
	"strings"
	"testing"
	"time"

	"call-insights/internal/repositories"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveReport("report", OutcomeComputed, 150*time.Millisecond)
	m.ObserveReport("report", OutcomeCached, 0)
	m.ObserveReport("trends", OutcomeError, 0)
	m.CacheLookup(CacheHit)
	m.CacheLookup(CacheMiss)
	m.CacheLookup(CacheMiss)
	m.FetchError()
	m.EvaluationsAnalyzed(10, 4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("report", OutcomeComputed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("report", OutcomeCached)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports.WithLabelValues("trends", OutcomeError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues(CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchErrors))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.evaluations.WithLabelValues("failed")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.evaluations.WithLabelValues("passed")))

	// only computed reports are timed
	assert.Equal(t, 1, testutil.CollectAndCount(m.reportDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReport("report", OutcomeComputed, time.Second)
		m.CacheLookup(CacheHit)
		m.FetchError()
		m.EvaluationsAnalyzed(1, 1)
	})
}

type fakeStats repositories.CacheStats

func (f fakeStats) Stats() repositories.CacheStats { return repositories.CacheStats(f) }

func TestCacheCollector(t *testing.T) {
	collector := NewCacheCollector(fakeStats{Hits: 3, Misses: 1, Size: 2, HitRate: 75})

	expected := `
# HELP call_insights_report_cache_entries Reports currently held by the in-memory cache
# TYPE call_insights_report_cache_entries gauge
call_insights_report_cache_entries 2
# HELP call_insights_report_cache_hit_rate_percent Hit rate of the in-memory report cache since startup
# TYPE call_insights_report_cache_hit_rate_percent gauge
call_insights_report_cache_hit_rate_percent 75
`
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}
