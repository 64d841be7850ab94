// Package metrics exposes Prometheus instrumentation for the analytics pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "call_insights"

// Report outcomes
const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeError    = "error"
)

// Cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the collectors recorded by the analytics service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reports        *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	fetchErrors    prometheus.Counter
	evaluations    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Analytics requests by kind and outcome",
		}, []string{"kind", "outcome"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent fetching and analyzing evaluations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "Report cache lookups by result",
		}, []string{"result"}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_fetch_errors_total",
			Help:      "Failed evaluation fetches from the data store",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_analyzed_total",
			Help:      "Evaluations analyzed, split by whether they carried failure data",
		}, []string{"status"}),
	}

	reg.MustRegister(m.reports, m.reportDuration, m.cacheLookups, m.fetchErrors, m.evaluations)
	return m
}

// ObserveReport records one analytics request
func (m *Metrics) ObserveReport(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(kind, outcome).Inc()
	if outcome == OutcomeComputed {
		m.reportDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

// ReportCounter returns the request counter for kind and outcome
func (m *Metrics) ReportCounter(kind, outcome string) prometheus.Counter {
	return m.reports.WithLabelValues(kind, outcome)
}

// CacheLookup records a report cache lookup result
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// FetchError records a failed evaluation fetch
func (m *Metrics) FetchError() {
	if m == nil {
		return
	}
	m.fetchErrors.Inc()
}

// EvaluationsAnalyzed records how many evaluations a report covered
func (m *Metrics) EvaluationsAnalyzed(total, failed int) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues("failed").Add(float64(failed))
	m.evaluations.WithLabelValues("passed").Add(float64(total - failed))
}
