package service

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "remedial"

// Resolution outcomes reported on remedial_schedule_resolutions_total.
const (
	OutcomeResolved   = "resolved"
	OutcomeEmpty      = "empty"
	OutcomeNotFound   = "not_found"
	OutcomeExempt     = "exempt"
	OutcomeNoSubjects = "no_subjects"
	OutcomeError      = "error"
)

const (
	cacheResultHit  = "hit"
	cacheResultMiss = "miss"
	cacheOpGet      = "get"
	cacheOpSet      = "set"
)

// MetricsService owns the Prometheus registry of the timetable API. A nil
// *MetricsService is valid and records nothing.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheLookups  *prometheus.CounterVec
	cacheDuration *prometheus.HistogramVec

	snapshotLoad        prometheus.Observer
	conflictsDetected   prometheus.Counter
	scheduleResolutions *prometheus.CounterVec

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMetricsService registers the API collectors plus the Go runtime and
// process collectors on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path", "status"})

	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "path", "status"})

	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "schedule_cache",
		Name:      "lookups_total",
		Help:      "Resolved-schedule cache lookups by result.",
	}, []string{"result"})

	m.cacheDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "schedule_cache",
		Name:      "operation_seconds",
		Help:      "Resolved-schedule cache latency by operation.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"op"})

	hitRatio := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "schedule_cache",
		Name:      "hit_ratio",
		Help:      "Share of resolved-schedule lookups served from cache since start.",
	}, m.hitRatio)

	snapshotLoad := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "timetable",
		Name:      "snapshot_load_seconds",
		Help:      "Time spent loading roster, assignments and slots from storage.",
		Buckets:   prometheus.DefBuckets,
	})
	m.snapshotLoad = snapshotLoad

	conflictsDetected := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "timetable",
		Name:      "conflicts_detected_total",
		Help:      "Conflict descriptors produced by placement checks.",
	})
	m.conflictsDetected = conflictsDetected

	m.scheduleResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "schedule_resolutions_total",
		Help:      "Personal schedule resolutions by outcome.",
	}, []string{"outcome"})

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLookups, m.cacheDuration, hitRatio,
		snapshotLoad, conflictsDetected, m.scheduleResolutions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})

	return m
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// RecordCacheOperation counts a schedule cache lookup and its latency.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues(cacheOpGet).Observe(duration.Seconds())
	if hit {
		m.hits.Add(1)
		m.cacheLookups.WithLabelValues(cacheResultHit).Inc()
		return
	}
	m.misses.Add(1)
	m.cacheLookups.WithLabelValues(cacheResultMiss).Inc()
}

func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues(cacheOpSet).Observe(duration.Seconds())
}

// ObserveSnapshotLoad tracks how long a storage snapshot took to load.
func (m *MetricsService) ObserveSnapshotLoad(duration time.Duration) {
	if m == nil {
		return
	}
	m.snapshotLoad.Observe(duration.Seconds())
}

// RecordConflicts adds n detected conflicts.
func (m *MetricsService) RecordConflicts(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.conflictsDetected.Add(float64(n))
}

// RecordResolution counts a schedule resolution by outcome.
func (m *MetricsService) RecordResolution(outcome string) {
	if m == nil {
		return
	}
	m.scheduleResolutions.WithLabelValues(outcome).Inc()
}

func (m *MetricsService) hitRatio() float64 {
	hits := m.hits.Load()
	total := hits + m.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
