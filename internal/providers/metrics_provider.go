package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"chatstats/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	AddMessagesProcessed(n int)
	IncRecordsSkipped()
	SetUsersTotal(count int)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	messagesProcessed   prometheus.Counter
	recordsSkipped      prometheus.Counter
	usersTotal          prometheus.Gauge
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) AddMessagesProcessed(n int) {
	m.messagesProcessed.Add(float64(n))
}

func (m *MetricsProvider) IncRecordsSkipped() {
	m.recordsSkipped.Inc()
}

func (m *MetricsProvider) SetUsersTotal(count int) {
	m.usersTotal.Set(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chatstats_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chatstats_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstats_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstats_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		messagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstats_messages_processed_total",
			Help: "Total number of message records folded into statistics",
		}),

		recordsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chatstats_records_skipped_total",
			Help: "Total number of records skipped for missing author id",
		}),

		usersTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "chatstats_users_total",
			Help: "Number of distinct users observed",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chatstats_persistence_duration_seconds",
			Help:    "Duration of artifact and checkpoint writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) AddMessagesProcessed(_ int)                       {}
func (n *noopMetrics) IncRecordsSkipped()                               {}
func (n *noopMetrics) SetUsersTotal(_ int)                              {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
