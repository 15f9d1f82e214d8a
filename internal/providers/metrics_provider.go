package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fontpair/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetStoredKeys(count int)
	IncQuotaDenied(action string)
	IncLicenseValidation(result string)
	IncWebhookDelivery(outcome string)
	ObserveAIRequestDuration(operation string, duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	storedKeys          prometheus.Gauge
	quotaDenied         *prometheus.CounterVec
	licenseValidations  *prometheus.CounterVec
	webhookDeliveries   *prometheus.CounterVec
	aiRequestDuration   *prometheus.HistogramVec
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetStoredKeys(count int) {
	m.storedKeys.Set(float64(count))
}

func (m *MetricsProvider) IncQuotaDenied(action string) {
	m.quotaDenied.WithLabelValues(action).Inc()
}

func (m *MetricsProvider) IncLicenseValidation(result string) {
	m.licenseValidations.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncWebhookDelivery(outcome string) {
	m.webhookDeliveries.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveAIRequestDuration(operation string, duration time.Duration) {
	m.aiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
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
			Name: "fontpair_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fontpair_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fontpair_cache_hits_total",
			Help: "Total number of AI result cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fontpair_cache_misses_total",
			Help: "Total number of AI result cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fontpair_persistence_duration_seconds",
			Help:    "Duration of local store flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		storedKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fontpair_stored_keys",
			Help: "Number of keys held by the local store",
		}),

		quotaDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fontpair_quota_denied_total",
			Help: "Metered actions rejected by the entitlement evaluator",
		}, []string{"action"}),

		licenseValidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fontpair_license_validations_total",
			Help: "License validations by result code",
		}, []string{"result"}),

		webhookDeliveries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fontpair_webhook_deliveries_total",
			Help: "License webhook deliveries by outcome",
		}, []string{"outcome"}),

		aiRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fontpair_ai_request_duration_seconds",
			Help:    "Duration of remote AI calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"operation"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                   {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncCacheHits()                                      {}
func (n *noopMetrics) IncCacheMisses()                                    {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)         {}
func (n *noopMetrics) SetStoredKeys(_ int)                                {}
func (n *noopMetrics) IncQuotaDenied(_ string)                            {}
func (n *noopMetrics) IncLicenseValidation(_ string)                      {}
func (n *noopMetrics) IncWebhookDelivery(_ string)                        {}
func (n *noopMetrics) ObserveAIRequestDuration(_ string, _ time.Duration) {}
