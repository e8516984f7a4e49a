// Package metrics provides Prometheus metrics for the competition engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Lifecycle counters - one per engine operation.
	competitionsCreated  prometheus.Counter
	competitionsUpdated  prometheus.Counter
	competitionsDeleted  prometheus.Counter
	competitionsArchived prometheus.Counter
	submissionsAccepted  prometheus.Counter
	submissionsDuplicate prometheus.Counter
	ratingsRecorded      prometheus.Counter
	winnersDeclared      prometheus.Counter
	paymentUpdates       prometheus.Counter
	operationErrors      *prometheus.CounterVec

	// Store health.
	competitionCount    prometheus.Gauge
	competitionsByPhase *prometheus.GaugeVec
	storeUpdateLatency  prometheus.Histogram
	storeQueryLatency   prometheus.Histogram

	// HTTP performance.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ovation",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.competitionsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitions_created_total",
		Help:      "Total number of competitions created",
	})
	m.competitionsUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitions_updated_total",
		Help:      "Total number of competition updates applied",
	})
	m.competitionsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitions_deleted_total",
		Help:      "Total number of competitions deleted",
	})
	m.competitionsArchived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitions_archived_total",
		Help:      "Total number of competitions pinned to archived",
	})
	m.submissionsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_accepted_total",
		Help:      "Total number of submissions accepted",
	})
	m.submissionsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_duplicate_total",
		Help:      "Total number of submissions rejected as duplicates",
	})
	m.ratingsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ratings_recorded_total",
		Help:      "Total number of ratings recorded or replaced",
	})
	m.winnersDeclared = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "winners_declared_total",
		Help:      "Total number of winner declarations",
	})
	m.paymentUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payment_updates_total",
		Help:      "Total number of payment status updates",
	})
	m.operationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "operation_errors_total",
			Help:      "Total engine operation failures by operation and error kind",
		},
		[]string{"operation", "kind"},
	)

	m.competitionCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "competitions",
		Help:      "Current number of stored competitions",
	})
	m.competitionsByPhase = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "competitions_by_phase",
			Help:      "Current number of competitions per lifecycle phase",
		},
		[]string{"phase"},
	)
	m.storeUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_update_latency_milliseconds",
		Help:      "Histogram of store mutation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Histogram of store read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordCompetitionCreated increments the created counter.
func RecordCompetitionCreated() { globalManager.competitionsCreated.Inc() }

// RecordCompetitionUpdated increments the updated counter.
func RecordCompetitionUpdated() { globalManager.competitionsUpdated.Inc() }

// RecordCompetitionDeleted increments the deleted counter.
func RecordCompetitionDeleted() { globalManager.competitionsDeleted.Inc() }

// RecordCompetitionArchived increments the archived counter.
func RecordCompetitionArchived() { globalManager.competitionsArchived.Inc() }

// RecordSubmissionAccepted increments the accepted submissions counter.
func RecordSubmissionAccepted() { globalManager.submissionsAccepted.Inc() }

// RecordSubmissionDuplicate increments the duplicate submissions counter.
func RecordSubmissionDuplicate() { globalManager.submissionsDuplicate.Inc() }

// RecordRatingRecorded increments the ratings counter.
func RecordRatingRecorded() { globalManager.ratingsRecorded.Inc() }

// RecordWinnerDeclared increments the winners counter.
func RecordWinnerDeclared() { globalManager.winnersDeclared.Inc() }

// RecordPaymentUpdate increments the payment updates counter.
func RecordPaymentUpdate() { globalManager.paymentUpdates.Inc() }

// RecordOperationError counts a failed engine operation by error kind.
func RecordOperationError(operation, kind string) {
	globalManager.operationErrors.WithLabelValues(operation, kind).Inc()
}

// UpdateCompetitionCount sets the stored competition gauge.
func UpdateCompetitionCount(count int) { globalManager.competitionCount.Set(float64(count)) }

// UpdatePhaseCount sets the per-phase gauge.
func UpdatePhaseCount(phase string, count int) {
	globalManager.competitionsByPhase.WithLabelValues(phase).Set(float64(count))
}

// RecordStoreUpdateLatency records store mutation latency in milliseconds.
func RecordStoreUpdateLatency(latencyMs float64) {
	globalManager.storeUpdateLatency.Observe(latencyMs)
}

// RecordStoreQueryLatency records store read latency in milliseconds.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
