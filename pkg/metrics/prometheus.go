// Package metrics provides Prometheus metrics for the vaultlog store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the store.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Store traffic.
	reads  *prometheus.CounterVec
	writes *prometheus.CounterVec

	// Data quality. Corrupt reads and parse failures are non-fatal by
	// contract, so counters are the only place they remain visible.
	corruptReads  *prometheus.CounterVec
	parseFailures prometheus.Counter
	barUpInferred prometheus.Counter

	// Persistence health.
	writeFailures  *prometheus.CounterVec
	degradedEvents prometheus.Counter

	// Collection state.
	collectionSize *prometheus.GaugeVec

	// Medium performance.
	mediumOpLatency *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vaultlog",
		subsystem:        "store",
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

	m.reads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "reads_total",
			Help:      "Total collection reads by collection",
		},
		[]string{"collection"},
	)

	m.writes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "writes_total",
			Help:      "Total successful collection writes by collection",
		},
		[]string{"collection"},
	)

	m.corruptReads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "corrupt_reads_total",
			Help:      "Reads where persisted bytes were unparseable and treated as an empty collection",
		},
		[]string{"collection"},
	)

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "measurement_parse_failures_total",
		Help:      "Height strings that produced no canonical value (raw text kept)",
	})

	m.barUpInferred = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bar_up_inferred_total",
		Help:      "Legacy jump records whose barUp flag was inferred from session type",
	})

	m.writeFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "write_failures_total",
			Help:      "Medium write failures by collection (storage degraded)",
		},
		[]string{"collection"},
	)

	m.degradedEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "degraded_events_total",
		Help:      "Storage-degraded notifications published to subscribers",
	})

	m.collectionSize = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "collection_size",
			Help:      "Records currently persisted per collection",
		},
		[]string{"collection"},
	)

	m.mediumOpLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "medium_op_latency_milliseconds",
			Help:      "Key-value medium operation latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)
}

// Package-level helpers operating on the global manager.

// RecordRead increments the read counter for a collection.
func RecordRead(collection string) {
	globalManager.reads.WithLabelValues(collection).Inc()
}

// RecordWrite increments the successful-write counter for a collection.
func RecordWrite(collection string) {
	globalManager.writes.WithLabelValues(collection).Inc()
}

// RecordCorruptRead counts a read whose bytes could not be decoded.
func RecordCorruptRead(collection string) {
	globalManager.corruptReads.WithLabelValues(collection).Inc()
}

// RecordParseFailure counts a height string with no canonical value.
func RecordParseFailure() {
	globalManager.parseFailures.Inc()
}

// RecordBarUpInferred counts a legacy record hitting the barUp heuristic.
func RecordBarUpInferred() {
	globalManager.barUpInferred.Inc()
}

// RecordWriteFailure counts a failed medium write for a collection.
func RecordWriteFailure(collection string) {
	globalManager.writeFailures.WithLabelValues(collection).Inc()
}

// RecordDegradedEvent counts a published storage-degraded notification.
func RecordDegradedEvent() {
	globalManager.degradedEvents.Inc()
}

// UpdateCollectionSize sets the persisted record count for a collection.
func UpdateCollectionSize(collection string, n int) {
	globalManager.collectionSize.WithLabelValues(collection).Set(float64(n))
}

// RecordMediumOpLatency observes a medium operation latency.
func RecordMediumOpLatency(op string, latencyMs float64) {
	globalManager.mediumOpLatency.WithLabelValues(op).Observe(latencyMs)
}

// GetRegistry returns the custom registry for exposition.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
