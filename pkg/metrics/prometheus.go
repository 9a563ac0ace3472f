// Package metrics provides Prometheus metrics for the QA report pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Report output
	reportsGenerated *prometheus.CounterVec
	reportLatency    prometheus.Histogram

	// Ingest
	recordsIngested prometheus.Counter
	schemaFailures  prometheus.Counter

	// Per-entity processing
	entitiesProcessed prometheus.Counter
	entityFailures    prometheus.Counter
	workerInFlight    prometheus.Gauge

	// Extraction
	insightsExtracted *prometheus.CounterVec

	// Memoization
	memoHits   prometheus.Counter
	memoMisses prometheus.Counter
	memoSize   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "qainsight",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reportsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_generated_total",
		Help:        "Total number of reports generated by source",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.reportLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_latency_milliseconds",
		Help:        "Histogram of end-to-end report generation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.recordsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_ingested_total",
		Help:        "Total number of scorecard records kept after row filtering",
		ConstLabels: m.constLabels,
	})

	m.schemaFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "schema_failures_total",
		Help:        "Total number of tables rejected for missing required columns",
		ConstLabels: m.constLabels,
	})

	m.entitiesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entities_processed_total",
		Help:        "Total number of agents summarized",
		ConstLabels: m.constLabels,
	})

	m.entityFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entity_failures_total",
		Help:        "Total number of agents skipped after a processing failure",
		ConstLabels: m.constLabels,
	})

	m.workerInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_in_flight",
		Help:        "Number of per-agent jobs currently running",
		ConstLabels: m.constLabels,
	})

	m.insightsExtracted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "insights_extracted_total",
		Help:        "Total number of insight snippets extracted by polarity and level",
		ConstLabels: m.constLabels,
	}, []string{"polarity", "level"})

	m.memoHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "memo_hits_total",
		Help:        "Total number of reports served from the memo store",
		ConstLabels: m.constLabels,
	})

	m.memoMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "memo_misses_total",
		Help:        "Total number of reports computed because no memo entry existed",
		ConstLabels: m.constLabels,
	})

	m.memoSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "memo_entries",
		Help:        "Current number of entries in the memo store",
		ConstLabels: m.constLabels,
	})
}

// RecordReportGenerated counts one report; source is "computed" or "memo".
func RecordReportGenerated(source string) {
	globalManager.reportsGenerated.WithLabelValues(source).Inc()
}

// RecordReportLatency records report latency in milliseconds.
func RecordReportLatency(latencyMs float64) {
	globalManager.reportLatency.Observe(latencyMs)
}

// RecordRecordsIngested adds n kept records.
func RecordRecordsIngested(n int) {
	globalManager.recordsIngested.Add(float64(n))
}

// RecordSchemaFailure increments the schema failures counter.
func RecordSchemaFailure() {
	globalManager.schemaFailures.Inc()
}

// RecordEntityProcessed increments the entities processed counter.
func RecordEntityProcessed() {
	globalManager.entitiesProcessed.Inc()
}

// RecordEntityFailure increments the entity failures counter.
func RecordEntityFailure() {
	globalManager.entityFailures.Inc()
}

// UpdateWorkerInFlight adjusts the in-flight job gauge by delta.
func UpdateWorkerInFlight(delta int) {
	globalManager.workerInFlight.Add(float64(delta))
}

// RecordInsightsExtracted adds n snippets for a polarity at a level
// ("group" or "entity").
func RecordInsightsExtracted(polarity, level string, n int) {
	globalManager.insightsExtracted.WithLabelValues(polarity, level).Add(float64(n))
}

// RecordMemoHit increments the memo hits counter.
func RecordMemoHit() {
	globalManager.memoHits.Inc()
}

// RecordMemoMiss increments the memo misses counter.
func RecordMemoMiss() {
	globalManager.memoMisses.Inc()
}

// UpdateMemoSize sets the memo entry count.
func UpdateMemoSize(n int) {
	globalManager.memoSize.Set(float64(n))
}

// Gatherer returns the custom registry used by the package-level helpers.
func Gatherer() prometheus.Gatherer {
	return customRegistry
}

// WriteTextfile writes the current metrics in the node-exporter textfile
// format to path.
func WriteTextfile(path string) error {
	if path == "" {
		return ErrNoTextfilePath
	}
	return prometheus.WriteToTextfile(path, customRegistry)
}
