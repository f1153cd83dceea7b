package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Atlas
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Dataset Metrics
	DatasetRecords       prometheus.Gauge
	DatasetReloadsTotal  prometheus.Counter
	RowsSkippedTotal     *prometheus.CounterVec
	RegenerationDuration prometheus.Histogram
	RegenerationsTotal   *prometheus.CounterVec
}

// NewMetricsRegistry initializes all metrics against reg.
// The server passes prometheus.DefaultRegisterer, tests a fresh prometheus.NewRegistry().
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atlas_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "atlas_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Dataset Metrics
		DatasetRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "atlas_dataset_records",
				Help: "Number of airport records in the currently served dataset",
			},
		),
		DatasetReloadsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "atlas_dataset_reloads_total",
				Help: "Times the dataset file was (re)parsed from disk",
			},
		),
		RowsSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_rows_skipped_total",
				Help: "Source rows skipped during loading, by source and reason",
			},
			[]string{"source", "reason"},
		),
		RegenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "atlas_regeneration_duration_seconds",
				Help:    "Dataset regeneration time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
			},
		),
		RegenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_regenerations_total",
				Help: "Dataset regeneration runs by outcome",
			},
			[]string{"outcome"},
		),
	}
}
