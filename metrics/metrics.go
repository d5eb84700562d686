// Package metrics provides Prometheus metrics for the departments conversion and the HTTP API.
//
// Conversion metrics:
//   - departments_csv_rows_total: Counter of CSV data rows read
//   - departments_csv_rows_skipped_total: Counter with reason label (blank_row, blank_name)
//   - departments_converted: Gauge with the department count of the last successful conversion
//   - departments_conversions_total: Counter with status label
//   - departments_conversion_duration_seconds: Histogram
//
// HTTP metrics follow the usual request total, duration and in-flight trio.
//
// All metrics are registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RowsReadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "departments_csv_rows_total",
			Help: "Total CSV data rows read",
		},
	)

	RowsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "departments_csv_rows_skipped_total",
			Help: "CSV data rows that produced no department",
		},
		[]string{"reason"},
	)

	DepartmentsConverted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "departments_converted",
			Help: "Departments produced by the last successful conversion",
		},
	)

	ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "departments_conversions_total",
			Help: "Conversions run, by status",
		},
		[]string{"status"},
	)

	ConversionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "departments_conversion_duration_seconds",
			Help:    "Conversion latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets",
		},
	)
)

func init() {
	prometheus.MustRegister(RowsReadTotal)
	prometheus.MustRegister(RowsSkippedTotal)
	prometheus.MustRegister(DepartmentsConverted)
	prometheus.MustRegister(ConversionsTotal)
	prometheus.MustRegister(ConversionDuration)
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}

// WriteTextfile dumps the default registry in the node exporter textfile format.
// Used after one-shot conversions, which exit before anything could scrape them.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
