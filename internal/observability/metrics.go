// Package observability provides the structured logger and Prometheus
// metrics shared by the harmonizer commands.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// harmonization run.
type Metrics struct {
	RowsLoaded        *prometheus.CounterVec // labels: source
	LineParseErrors   *prometheus.CounterVec // labels: source
	RowsHarmonized    prometheus.Counter
	ColumnsDropped    prometheus.Counter
	StationsExtracted prometheus.Gauge

	StageDuration *prometheus.HistogramVec // labels: stage={load,harmonize,persist}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.LineParseErrors,
		m.RowsHarmonized,
		m.ColumnsDropped,
		m.StationsExtracted,
		m.StageDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_harmonizer",
			Name:      "rows_loaded_total",
			Help:      "Observation rows produced per source file.",
		}, []string{"source"}),
		LineParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_harmonizer",
			Name:      "line_parse_errors_total",
			Help:      "Input lines skipped because of malformed JSON.",
		}, []string{"source"}),
		RowsHarmonized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_harmonizer",
			Name:      "rows_harmonized_total",
			Help:      "Rows in the merged output artifact.",
		}),
		ColumnsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_harmonizer",
			Name:      "columns_dropped_total",
			Help:      "Columns removed because they were empty or redundant.",
		}),
		StationsExtracted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_harmonizer",
			Name:      "stations_extracted",
			Help:      "Entries in the extracted station directory.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_harmonizer",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each harmonization stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
	}
}

// PushMetrics pushes everything in the default registry to a Prometheus
// Pushgateway. Batch runs exit before a scraper could collect from them,
// so push is how their metrics reach Prometheus at all.
func PushMetrics(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(prometheus.DefaultGatherer).Push()
}
