package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the render pipeline.
type Metrics struct {
	RendersTotal       prometheus.Counter
	RenderErrors       *prometheus.CounterVec // labels: stage={load,scale,compose}
	FetchDuration      prometheus.Histogram
	RenderDuration     prometheus.Histogram
	DatasetRecords     prometheus.Gauge
	SummariesPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderErrors,
		m.FetchDuration,
		m.RenderDuration,
		m.DatasetRecords,
		m.SummariesPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RendersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "renders_total",
			Help:      "Total heat maps rendered successfully.",
		}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "render_errors_total",
			Help:      "Failed renders by pipeline stage.",
		}, []string{"stage"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the remote dataset fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete load-scale-compose cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "dataset_records",
			Help:      "Number of anomaly records in the most recently loaded dataset.",
		}),
		SummariesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "summaries_published_total",
			Help:      "Render summaries handed to the publisher, by outcome.",
		}, []string{"outcome"}),
	}
}
