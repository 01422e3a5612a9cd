package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// batch reporter.
type Metrics struct {
	SpotsEvaluated prometheus.Counter
	FetchErrors    prometheus.Counter
	PublishErrors  prometheus.Counter
	ReporterActive prometheus.Gauge

	// Verdicts counts evaluation outcomes by activity class.
	// labels: class={family,expert}, outcome={go,no_go,no_segment,read_error}
	Verdicts *prometheus.CounterVec

	BatchRuns     prometheus.Counter
	BatchSpots    prometheus.Histogram
	BatchDuration prometheus.Histogram
}

// NewMetrics creates and registers all reporter metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SpotsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seawindow",
			Name:      "spots_evaluated_total",
			Help:      "Total spot evaluations, including failed fetches.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seawindow",
			Name:      "fetch_errors_total",
			Help:      "Total feed fetch or parse failures.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seawindow",
			Name:      "publish_errors_total",
			Help:      "Total failures publishing verdict rows to the sink.",
		}),
		ReporterActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seawindow",
			Name:      "reporter_active",
			Help:      "1 when the periodic reporter is running, 0 when shut down.",
		}),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seawindow",
			Name:      "verdicts_total",
			Help:      "Evaluation outcomes by activity class.",
		}, []string{"class", "outcome"}),
		BatchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seawindow",
			Name:      "batch_runs_total",
			Help:      "Total completed batch evaluation runs.",
		}),
		BatchSpots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seawindow",
			Name:      "batch_spots",
			Help:      "Number of spots evaluated per batch run.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50},
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seawindow",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete fetch-extract-evaluate batch run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.SpotsEvaluated,
		m.FetchErrors,
		m.PublishErrors,
		m.ReporterActive,
		m.Verdicts,
		m.BatchRuns,
		m.BatchSpots,
		m.BatchDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SpotsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seawindow", Name: "spots_evaluated_total"}),
		FetchErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seawindow", Name: "fetch_errors_total"}),
		PublishErrors:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seawindow", Name: "publish_errors_total"}),
		ReporterActive: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seawindow", Name: "reporter_active"}),
		Verdicts:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seawindow", Name: "verdicts_total"}, []string{"class", "outcome"}),
		BatchRuns:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seawindow", Name: "batch_runs_total"}),
		BatchSpots:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seawindow", Name: "batch_spots"}),
		BatchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seawindow", Name: "batch_duration_seconds"}),
	}
}
