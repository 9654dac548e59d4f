// Package metrics provides Prometheus metrics for bulk imports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/JonMunkholm/institute/internal/core"
)

// Imports records import lifecycle events. It implements core.ImportObserver.
type Imports struct {
	batches  *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	active   prometheus.Gauge
}

var _ core.ImportObserver = (*Imports)(nil)

// NewImports registers the import collectors with reg.
func NewImports(reg prometheus.Registerer) *Imports {
	factory := promauto.With(reg)
	return &Imports{
		batches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_batches_total",
				Help: "Total number of bulk import batches",
			},
			[]string{"category", "status"},
		),
		rows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_rows_total",
				Help: "Rows processed by bulk imports, by outcome",
			},
			[]string{"category", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "import_batch_duration_seconds",
				Help:    "Time taken by one bulk import batch",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
			[]string{"category"},
		),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "import_active",
			Help: "Number of bulk imports in progress",
		}),
	}
}

func (m *Imports) ImportStarted(core.Category) {
	m.active.Inc()
}

func (m *Imports) ImportFinished(category core.Category, res *core.ImportResult, err error) {
	m.active.Dec()

	c := string(category)
	status := string(core.RunSucceeded)
	if err != nil {
		status = string(core.RunFailed)
	}
	m.batches.WithLabelValues(c, status).Inc()

	if res == nil {
		return
	}
	m.rows.WithLabelValues(c, "imported").Add(float64(res.Imported))
	m.rows.WithLabelValues(c, "dropped").Add(float64(res.Dropped))
	m.rows.WithLabelValues(c, "skipped").Add(float64(res.Skipped))
	m.duration.WithLabelValues(c).Observe(res.Duration.Seconds())
}
