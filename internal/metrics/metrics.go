// Package metrics exports mapping run statistics in the Prometheus text
// format, for collection by a node exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"phenio-toolkit/internal/assemble"
)

const namespace = "phenio"

// Metrics holds the run metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	LabelRows     prometheus.Counter
	LabelsDropped prometheus.Counter
	LexicalPairs  prometheus.Counter
	LogicalPairs  prometheus.Counter
	Problematic   prometheus.Counter
	Mappings      *prometheus.CounterVec
	Diagnostics   *prometheus.CounterVec
	RunDuration   prometheus.Gauge
	LastRun       prometheus.Gauge
}

// New creates a Metrics instance with every metric registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		LabelRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "labels",
			Name:      "rows_total",
			Help:      "Total number of label table rows read",
		}),

		LabelsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "labels",
			Name:      "dropped_total",
			Help:      "Label rows selected for matching that produced no new normalized label",
		}),

		LexicalPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pairs",
			Name:      "lexical_total",
			Help:      "Total number of lexical pairs generated",
		}),

		LogicalPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pairs",
			Name:      "logical_total",
			Help:      "Total number of logical pairs read",
		}),

		Problematic: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pairs",
			Name:      "problematic_total",
			Help:      "Total number of same-ontology lexical pairs",
		}),

		Mappings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mappings",
				Name:      "total",
				Help:      "Final mapping records by justification",
			},
			[]string{"justification"},
		),

		Diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "diagnostics",
				Name:      "total",
				Help:      "Diagnostics recorded during runs by code",
			},
			[]string{"code"},
		),

		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Duration of the last mapping run in seconds",
		}),

		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful mapping run",
		}),
	}

	m.registry.MustRegister(
		m.LabelRows,
		m.LabelsDropped,
		m.LexicalPairs,
		m.LogicalPairs,
		m.Problematic,
		m.Mappings,
		m.Diagnostics,
		m.RunDuration,
		m.LastRun,
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the statistics and diagnostics of a finished run.
func (m *Metrics) Observe(res *assemble.Result) {
	stats := res.Stats

	m.LabelRows.Add(float64(stats.LabelRows))
	m.LabelsDropped.Add(float64(stats.LexicalRows - stats.NormalizedLabels))
	m.LexicalPairs.Add(float64(stats.LexicalPairs))
	m.LogicalPairs.Add(float64(stats.LogicalPairs))
	m.Problematic.Add(float64(stats.Problematic))

	for justification, n := range stats.ByJustification {
		m.Mappings.WithLabelValues(justification).Add(float64(n))
	}

	for code, n := range res.Diagnostics.Counts() {
		m.Diagnostics.WithLabelValues(code).Add(float64(n))
	}

	m.RunDuration.Set(stats.Duration.Seconds())
	m.LastRun.SetToCurrentTime()
}

// WriteTextfile writes every metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, m.registry)
	if err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}

	return nil
}
