// Package metrics exposes Prometheus metrics for the conversion pipeline:
// file counts, collected definitions, warnings by type, per-stage durations,
// and the size of the resolved graph.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dooblpls/json-gpo/pkg/config"
)

// Collector owns every pipeline metric. All recording methods are no-ops
// when metrics are disabled, so call sites never need their own guard.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// filesTotal counts source files by processing result.
	filesTotal *prometheus.CounterVec

	// definitionsTotal counts collected definitions by kind.
	definitionsTotal *prometheus.CounterVec

	// warningsTotal counts recorded warnings by type.
	warningsTotal *prometheus.CounterVec

	// stageDuration tracks how long each pipeline stage takes.
	stageDuration *prometheus.HistogramVec

	// graphNodes gauges the resolved graph size by node kind.
	graphNodes *prometheus.GaugeVec

	// languagesProjected counts completed language projections.
	languagesProjected prometheus.Counter
}

// NewCollector creates a collector registered on the given registry. A nil
// registry gets a fresh one, which Registry() exposes for scraping or
// end-of-run gathering.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_total",
				Help:      "Source files seen, by processing result",
			},
			[]string{"result"},
		),

		definitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "definitions_total",
				Help:      "Definitions collected, by kind",
			},
			[]string{"kind"},
		),

		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "warnings_total",
				Help:      "Warnings recorded during the run, by type",
			},
			[]string{"type"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each pipeline stage in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0},
			},
			[]string{"stage"},
		),

		graphNodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "graph_nodes",
				Help:      "Nodes in the resolved graph, by kind",
			},
			[]string{"kind"},
		),

		languagesProjected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "languages_projected_total",
				Help:      "Completed language projections",
			},
		),
	}

	registry.MustRegister(
		c.filesTotal,
		c.definitionsTotal,
		c.warningsTotal,
		c.stageDuration,
		c.graphNodes,
		c.languagesProjected,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordFiles records processed source files by result
// ("parsed" or "skipped").
func (c *Collector) RecordFiles(result string, count int) {
	if !c.config.Enabled {
		return
	}
	c.filesTotal.WithLabelValues(result).Add(float64(count))
}

// RecordDefinitions records collected definitions of one kind
// ("supported_on", "category", "policy").
func (c *Collector) RecordDefinitions(kind string, count int) {
	if !c.config.Enabled {
		return
	}
	c.definitionsTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordWarnings records warnings of one type.
func (c *Collector) RecordWarnings(warnType string, count int) {
	if !c.config.Enabled {
		return
	}
	c.warningsTotal.WithLabelValues(warnType).Add(float64(count))
}

// ObserveStage records the duration of one pipeline stage
// ("collect", "link", "project", "write").
func (c *Collector) ObserveStage(stage string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// SetGraphSize records the size of the resolved graph.
func (c *Collector) SetGraphSize(categories, policies int) {
	if !c.config.Enabled {
		return
	}
	c.graphNodes.WithLabelValues("category").Set(float64(categories))
	c.graphNodes.WithLabelValues("policy").Set(float64(policies))
}

// RecordLanguage records one completed language projection.
func (c *Collector) RecordLanguage() {
	if !c.config.Enabled {
		return
	}
	c.languagesProjected.Inc()
}
