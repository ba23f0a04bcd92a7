package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Config controls metric naming and histogram layout.
type Config struct {
	Namespace string    `env:"METRICS_NAMESPACE" envDefault:"schemakit"`
	Subsystem string    `env:"METRICS_SUBSYSTEM" envDefault:"validator"`
	Buckets   []float64 `env:"METRICS_BUCKETS" envSeparator:","`
}

// Collector records validation and check outcomes per schema.
type Collector struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	checks      *prometheus.CounterVec
	checkTime   *prometheus.HistogramVec
}

var _ schema.Observer = (*Collector)(nil)

// NewCollector registers the validator metrics in registry, or in a fresh
// registry when it is nil.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "schemakit"
	}
	if len(cfg.Buckets) == 0 {
		// Validation without custom checks finishes in microseconds; checks
		// hit a backing store.
		cfg.Buckets = []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
	}

	c := &Collector{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validations_total",
			Help:      "Records validated, by schema and outcome.",
		}, []string{"schema", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating one record.",
			Buckets:   cfg.Buckets,
		}, []string{"schema"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "checks_total",
			Help:      "Custom checks run, by schema and outcome.",
		}, []string{"schema", "outcome"}),
		checkTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "check_duration_seconds",
			Help:      "Time spent in one custom check.",
			Buckets:   cfg.Buckets,
		}, []string{"schema"}),
	}
	registry.MustRegister(c.validations, c.duration, c.checks, c.checkTime)
	return c
}

func (c *Collector) ObserveValidation(name string, outcome schema.Outcome, d time.Duration) {
	c.validations.WithLabelValues(name, string(outcome)).Inc()
	c.duration.WithLabelValues(name).Observe(d.Seconds())
}

func (c *Collector) ObserveCheck(name string, outcome schema.Outcome, d time.Duration) {
	c.checks.WithLabelValues(name, string(outcome)).Inc()
	c.checkTime.WithLabelValues(name).Observe(d.Seconds())
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
