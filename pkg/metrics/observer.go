package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

const defaultNamespace = "validation"

// Observer records constraint evaluations as Prometheus metrics.
// It implements constraint.Observer.
type Observer struct {
	evaluations *prometheus.CounterVec
	violations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ constraint.Observer = (*Observer)(nil)

// Option configures an Observer.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace overrides the metric name prefix. Empty values are ignored.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithBuckets sets the histogram buckets for evaluation latency.
func WithBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// NewObserver registers the evaluation metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
// Registering twice with the same registerer panics, as promauto does.
func NewObserver(reg prometheus.Registerer, opts ...Option) *Observer {
	o := options{
		namespace: defaultNamespace,
		buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Observer{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "evaluations_total",
				Help:      "Total number of constraint evaluations by outcome",
			},
			[]string{"constraint", "outcome"},
		),
		violations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "violations_total",
				Help:      "Total number of constraint violations produced",
			},
			[]string{"constraint"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Constraint evaluation latency in seconds",
				Buckets:   o.buckets,
			},
			[]string{"constraint"},
		),
	}
}

// ObserveEvaluation implements constraint.Observer.
func (o *Observer) ObserveEvaluation(kind string, outcome constraint.Outcome, violations int, elapsed time.Duration) {
	o.evaluations.WithLabelValues(kind, string(outcome)).Inc()
	if violations > 0 {
		o.violations.WithLabelValues(kind).Add(float64(violations))
	}
	o.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}
