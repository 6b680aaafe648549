package validation

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/validation/pkg/builtin"
	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/metrics"
)

type options struct {
	clock       builtin.Clock
	logger      *slog.Logger
	registerer  prometheus.Registerer
	messages    map[string]string
	cacheSize   int
	definitions []constraint.Definition
	skipBuiltin bool
}

// Option configures New.
type Option func(*options)

// WithClock sets the clock used by the future and past constraints.
func WithClock(c builtin.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics exports evaluation metrics to reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithMessages adds message bundle entries. They override the built-in
// English messages with the same key.
func WithMessages(bundle map[string]string) Option {
	return func(o *options) {
		if o.messages == nil {
			o.messages = make(map[string]string, len(bundle))
		}
		maps.Copy(o.messages, bundle)
	}
}

func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithDefinitions registers additional constraint kinds.
func WithDefinitions(defs ...constraint.Definition) Option {
	return func(o *options) { o.definitions = append(o.definitions, defs...) }
}

// WithoutBuiltin leaves the built-in constraint kinds unregistered.
func WithoutBuiltin() Option {
	return func(o *options) { o.skipBuiltin = true }
}

// New creates an Engine with the built-in constraints registered and the
// default English messages loaded.
func New(opts ...Option) (*constraint.Engine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	registry := constraint.NewRegistry()
	bundle := map[string]string{}
	if !o.skipBuiltin {
		var bopts []builtin.Option
		if o.clock != nil {
			bopts = append(bopts, builtin.WithClock(o.clock))
		}
		if err := builtin.Register(registry, bopts...); err != nil {
			return nil, fmt.Errorf("register built-in constraints: %w", err)
		}
		bundle = builtin.Messages()
	}
	for _, def := range o.definitions {
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("register constraint %q: %w", def.Kind, err)
		}
	}
	maps.Copy(bundle, o.messages)

	engineOpts := []constraint.Option{
		constraint.WithMessageInterpolator(constraint.NewTemplateInterpolator(bundle)),
		constraint.WithLogger(o.logger),
		constraint.WithCacheSize(o.cacheSize),
	}
	if o.registerer != nil {
		engineOpts = append(engineOpts, constraint.WithObserver(metrics.NewObserver(o.registerer)))
	}
	return constraint.NewEngine(registry, engineOpts...), nil
}
