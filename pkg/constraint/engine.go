package constraint

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/validation/pkg/cache"
	"github.com/dmitrymomot/validation/pkg/logger"
)

// Outcome classifies a single constraint evaluation.
type Outcome string

const (
	OutcomeValid   Outcome = "valid"
	OutcomeInvalid Outcome = "invalid"
	OutcomeSkipped Outcome = "skipped"
	OutcomeError   Outcome = "error"
)

// Observer receives one call per evaluated constraint.
type Observer interface {
	ObserveEvaluation(kind string, outcome Outcome, violations int, elapsed time.Duration)
}

// DefaultCacheSize bounds the number of initialized validator instances an Engine keeps.
const DefaultCacheSize = 1024

type instanceKey struct {
	decl      *Declaration
	candidate int
}

// Engine evaluates resolved declarations against values.
// It is safe for concurrent use once the registry is set up.
type Engine struct {
	registry     *Registry
	interpolator MessageInterpolator
	logger       *slog.Logger
	observer     Observer
	cacheSize    int
	instances    *cache.LRU[instanceKey, Validator]
}

// Option configures an Engine.
type Option func(*Engine)

func WithMessageInterpolator(mi MessageInterpolator) Option {
	return func(e *Engine) {
		if mi != nil {
			e.interpolator = mi
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithCacheSize bounds the validator instance cache. Non-positive sizes are ignored.
// A declaration whose instance was evicted gets a new instance, initialized
// again, on its next evaluation.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:     registry,
		interpolator: NewTemplateInterpolator(),
		logger:       logger.Discard(),
		cacheSize:    DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.instances = cache.NewLRU(e.cacheSize,
		cache.WithEvictCallback(func(k instanceKey, _ Validator) {
			e.logger.Debug("validator instance evicted", logger.Constraint(k.decl.Kind))
		}),
	)
	return e
}

func (e *Engine) Registry() *Registry { return e.registry }

// Validate evaluates decl against value and returns the violations found.
// A non-nil error means the evaluation itself failed: resolution, a
// validator's initialization or a misused violation builder.
func (e *Engine) Validate(value any, decl *Declaration, opts ...ContextOption) (Violations, error) {
	if decl == nil {
		return nil, invalidArgument("declaration is nil")
	}

	start := time.Now()
	vs, outcome, err := e.evaluate(value, decl, opts)
	elapsed := time.Since(start)

	if e.observer != nil {
		e.observer.ObserveEvaluation(decl.Kind, outcome, len(vs), elapsed)
	}
	if err != nil {
		e.logger.Warn("constraint evaluation failed",
			logger.Constraint(decl.Kind),
			logger.Error(err),
		)
		return nil, err
	}
	e.logger.Debug("constraint evaluated",
		logger.Constraint(decl.Kind),
		logger.Outcome(string(outcome)),
		logger.Violations(len(vs)),
		logger.Duration(elapsed),
	)
	return vs, nil
}

// ValidateAll evaluates every declaration in order and stops at the first error.
func (e *Engine) ValidateAll(value any, decls []*Declaration, opts ...ContextOption) (Violations, error) {
	var all Violations
	for _, decl := range decls {
		vs, err := e.Validate(value, decl, opts...)
		if err != nil {
			return all, err
		}
		all = append(all, vs...)
	}
	return all, nil
}

// Reset drops every cached validator instance.
func (e *Engine) Reset() {
	e.instances.Clear()
}

func (e *Engine) evaluate(value any, decl *Declaration, opts []ContextOption) (Violations, Outcome, error) {
	res, err := e.registry.Resolve(decl.Kind, value)
	if err != nil {
		return nil, OutcomeError, err
	}
	if res.Skip {
		return nil, OutcomeSkipped, nil
	}

	v, err := e.instance(decl, res)
	if err != nil {
		return nil, OutcomeError, err
	}

	ctxOpts := make([]ContextOption, 0, len(opts)+2)
	ctxOpts = append(ctxOpts, WithInterpolator(e.interpolator), WithDefaultMessage(res.DefaultMessage))
	ctxOpts = append(ctxOpts, opts...)
	ctx := NewContext(decl, res.Value, ctxOpts...)

	valid, err := invoke(v, res.Value, ctx)
	if err != nil {
		return nil, OutcomeError, err
	}
	if ctx.Err() != nil {
		return nil, OutcomeError, ctx.Err()
	}
	if valid {
		return nil, OutcomeValid, nil
	}

	vs := ctx.Violations()
	if !ctx.DefaultConstraintViolationDisabled() {
		vs = append(vs, ctx.defaultViolation())
	}
	if len(vs) == 0 {
		return nil, OutcomeError, fmt.Errorf("%w: constraint %q disabled the default violation without adding one",
			ErrValidationFailure, decl.Kind)
	}
	return vs, OutcomeInvalid, nil
}

// instance returns the initialized validator for (decl, candidate),
// creating and initializing it on first use.
func (e *Engine) instance(decl *Declaration, res Resolution) (Validator, error) {
	key := instanceKey{decl: decl, candidate: res.Index}
	return e.instances.GetOrCreate(key, func() (v Validator, err error) {
		defer func() {
			if r := recover(); r != nil {
				v, err = nil, fmt.Errorf("%w: initialize %s validator panicked: %v", ErrValidationFailure, decl.Kind, r)
			}
		}()
		v = res.Candidate.New()
		if v == nil {
			return nil, fmt.Errorf("%w: %s validator factory for %s returned nil", ErrValidationFailure, decl.Kind, res.Candidate.Target())
		}
		if err := v.Initialize(decl); err != nil {
			if errors.Is(err, ErrInvalidArgument) {
				return nil, fmt.Errorf("initialize %s validator for %s: %w", decl.Kind, res.Candidate.Target(), err)
			}
			return nil, fmt.Errorf("%w: initialize %s validator: %w", ErrValidationFailure, decl.Kind, err)
		}
		return v, nil
	})
}

// invoke calls IsValid and turns a panic into ErrValidationFailure.
func invoke(v Validator, value any, ctx *Context) (valid bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s validator panicked: %v", ErrValidationFailure, ctx.decl.Kind, r)
		}
	}()
	return v.IsValid(value, ctx), nil
}
