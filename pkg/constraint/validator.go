package constraint

import "reflect"

// ConstraintValidator checks values of type T against one constraint declaration.
//
// Initialize is called exactly once per instance, before the first IsValid.
// After that the instance is shared by concurrent evaluations, so IsValid
// must not mutate validator state.
type ConstraintValidator[T any] interface {
	Initialize(decl *Declaration) error
	IsValid(value T, ctx *Context) bool
}

// Validator is the type-erased form kept by the registry.
type Validator = ConstraintValidator[any]

// Candidate pairs a target with a factory producing fresh validator instances.
type Candidate struct {
	target        Target
	factory       func() Validator
	acceptsAbsent bool
}

// CandidateOption configures a Candidate.
type CandidateOption func(*Candidate)

// AcceptsAbsent routes absent values to this candidate instead of treating
// them as vacuously valid. Presence constraints such as not-null use it.
func AcceptsAbsent() CandidateOption {
	return func(c *Candidate) { c.acceptsAbsent = true }
}

// For registers a validator for values assignable to T.
// Absent values reach an absent-aware typed validator as the zero T.
func For[T any](factory func() ConstraintValidator[T], opts ...CandidateOption) Candidate {
	var c Candidate
	if factory != nil {
		c.factory = func() Validator { return typed[T]{v: factory()} }
	}
	c.target = TargetType[T]()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ForTarget registers an untyped validator for an arbitrary target.
func ForTarget(target Target, factory func() Validator, opts ...CandidateOption) Candidate {
	c := Candidate{target: target, factory: factory}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Candidate) Target() Target { return c.target }

func (c Candidate) AcceptsAbsent() bool { return c.acceptsAbsent }

// New returns a fresh, uninitialized validator.
func (c Candidate) New() Validator { return c.factory() }

type typed[T any] struct {
	v ConstraintValidator[T]
}

func (t typed[T]) Initialize(decl *Declaration) error { return t.v.Initialize(decl) }

func (t typed[T]) IsValid(value any, ctx *Context) bool {
	v, ok := value.(T)
	if !ok && value != nil {
		// Assignable but not identical types, such as a named []any.
		v = reflect.ValueOf(value).Convert(reflect.TypeFor[T]()).Interface().(T)
	}
	return t.v.IsValid(v, ctx)
}
