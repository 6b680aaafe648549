package constraint_test

import (
	"sync/atomic"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

// funcValidator adapts a function to constraint.Validator.
type funcValidator struct {
	fn func(value any, ctx *constraint.Context) bool
}

func (f *funcValidator) Initialize(*constraint.Declaration) error { return nil }

func (f *funcValidator) IsValid(value any, ctx *constraint.Context) bool {
	return f.fn(value, ctx)
}

func validatorFunc(fn func(value any, ctx *constraint.Context) bool) func() constraint.Validator {
	return func() constraint.Validator { return &funcValidator{fn: fn} }
}

// nameValidator records which implementation handled the value.
type nameValidator struct {
	name string
	seen *atomic.Value
}

func (n *nameValidator) Initialize(*constraint.Declaration) error { return nil }

func (n *nameValidator) IsValid(any, *constraint.Context) bool {
	n.seen.Store(n.name)
	return true
}

func named(name string, seen *atomic.Value) func() constraint.Validator {
	return func() constraint.Validator { return &nameValidator{name: name, seen: seen} }
}
