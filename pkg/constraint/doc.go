// Package constraint implements the core of constraint validation: the
// type-directed validator registry, the validator context with its violation
// builders, and the violation records produced by a failed check.
//
// The package deliberately does not discover constraints. Callers hand it a
// resolved (value, *Declaration) pair; which declarations apply to which
// value is decided elsewhere.
//
// # Architecture
//
// A Registry maps a constraint kind to an ordered list of Candidates. Each
// candidate pairs a Target (the runtime types it accepts) with a factory
// producing validators. Resolve picks the candidate for the runtime type of
// a value:
//
//   - nil and nil pointers are absent; they go to the first candidate built
//     with AcceptsAbsent, or the constraint is vacuously satisfied;
//   - pointers are dereferenced before matching;
//   - exactly one candidate must match once less specific matches are
//     discarded, otherwise a *ResolutionError is returned.
//
// The Engine drives an evaluation. It initializes one validator instance per
// (declaration, candidate), caches it, and calls IsValid with a Context.
//
// # Custom violations
//
// Inside IsValid a validator may replace the default violation with one or
// more violations at nested paths:
//
//	func (v *addressValidator) IsValid(a Address, ctx *constraint.Context) bool {
//		if a.City != "" {
//			return true
//		}
//		ctx.DisableDefaultConstraintViolation()
//		_ = ctx.BuildConstraintViolationWithTemplate("{city.required}").
//			AddPropertyNode("city").
//			AddConstraintViolation()
//		return false
//	}
//
// Builder stages are distinct types, so only legal calls compile: a bean node
// cannot be followed by more nodes, AtKey is only offered after InIterable.
// AddConstraintViolation closes the builder; using it or any stage it
// returned afterwards is recorded as ErrIllegalState on the Context.
//
// # Error Handling
//
//   - ErrInvalidArgument: malformed names, parameter nodes outside
//     cross-parameter validation, inconsistent attributes
//   - ErrIllegalState: builder use after finalization
//   - ErrValidatorResolution: no or several candidates (see *ResolutionError)
//   - ErrValidationFailure: a validator panicked or failed to initialize
//
// Violations implements error, so a validation run can return it directly:
//
//	if vs := constraint.ExtractViolations(err); vs != nil {
//		for _, v := range vs {
//			fmt.Println(v.Path(), v.Message())
//		}
//	}
package constraint
