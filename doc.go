// Package validation evaluates declarative constraints against values.
//
// The constraint model lives in pkg/constraint: a Declaration names a
// constraint kind and its attributes, a Registry maps each kind to the
// validators able to check it, and an Engine runs the selected validator and
// returns the constraint violations it reports. pkg/builtin provides the
// standard kinds (not_null, not_empty, size, min, max, pattern, future, past).
//
// New wires these pieces together with sensible defaults:
//
//	engine, err := validation.New(
//		validation.WithLogger(logger.New(logger.WithDevelopment("api"))),
//		validation.WithMetrics(prometheus.DefaultRegisterer),
//	)
//	if err != nil {
//		return err
//	}
//
//	size, _ := builtin.Size(3, 16)
//	vs, err := engine.Validate(req.Username, size)
//	if err != nil {
//		return err // resolution or initialization failure
//	}
//	if !vs.IsEmpty() {
//		return vs // constraint.Violations implements error
//	}
//
// Custom constraints register their own Definition:
//
//	engine, err := validation.New(validation.WithDefinitions(constraint.Definition{
//		Kind:           "even",
//		DefaultMessage: "must be even",
//		Candidates:     []constraint.Candidate{constraint.For[int](newEvenValidator)},
//	}))
//
// Validators may replace the default message with their own violations,
// addressed to nested nodes through the fluent builder returned by
// Context.BuildConstraintViolationWithTemplate.
package validation
