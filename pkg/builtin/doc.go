// Package builtin provides the standard constraints and their validators.
//
//	not_null   any value                  value is present
//	not_empty  strings, sequences, maps   present and length > 0
//	size       strings, sequences, maps   min <= length <= max
//	min, max   signed and unsigned ints   integral comparison with value
//	pattern    strings                    whole-string regexp match
//	future     time.Time                  after the clock's now
//	past       time.Time                  before the clock's now
//
// String lengths are counted in runes. Absent values satisfy every
// constraint except not_null and not_empty. Floating-point values have no
// min/max validator and fail resolution.
//
// Register adds the definitions to a registry; declarations are built with
// the constructors of the same names:
//
//	reg := constraint.NewRegistry()
//	if err := builtin.Register(reg, builtin.WithClock(clock)); err != nil {
//		return err
//	}
//	engine := constraint.NewEngine(reg,
//		constraint.WithMessageInterpolator(constraint.NewTemplateInterpolator(builtin.Messages())),
//	)
//
//	decl, err := builtin.Size(1, 3)
//	vs, err := engine.Validate("abcd", decl)
//	// vs[0].Message() == "size must be between 1 and 3"
package builtin
