package builtin

import (
	"github.com/dmitrymomot/validation/pkg/constraint"
)

func NotNull() *constraint.Declaration {
	return &constraint.Declaration{Kind: KindNotNull}
}

func NotEmpty() *constraint.Declaration {
	return &constraint.Declaration{Kind: KindNotEmpty}
}

// Size declares minLen <= length <= maxLen. It fails with
// constraint.ErrInvalidArgument if either bound is negative or maxLen < minLen.
func Size(minLen, maxLen int) (*constraint.Declaration, error) {
	if err := checkSizeBounds(int64(minLen), int64(maxLen)); err != nil {
		return nil, err
	}
	return &constraint.Declaration{
		Kind:       KindSize,
		Attributes: constraint.Attributes{"min": minLen, "max": maxLen},
	}, nil
}

func Min(value int64) *constraint.Declaration {
	return &constraint.Declaration{Kind: KindMin, Attributes: constraint.Attributes{"value": value}}
}

func Max(value int64) *constraint.Declaration {
	return &constraint.Declaration{Kind: KindMax, Attributes: constraint.Attributes{"value": value}}
}

// Pattern declares that strings must match expr entirely.
// A malformed expression fails with constraint.ErrInvalidArgument.
func Pattern(expr string, flags ...Flag) (*constraint.Declaration, error) {
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	if _, err := compilePattern(expr, names); err != nil {
		return nil, err
	}
	attrs := constraint.Attributes{"regexp": expr}
	if len(names) > 0 {
		attrs["flags"] = names
	}
	return &constraint.Declaration{Kind: KindPattern, Attributes: attrs}, nil
}

// Future declares that instants must be after now, or equal to it when
// includePresent is set.
func Future(includePresent bool) *constraint.Declaration {
	return &constraint.Declaration{Kind: KindFuture, Attributes: constraint.Attributes{"includePresent": includePresent}}
}

// Past declares that instants must be before now, or equal to it when
// includePresent is set.
func Past(includePresent bool) *constraint.Declaration {
	return &constraint.Declaration{Kind: KindPast, Attributes: constraint.Attributes{"includePresent": includePresent}}
}
