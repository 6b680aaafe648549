package builtin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/builtin"
	"github.com/dmitrymomot/validation/pkg/constraint"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *constraint.Engine {
	t.Helper()

	r := constraint.NewRegistry()
	require.NoError(t, builtin.Register(r, builtin.WithClock(builtin.ClockFunc(func() time.Time { return now }))))
	return constraint.NewEngine(r,
		constraint.WithMessageInterpolator(constraint.NewTemplateInterpolator(builtin.Messages())),
	)
}

func valid(t *testing.T, e *constraint.Engine, value any, decl *constraint.Declaration) bool {
	t.Helper()
	vs, err := e.Validate(value, decl)
	require.NoError(t, err)
	return vs.IsEmpty()
}

func mustDecl(t *testing.T) func(*constraint.Declaration, error) *constraint.Declaration {
	return func(d *constraint.Declaration, err error) *constraint.Declaration {
		t.Helper()
		require.NoError(t, err)
		return d
	}
}

type email string

func TestRegister(t *testing.T) {
	t.Parallel()

	r := constraint.NewRegistry()
	require.NoError(t, builtin.Register(r))
	assert.Equal(t, []string{"future", "max", "min", "not_empty", "not_null", "past", "pattern", "size"}, r.Kinds())

	assert.ErrorIs(t, builtin.Register(r), constraint.ErrInvalidArgument, "kinds cannot be registered twice")
}

func TestNotNull(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	var nilPtr *string
	assert.False(t, valid(t, e, nil, builtin.NotNull()))
	assert.False(t, valid(t, e, nilPtr, builtin.NotNull()))
	assert.True(t, valid(t, e, "", builtin.NotNull()))
	assert.True(t, valid(t, e, 0, builtin.NotNull()))

	vs, err := e.Validate(nil, builtin.NotNull())
	require.NoError(t, err)
	assert.Equal(t, "must not be null", vs[0].Message())
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"absent", nil, false},
		{"nil pointer", (*[]int)(nil), false},
		{"empty string", "", false},
		{"string", "a", true},
		{"named string", email("a@b.c"), true},
		{"empty slice", []int{}, false},
		{"nil slice", []int(nil), false},
		{"slice", []int{1}, true},
		{"array", [1]int{}, true},
		{"empty array", [0]int{}, false},
		{"empty map", map[string]int{}, false},
		{"map", map[string]int{"a": 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valid(t, e, tt.value, builtin.NotEmpty()))
		})
	}

	t.Run("unsupported types fail resolution", func(t *testing.T) {
		_, err := e.Validate(42, builtin.NotEmpty())
		assert.ErrorIs(t, err, constraint.ErrValidatorResolution)
	})
}

func TestSize(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	t.Run("constructor checks bounds", func(t *testing.T) {
		cases := []struct {
			min, max int
			ok       bool
		}{
			{0, 0, true},
			{1, 3, true},
			{-1, 3, false},
			{0, -1, false},
			{3, 1, false},
		}
		for _, c := range cases {
			_, err := builtin.Size(c.min, c.max)
			if c.ok {
				assert.NoError(t, err, "%d..%d", c.min, c.max)
			} else {
				assert.ErrorIs(t, err, constraint.ErrInvalidArgument, "%d..%d", c.min, c.max)
			}
		}
	})

	t.Run("accepts lengths within bounds", func(t *testing.T) {
		decl := mustDecl(t)(builtin.Size(1, 3))
		assert.False(t, valid(t, e, "", decl))
		assert.True(t, valid(t, e, "a", decl))
		assert.True(t, valid(t, e, "abc", decl))
		assert.False(t, valid(t, e, "abcd", decl))
		assert.True(t, valid(t, e, "日本語", decl), "strings are measured in runes")
		assert.True(t, valid(t, e, []string{"x", "y"}, decl))
		assert.False(t, valid(t, e, map[int]bool{1: true, 2: true, 3: true, 4: true}, decl))
		assert.True(t, valid(t, e, nil, decl), "absent values pass")
	})

	t.Run("reports the interpolated message", func(t *testing.T) {
		vs, err := e.Validate("abcd", mustDecl(t)(builtin.Size(1, 3)))
		require.NoError(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "size must be between 1 and 3", vs[0].Message())
		assert.Equal(t, builtin.MessageSize, vs[0].MessageTemplate())
		assert.Equal(t, "abcd", vs[0].InvalidValue())
	})

	t.Run("inconsistent declared attributes fail initialization", func(t *testing.T) {
		decl := &constraint.Declaration{Kind: builtin.KindSize, Attributes: constraint.Attributes{"min": 5, "max": 2}}
		_, err := e.Validate("abc", decl)
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
	})

	t.Run("defaults to an unbounded max", func(t *testing.T) {
		decl := &constraint.Declaration{Kind: builtin.KindSize, Attributes: constraint.Attributes{"min": 2}}
		assert.True(t, valid(t, e, make([]int, 1000), decl))
		assert.False(t, valid(t, e, "a", decl))
	})
}

func TestMinMax(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	assert.True(t, valid(t, e, 10, builtin.Min(10)))
	assert.False(t, valid(t, e, int8(9), builtin.Min(10)))
	assert.True(t, valid(t, e, uint64(1<<63), builtin.Min(10)))
	assert.True(t, valid(t, e, uint(0), builtin.Min(-5)))

	assert.True(t, valid(t, e, int64(-3), builtin.Max(-3)))
	assert.False(t, valid(t, e, 4, builtin.Max(3)))
	assert.False(t, valid(t, e, uint64(1<<63), builtin.Max(10)))
	assert.False(t, valid(t, e, uint8(0), builtin.Max(-1)))

	var n *int
	assert.True(t, valid(t, e, n, builtin.Min(1)), "absent values pass")

	t.Run("messages", func(t *testing.T) {
		vs, err := e.Validate(1, builtin.Min(5))
		require.NoError(t, err)
		assert.Equal(t, "must be greater than or equal to 5", vs[0].Message())
	})

	t.Run("fractional values have no validator", func(t *testing.T) {
		_, err := e.Validate(3.5, builtin.Min(1))
		assert.ErrorIs(t, err, constraint.ErrValidatorResolution)
	})

	t.Run("missing value attribute", func(t *testing.T) {
		_, err := e.Validate(3, &constraint.Declaration{Kind: builtin.KindMax})
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
	})
}

func TestPattern(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	t.Run("matches the whole string", func(t *testing.T) {
		decl := mustDecl(t)(builtin.Pattern("[a-z]+"))
		assert.True(t, valid(t, e, "abc", decl))
		assert.False(t, valid(t, e, "abc1", decl))
		assert.False(t, valid(t, e, "1abc", decl))
		assert.True(t, valid(t, e, email("abc"), decl))
	})

	t.Run("reports the pattern in the message", func(t *testing.T) {
		vs, err := e.Validate("abc1", mustDecl(t)(builtin.Pattern("[a-z]+")))
		require.NoError(t, err)
		assert.Equal(t, `must match "[a-z]+"`, vs[0].Message())
	})

	t.Run("flags", func(t *testing.T) {
		ci := mustDecl(t)(builtin.Pattern("abc", builtin.FlagCaseInsensitive))
		assert.True(t, valid(t, e, "ABC", ci))

		literal := mustDecl(t)(builtin.Pattern("a.c", builtin.FlagLiteral))
		assert.True(t, valid(t, e, "a.c", literal))
		assert.False(t, valid(t, e, "abc", literal))

		multiline := mustDecl(t)(builtin.Pattern("a$", builtin.FlagMultiline))
		assert.False(t, valid(t, e, "a\nb", multiline), "multiline still matches the whole input")

		dotAll := mustDecl(t)(builtin.Pattern("a.b", builtin.FlagDotAll))
		assert.True(t, valid(t, e, "a\nb", dotAll))
	})

	t.Run("malformed patterns are invalid arguments", func(t *testing.T) {
		_, err := builtin.Pattern("[a-")
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)

		_, err = builtin.Pattern("a", builtin.Flag("COMMENTS"))
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)

		decl := &constraint.Declaration{Kind: builtin.KindPattern, Attributes: constraint.Attributes{"regexp": "(unclosed"}}
		_, err = e.Validate("x", decl)
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
	})

	t.Run("repeated literal flag quotes once", func(t *testing.T) {
		decl := mustDecl(t)(builtin.Pattern("a.c", builtin.FlagLiteral, builtin.FlagLiteral))
		assert.True(t, valid(t, e, "a.c", decl))
		assert.False(t, valid(t, e, `a\.c`, decl))
	})

	t.Run("every unsupported flag is reported", func(t *testing.T) {
		_, err := builtin.Pattern("a", builtin.Flag("COMMENTS"), builtin.FlagLiteral, builtin.Flag("UNIX_LINES"))
		require.ErrorIs(t, err, constraint.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "COMMENTS")
		assert.Contains(t, err.Error(), "UNIX_LINES")
	})

	t.Run("flags decoded from configuration", func(t *testing.T) {
		decl := &constraint.Declaration{Kind: builtin.KindPattern, Attributes: constraint.Attributes{
			"regexp": "yes",
			"flags":  []any{"case_insensitive"},
		}}
		assert.True(t, valid(t, e, "YES", decl))
	})
}

func TestTemporal(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	later := now.Add(time.Second)
	earlier := now.Add(-time.Second)

	assert.True(t, valid(t, e, later, builtin.Future(false)))
	assert.False(t, valid(t, e, earlier, builtin.Future(false)))
	assert.False(t, valid(t, e, now, builtin.Future(false)))
	assert.True(t, valid(t, e, now, builtin.Future(true)))

	assert.True(t, valid(t, e, earlier, builtin.Past(false)))
	assert.False(t, valid(t, e, later, builtin.Past(true)))
	assert.False(t, valid(t, e, now, builtin.Past(false)))
	assert.True(t, valid(t, e, now, builtin.Past(true)))

	assert.True(t, valid(t, e, &later, builtin.Future(false)), "pointers are dereferenced")
	assert.True(t, valid(t, e, (*time.Time)(nil), builtin.Future(false)), "absent values pass")

	vs, err := e.Validate(earlier, builtin.Future(false))
	require.NoError(t, err)
	assert.Equal(t, "must be a future date", vs[0].Message())

	_, err = e.Validate("2026-01-01", builtin.Future(false))
	assert.ErrorIs(t, err, constraint.ErrValidatorResolution)

	t.Run("system clock is the default", func(t *testing.T) {
		r := constraint.NewRegistry()
		require.NoError(t, builtin.Register(r, builtin.WithClock(nil)))
		eng := constraint.NewEngine(r)
		vs, err := eng.Validate(time.Now().Add(time.Hour), builtin.Future(false))
		require.NoError(t, err)
		assert.Empty(t, vs)
	})
}
