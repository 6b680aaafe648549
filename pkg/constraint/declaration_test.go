package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

func TestAttributes(t *testing.T) {
	t.Parallel()

	attrs := constraint.Attributes{
		"int":     7,
		"int64":   int64(-3),
		"uint":    uint(5),
		"float":   float64(12),
		"frac":    1.5,
		"huge":    uint64(1 << 63),
		"bool":    true,
		"string":  "x",
		"strings": []string{"a", "b"},
		"anys":    []any{"c", "d"},
		"mixed":   []any{"c", 1},
	}

	t.Run("integers", func(t *testing.T) {
		t.Parallel()

		for name, want := range map[string]int64{"int": 7, "int64": -3, "uint": 5, "float": 12} {
			got, err := attrs.Int(name, 0)
			require.NoError(t, err, name)
			assert.Equal(t, want, got, name)
		}

		got, err := attrs.Int("missing", 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)

		for _, name := range []string{"frac", "huge", "string"} {
			_, err := attrs.Int(name, 0)
			assert.ErrorIs(t, err, constraint.ErrInvalidArgument, name)
		}
	})

	t.Run("booleans", func(t *testing.T) {
		t.Parallel()

		b, err := attrs.Bool("bool", false)
		require.NoError(t, err)
		assert.True(t, b)

		b, err = attrs.Bool("missing", true)
		require.NoError(t, err)
		assert.True(t, b)

		_, err = attrs.Bool("string", false)
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
	})

	t.Run("strings", func(t *testing.T) {
		t.Parallel()

		s, err := attrs.String("string")
		require.NoError(t, err)
		assert.Equal(t, "x", s)

		_, err = attrs.String("missing")
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
		_, err = attrs.String("int")
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)

		list, err := attrs.Strings("strings")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, list)

		list, err = attrs.Strings("anys")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d"}, list)

		list, err = attrs.Strings("missing")
		require.NoError(t, err)
		assert.Nil(t, list)

		_, err = attrs.Strings("mixed")
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
		_, err = attrs.Strings("int")
		assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
	})

	t.Run("has", func(t *testing.T) {
		t.Parallel()
		assert.True(t, attrs.Has("int"))
		assert.False(t, attrs.Has("missing"))
	})
}

func TestDeclaration_YAML(t *testing.T) {
	t.Parallel()

	src := `
kind: size
message: "{custom}"
groups: [default]
attributes:
  min: 1
  max: 5
`
	var decl constraint.Declaration
	require.NoError(t, yaml.Unmarshal([]byte(src), &decl))

	assert.Equal(t, "size", decl.Kind)
	assert.Equal(t, "{custom}", decl.Message)
	assert.Equal(t, []string{"default"}, decl.Groups)

	maxLen, err := decl.Attributes.Int("max", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), maxLen)
	assert.Equal(t, "size", (&constraint.Declaration{Kind: "size"}).String())
}
