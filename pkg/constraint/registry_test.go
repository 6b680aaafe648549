package constraint_test

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

type stringer interface{ String() string }

type label string

func (l label) String() string { return string(l) }

type handle struct{ id int }

func (h handle) String() string { return fmt.Sprint(h.id) }
func (h handle) Len() int       { return h.id }

type lengther interface{ Len() int }

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	noop := validatorFunc(func(any, *constraint.Context) bool { return true })

	tests := []struct {
		name string
		def  constraint.Definition
	}{
		{"empty kind", constraint.Definition{Candidates: []constraint.Candidate{constraint.ForTarget(constraint.TargetAny, noop)}}},
		{"no candidates", constraint.Definition{Kind: "k"}},
		{"nil factory", constraint.Definition{Kind: "k", Candidates: []constraint.Candidate{constraint.ForTarget(constraint.TargetAny, nil)}}},
		{"duplicate targets", constraint.Definition{Kind: "k", Candidates: []constraint.Candidate{
			constraint.ForTarget(constraint.TargetMap, noop),
			constraint.ForTarget(constraint.TargetKinds("maps again", reflect.Map), noop),
		}}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			err := constraint.NewRegistry().Register(tt.def)
			assert.ErrorIs(t, err, constraint.ErrInvalidArgument)
		})
	}

	t.Run("rejects a kind registered twice", func(t *testing.T) {
		t.Parallel()

		r := constraint.NewRegistry()
		def := constraint.Definition{Kind: "k", Candidates: []constraint.Candidate{constraint.ForTarget(constraint.TargetAny, noop)}}
		require.NoError(t, r.Register(def))
		assert.ErrorIs(t, r.Register(def), constraint.ErrInvalidArgument)
	})

	t.Run("lists kinds and definitions", func(t *testing.T) {
		t.Parallel()

		r := constraint.NewRegistry()
		for _, k := range []string{"b", "a"} {
			require.NoError(t, r.Register(constraint.Definition{
				Kind:           k,
				DefaultMessage: "{" + k + "}",
				Candidates:     []constraint.Candidate{constraint.ForTarget(constraint.TargetAny, noop)},
			}))
		}
		assert.Equal(t, []string{"a", "b"}, r.Kinds())

		def, ok := r.Definition("a")
		require.True(t, ok)
		assert.Equal(t, "{a}", def.DefaultMessage)
		assert.Len(t, def.Candidates, 1)

		_, ok = r.Definition("missing")
		assert.False(t, ok)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	var seen atomic.Value
	r := constraint.NewRegistry()
	require.NoError(t, r.Register(constraint.Definition{
		Kind: "size",
		Candidates: []constraint.Candidate{
			constraint.ForTarget(constraint.TargetSequence, named("sequence", &seen)),
			constraint.ForTarget(constraint.TargetMap, named("map", &seen)),
		},
	}))
	require.NoError(t, r.Register(constraint.Definition{
		Kind: "text",
		Candidates: []constraint.Candidate{
			constraint.ForTarget(constraint.TargetAny, named("any", &seen)),
			constraint.ForTarget(constraint.TargetString, named("string", &seen)),
			constraint.ForTarget(constraint.TargetTime, named("time", &seen)),
		},
	}))
	require.NoError(t, r.Register(constraint.Definition{
		Kind: "ambiguous",
		Candidates: []constraint.Candidate{
			constraint.ForTarget(constraint.TargetType[stringer](), named("stringer", &seen)),
			constraint.ForTarget(constraint.TargetType[lengther](), named("lengther", &seen)),
		},
	}))
	require.NoError(t, r.Register(constraint.Definition{
		Kind: "presence",
		Candidates: []constraint.Candidate{
			constraint.ForTarget(constraint.TargetString, named("string", &seen)),
			constraint.ForTarget(constraint.TargetAny, named("any", &seen), constraint.AcceptsAbsent()),
		},
	}))

	resolveName := func(t *testing.T, kind string, value any) string {
		t.Helper()
		res, err := r.Resolve(kind, value)
		require.NoError(t, err)
		require.False(t, res.Skip)
		v := res.Candidate.New()
		v.IsValid(res.Value, nil)
		return seen.Load().(string)
	}

	t.Run("selects by runtime type", func(t *testing.T) {
		assert.Equal(t, "sequence", resolveName(t, "size", []string{"a"}))
		assert.Equal(t, "sequence", resolveName(t, "size", [2]int{}))
		assert.Equal(t, "map", resolveName(t, "size", map[string]int{"a": 1}))
	})

	t.Run("fails when no candidate accepts the type", func(t *testing.T) {
		_, err := r.Resolve("size", 42)
		require.ErrorIs(t, err, constraint.ErrValidatorResolution)
		assert.True(t, constraint.IsResolutionError(err))
		assert.Contains(t, err.Error(), "int")
	})

	t.Run("fails for unknown kinds", func(t *testing.T) {
		_, err := r.Resolve("missing", "x")
		require.ErrorIs(t, err, constraint.ErrValidatorResolution)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("prefers the most specific match", func(t *testing.T) {
		assert.Equal(t, "string", resolveName(t, "text", "hello"))
		assert.Equal(t, "string", resolveName(t, "text", label("named string")))
		assert.Equal(t, "time", resolveName(t, "text", time.Now()))
		assert.Equal(t, "any", resolveName(t, "text", 3.14))
	})

	t.Run("fails when matches are unrelated", func(t *testing.T) {
		_, err := r.Resolve("ambiguous", handle{id: 1})
		require.ErrorIs(t, err, constraint.ErrValidatorResolution)

		var resErr *constraint.ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "ambiguous", resErr.Kind)
		assert.ElementsMatch(t, []string{"constraint_test.stringer", "constraint_test.lengther"}, resErr.Candidates)
		assert.Equal(t, reflect.TypeOf(handle{}), resErr.Type)
	})

	t.Run("absent values are vacuously valid without a presence validator", func(t *testing.T) {
		res, err := r.Resolve("size", nil)
		require.NoError(t, err)
		assert.True(t, res.Skip)
		assert.True(t, res.Absent)

		var nilSlice *[]string
		res, err = r.Resolve("size", nilSlice)
		require.NoError(t, err)
		assert.True(t, res.Skip)
	})

	t.Run("absent values go to the presence validator", func(t *testing.T) {
		res, err := r.Resolve("presence", nil)
		require.NoError(t, err)
		assert.False(t, res.Skip)
		assert.True(t, res.Absent)
		assert.Equal(t, 1, res.Index)
		assert.Nil(t, res.Value)
	})

	t.Run("dereferences pointers", func(t *testing.T) {
		s := []int{1, 2}
		res, err := r.Resolve("size", &s)
		require.NoError(t, err)
		assert.Equal(t, s, res.Value)
		assert.False(t, res.Absent)
	})

	t.Run("concurrent lookups", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value := any([]int{i})
				if i%2 == 0 {
					value = map[int]int{i: i}
				}
				res, err := r.Resolve("size", value)
				assert.NoError(t, err)
				assert.Equal(t, i%2, 1-res.Index)
			}()
		}
		wg.Wait()
	})
}

func TestFor(t *testing.T) {
	t.Parallel()

	t.Run("adapts typed validators", func(t *testing.T) {
		t.Parallel()

		type args []any
		var got []any
		c := constraint.For(func() constraint.ConstraintValidator[[]any] {
			return typedFunc[[]any](func(v []any, _ *constraint.Context) bool {
				got = v
				return len(v) == 2
			})
		})
		assert.Equal(t, "[]interface {}", c.Target().String())

		v := c.New()
		require.NoError(t, v.Initialize(nil))
		assert.True(t, v.IsValid([]any{1, 2}, nil))
		assert.True(t, c.Target().Matches(reflect.TypeOf(args{})))
		assert.False(t, v.IsValid(args{1}, nil))
		assert.Equal(t, []any{1}, got)
	})

	t.Run("absent values reach typed validators as zero", func(t *testing.T) {
		t.Parallel()

		c := constraint.For(func() constraint.ConstraintValidator[string] {
			return typedFunc[string](func(v string, _ *constraint.Context) bool { return v != "" })
		}, constraint.AcceptsAbsent())
		assert.True(t, c.AcceptsAbsent())
		assert.False(t, c.New().IsValid(nil, nil))
	})
}

type typedFunc[T any] func(T, *constraint.Context) bool

func (f typedFunc[T]) Initialize(*constraint.Declaration) error { return nil }

func (f typedFunc[T]) IsValid(v T, ctx *constraint.Context) bool { return f(v, ctx) }
