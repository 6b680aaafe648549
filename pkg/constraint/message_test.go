package constraint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

func TestTemplateInterpolator(t *testing.T) {
	t.Parallel()

	mi := constraint.NewTemplateInterpolator(
		map[string]string{
			"size.message":   "size must be between {min} and {max}",
			"nested.message": "{size.message}!",
			"override":       "first",
		},
		map[string]string{"override": "second"},
	)
	decl := &constraint.Declaration{
		Kind:       "size",
		Attributes: constraint.Attributes{"min": 1, "max": 3, "regexp": "^{a}$"},
	}
	mc := constraint.MessageContext{Declaration: decl, Value: "abcd"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"resolves bundle keys then attributes", "{size.message}", "size must be between 1 and 3"},
		{"resolves nested keys", "{nested.message}", "size must be between 1 and 3!"},
		{"later bundles win", "{override}", "second"},
		{"keeps unknown placeholders", "value {unknown} here", "value {unknown} here"},
		{"plain text is unchanged", "must not be null", "must not be null"},
		{"escaped braces are literal", `\{min\} is {min}`, "{min} is 1"},
		{"escaped dollar and backslash", `costs \$5 \\ {max}`, `costs $5 \ 3`},
		{"attribute values are not re-interpolated", "must match {regexp}", "must match ^{a}$"},
		{"unbalanced braces are kept", "{min", "{min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mi.Interpolate(tt.template, mc))
		})
	}

	t.Run("works without a declaration", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "{min}", mi.Interpolate("{min}", constraint.MessageContext{}))
	})
}

func TestEscapeMessageParameter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `\{a\}\$\\`, constraint.EscapeMessageParameter(`{a}$\`))
	assert.Equal(t, "plain", constraint.EscapeMessageParameter("plain"))

	mi := constraint.NewTemplateInterpolator(map[string]string{
		"literal": constraint.EscapeMessageParameter("{not a key}"),
	})
	assert.Equal(t, "{not a key}", mi.Interpolate("{literal}", constraint.MessageContext{}))
}
