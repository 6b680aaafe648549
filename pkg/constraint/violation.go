package constraint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/validation/pkg/path"
)

// Violation records one failed constraint. Violations are immutable.
type Violation struct {
	constraint   string
	message      string
	template     string
	invalidValue any
	rootBean     any
	rootBeanType reflect.Type
	path         path.Path
}

// Constraint returns the kind of the violated constraint.
func (v Violation) Constraint() string { return v.constraint }

// Message is the interpolated message.
func (v Violation) Message() string { return v.message }

// MessageTemplate is the template the message was interpolated from.
func (v Violation) MessageTemplate() string { return v.template }

func (v Violation) InvalidValue() any { return v.invalidValue }

// RootBean is nil when validation did not start from a bean.
func (v Violation) RootBean() any { return v.rootBean }

func (v Violation) RootBeanType() reflect.Type { return v.rootBeanType }

func (v Violation) Path() path.Path { return v.path }

func (v Violation) String() string {
	if v.path.IsEmpty() {
		return v.message
	}
	return v.path.String() + ": " + v.message
}

// Violations is the set of violations produced by a validation run.
// It implements error so it can be returned from validation entry points.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "constraint violations"
	}
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return "constraint violations: " + strings.Join(parts, "; ")
}

// Has reports whether a violation exists at the given dotted path.
func (vs Violations) Has(p string) bool {
	for _, v := range vs {
		if v.path.String() == p {
			return true
		}
	}
	return false
}

// Get returns the messages of the violations at the given dotted path.
func (vs Violations) Get(p string) []string {
	var messages []string
	for _, v := range vs {
		if v.path.String() == p {
			messages = append(messages, v.message)
		}
	}
	return messages
}

// Paths returns the distinct dotted paths in first-seen order.
func (vs Violations) Paths() []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range vs {
		p := v.path.String()
		if !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	return out
}

func (vs Violations) IsEmpty() bool { return len(vs) == 0 }

// Err returns vs as an error, or nil when there are no violations.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// ExtractViolations returns the Violations carried by err, if any.
func ExtractViolations(err error) Violations {
	var vs Violations
	if errors.As(err, &vs) {
		return vs
	}
	return nil
}

func IsViolations(err error) bool {
	var vs Violations
	return errors.As(err, &vs)
}

func (v Violation) GoString() string {
	return fmt.Sprintf("constraint.Violation{%s %q at %q}", v.constraint, v.message, v.path)
}
