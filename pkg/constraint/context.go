package constraint

import (
	"reflect"

	"github.com/dmitrymomot/validation/pkg/path"
)

// Context is handed to a validator's IsValid. It exposes the default
// message template and opens violation builders.
//
// A Context belongs to a single evaluation and is not safe for concurrent use.
type Context struct {
	decl            *Declaration
	value           any
	rootBean        any
	rootBeanType    reflect.Type
	basePath        path.Path
	params          []string
	crossParameter  bool
	interpolator    MessageInterpolator
	defaultMessage  string
	defaultDisabled bool
	violations      []Violation
	err             error
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithRootBean sets the object validation started from.
func WithRootBean(bean any) ContextOption {
	return func(c *Context) {
		c.rootBean = bean
		if bean != nil && c.rootBeanType == nil {
			c.rootBeanType = reflect.TypeOf(bean)
		}
	}
}

// WithRootBeanType sets the root type when no root bean instance exists,
// for example when validating constructor parameters.
func WithRootBeanType(t reflect.Type) ContextOption {
	return func(c *Context) { c.rootBeanType = t }
}

// WithBasePath sets the path of the validated element. Builders append to it.
func WithBasePath(p path.Path) ContextOption {
	return func(c *Context) { c.basePath = p }
}

// WithParameters marks the evaluation as cross-parameter validation of a
// call with the given parameter names.
func WithParameters(names ...string) ContextOption {
	return func(c *Context) {
		c.crossParameter = true
		c.params = names
	}
}

func WithInterpolator(mi MessageInterpolator) ContextOption {
	return func(c *Context) {
		if mi != nil {
			c.interpolator = mi
		}
	}
}

// WithDefaultMessage sets the template used when the declaration has no message.
func WithDefaultMessage(template string) ContextOption {
	return func(c *Context) { c.defaultMessage = template }
}

// NewContext creates the context for validating value against decl.
func NewContext(decl *Declaration, value any, opts ...ContextOption) *Context {
	c := &Context{decl: decl, value: value}
	for _, opt := range opts {
		opt(c)
	}
	if c.interpolator == nil {
		c.interpolator = NewTemplateInterpolator()
	}
	return c
}

func (c *Context) Declaration() *Declaration { return c.decl }

// DefaultMessageTemplate returns the declared message template, or the
// constraint's default when none was declared.
func (c *Context) DefaultMessageTemplate() string {
	if c.decl != nil && c.decl.Message != "" {
		return c.decl.Message
	}
	return c.defaultMessage
}

// DisableDefaultConstraintViolation suppresses the violation that is
// otherwise reported at the base path when IsValid returns false.
func (c *Context) DisableDefaultConstraintViolation() {
	c.defaultDisabled = true
}

func (c *Context) DefaultConstraintViolationDisabled() bool { return c.defaultDisabled }

func (c *Context) IsCrossParameter() bool { return c.crossParameter }

// BuildConstraintViolationWithTemplate opens a builder for a custom
// violation. Nodes added to the builder are appended to the base path.
func (c *Context) BuildConstraintViolationWithTemplate(template string) ViolationBuilder {
	return ViolationBuilder{
		nodeAdder: nodeAdder{b: &violationBuilder{
			ctx:      c,
			template: template,
			nodes:    path.NewBuilder(c.basePath),
		}},
	}
}

// Err returns the first builder misuse recorded during the evaluation.
func (c *Context) Err() error { return c.err }

// Violations returns the custom violations finalized so far.
func (c *Context) Violations() Violations {
	out := make(Violations, len(c.violations))
	copy(out, c.violations)
	return out
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Context) newViolation(template string, p path.Path) Violation {
	var kind string
	if c.decl != nil {
		kind = c.decl.Kind
	}
	return Violation{
		constraint:   kind,
		message:      c.interpolator.Interpolate(template, MessageContext{Declaration: c.decl, Value: c.value}),
		template:     template,
		invalidValue: c.value,
		rootBean:     c.rootBean,
		rootBeanType: c.rootBeanType,
		path:         p,
	}
}

func (c *Context) addViolation(template string, p path.Path) {
	c.violations = append(c.violations, c.newViolation(template, p))
}

// defaultViolation is reported at the base path with the default template.
func (c *Context) defaultViolation() Violation {
	return c.newViolation(c.DefaultMessageTemplate(), c.basePath)
}
