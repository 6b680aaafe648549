package constraint

import (
	"errors"

	"github.com/dmitrymomot/validation/pkg/path"
)

// violationBuilder is the state shared by every builder stage of one
// BuildConstraintViolationWithTemplate call.
type violationBuilder struct {
	ctx      *Context
	template string
	nodes    *path.Builder
	consumed bool
	err      error
}

// usable reports whether op may proceed. Calls after finalization are
// recorded as illegal state; calls after a failure are ignored.
func (b *violationBuilder) usable(op string) bool {
	if b.consumed {
		b.ctx.fail(illegalState("%s called after AddConstraintViolation", op))
		return false
	}
	return b.err == nil
}

func (b *violationBuilder) fail(err error) {
	if errors.Is(err, path.ErrInvalidName) ||
		errors.Is(err, path.ErrInvalidIndex) ||
		errors.Is(err, path.ErrInvalidKey) ||
		errors.Is(err, path.ErrInvalidContainer) {
		err = errors.Join(ErrInvalidArgument, err)
	} else if !errors.Is(err, ErrInvalidArgument) {
		err = errors.Join(ErrIllegalState, err)
	}
	if b.err == nil {
		b.err = err
	}
	b.ctx.fail(err)
}

func (b *violationBuilder) do(op string, fn func() error) {
	if !b.usable(op) {
		return
	}
	if err := fn(); err != nil {
		b.fail(err)
	}
}

func (b *violationBuilder) finalize() error {
	if b.consumed {
		err := illegalState("AddConstraintViolation called twice")
		b.ctx.fail(err)
		return err
	}
	b.consumed = true
	if b.err != nil {
		return b.err
	}
	b.ctx.addViolation(b.template, b.nodes.Path())
	return nil
}

type finalizer struct{ b *violationBuilder }

// AddConstraintViolation materializes the violation and closes the builder.
// Every later call on the builder or on any stage it returned fails with
// ErrIllegalState.
func (f finalizer) AddConstraintViolation() error { return f.b.finalize() }

type nodeAdder struct{ b *violationBuilder }

// AddPropertyNode appends a property node. The name must not contain the
// path separator.
func (a nodeAdder) AddPropertyNode(name string) NodeBuilderCustomizable {
	a.b.do("AddPropertyNode", func() error { return a.b.nodes.AddProperty(name) })
	return NodeBuilderCustomizable{nodeAdder: a, finalizer: finalizer(a)}
}

// AddBeanNode appends a bean node. No further nodes can follow it.
func (a nodeAdder) AddBeanNode() LeafNodeBuilderCustomizable {
	a.b.do("AddBeanNode", func() error {
		a.b.nodes.AddBean()
		return nil
	})
	return LeafNodeBuilderCustomizable{finalizer: finalizer(a)}
}

// AddContainerElementNode appends a node for an element of a container.
// typeArg is the container's type argument index, or path.NoTypeArgument.
func (a nodeAdder) AddContainerElementNode(name string, ct path.ContainerType, typeArg int) ContainerElementNodeBuilderCustomizable {
	a.b.do("AddContainerElementNode", func() error {
		return a.b.nodes.AddContainerElement(name, ct, typeArg)
	})
	return ContainerElementNodeBuilderCustomizable{nodeAdder: a, finalizer: finalizer(a)}
}

func (a nodeAdder) inIterable(op string) {
	a.b.do(op, a.b.nodes.MarkInIterable)
}

func (a nodeAdder) inContainer(ct path.ContainerType, typeArg int) {
	a.b.do("InContainer", func() error { return a.b.nodes.SetContainer(ct, typeArg) })
}

func (a nodeAdder) atKey(key any) {
	a.b.do("AtKey", func() error { return a.b.nodes.SetKey(key) })
}

func (a nodeAdder) atIndex(i int) {
	a.b.do("AtIndex", func() error { return a.b.nodes.SetIndex(i) })
}

// ViolationBuilder is the initial stage returned by
// Context.BuildConstraintViolationWithTemplate.
type ViolationBuilder struct {
	nodeAdder
}

// AddParameterNode appends the node of the index-th parameter. It is only
// valid in cross-parameter validation and fails with ErrInvalidArgument
// otherwise or when index is out of range.
func (v ViolationBuilder) AddParameterNode(index int) NodeBuilderDefined {
	b := v.b
	if b.usable("AddParameterNode") {
		switch {
		case !b.ctx.crossParameter:
			b.fail(invalidArgument("parameter nodes are only allowed in cross-parameter validation"))
		case index < 0 || index >= len(b.ctx.params):
			b.fail(invalidArgument("parameter index %d out of range [0, %d)", index, len(b.ctx.params)))
		default:
			if err := b.nodes.AddParameter(b.ctx.params[index], index); err != nil {
				b.fail(err)
			}
		}
	}
	return NodeBuilderDefined{nodeAdder: v.nodeAdder, finalizer: finalizer(v.nodeAdder)}
}

// AddConstraintViolation finalizes a violation at the base path.
func (v ViolationBuilder) AddConstraintViolation() error { return v.b.finalize() }

// NodeBuilderCustomizable follows a property node that can still be placed
// in a container or an iterable.
type NodeBuilderCustomizable struct {
	nodeAdder
	finalizer
}

// InIterable marks the current node as an element of an iterable or map.
func (n NodeBuilderCustomizable) InIterable() NodeContextBuilder {
	n.inIterable("InIterable")
	return NodeContextBuilder(n)
}

// InContainer records the container the current node belongs to.
func (n NodeBuilderCustomizable) InContainer(ct path.ContainerType, typeArg int) NodeBuilderContained {
	n.inContainer(ct, typeArg)
	return NodeBuilderContained(n)
}

// NodeBuilderContained follows InContainer on a property node.
type NodeBuilderContained struct {
	nodeAdder
	finalizer
}

func (n NodeBuilderContained) InIterable() NodeContextBuilder {
	n.inIterable("InIterable")
	return NodeContextBuilder(n)
}

// NodeContextBuilder follows InIterable; the node may be located by key or index.
type NodeContextBuilder struct {
	nodeAdder
	finalizer
}

// AtKey locates the current node under key in its parent map.
func (n NodeContextBuilder) AtKey(key any) NodeBuilderDefined {
	n.atKey(key)
	return NodeBuilderDefined(n)
}

// AtIndex locates the current node at index in its parent iterable.
func (n NodeContextBuilder) AtIndex(index int) NodeBuilderDefined {
	n.atIndex(index)
	return NodeBuilderDefined(n)
}

// NodeBuilderDefined follows a fully described node.
type NodeBuilderDefined struct {
	nodeAdder
	finalizer
}

// LeafNodeBuilderCustomizable follows a bean node.
type LeafNodeBuilderCustomizable struct {
	finalizer
}

func (n LeafNodeBuilderCustomizable) InIterable() LeafNodeContextBuilder {
	nodeAdder(n.finalizer).inIterable("InIterable")
	return LeafNodeContextBuilder(n)
}

func (n LeafNodeBuilderCustomizable) InContainer(ct path.ContainerType, typeArg int) LeafNodeBuilderContained {
	nodeAdder(n.finalizer).inContainer(ct, typeArg)
	return LeafNodeBuilderContained(n)
}

type LeafNodeBuilderContained struct {
	finalizer
}

func (n LeafNodeBuilderContained) InIterable() LeafNodeContextBuilder {
	nodeAdder(n.finalizer).inIterable("InIterable")
	return LeafNodeContextBuilder(n)
}

type LeafNodeContextBuilder struct {
	finalizer
}

func (n LeafNodeContextBuilder) AtKey(key any) LeafNodeBuilderDefined {
	nodeAdder(n.finalizer).atKey(key)
	return LeafNodeBuilderDefined(n)
}

func (n LeafNodeContextBuilder) AtIndex(index int) LeafNodeBuilderDefined {
	nodeAdder(n.finalizer).atIndex(index)
	return LeafNodeBuilderDefined(n)
}

type LeafNodeBuilderDefined struct {
	finalizer
}

// ContainerElementNodeBuilderCustomizable follows a container element node.
type ContainerElementNodeBuilderCustomizable struct {
	nodeAdder
	finalizer
}

func (n ContainerElementNodeBuilderCustomizable) InIterable() ContainerElementNodeContextBuilder {
	n.inIterable("InIterable")
	return ContainerElementNodeContextBuilder(n)
}

type ContainerElementNodeContextBuilder struct {
	nodeAdder
	finalizer
}

func (n ContainerElementNodeContextBuilder) AtKey(key any) ContainerElementNodeBuilderDefined {
	n.atKey(key)
	return ContainerElementNodeBuilderDefined(n)
}

func (n ContainerElementNodeContextBuilder) AtIndex(index int) ContainerElementNodeBuilderDefined {
	n.atIndex(index)
	return ContainerElementNodeBuilderDefined(n)
}

type ContainerElementNodeBuilderDefined struct {
	nodeAdder
	finalizer
}
