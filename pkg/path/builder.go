package path

import (
	"fmt"
	"strings"
)

// Builder accumulates nodes and produces immutable Path snapshots.
// It is not safe for concurrent use.
type Builder struct {
	nodes []Node
}

// NewBuilder returns a builder that starts with the nodes of base.
func NewBuilder(base Path) *Builder {
	b := &Builder{nodes: make([]Node, len(base.nodes), len(base.nodes)+4)}
	copy(b.nodes, base.nodes)
	return b
}

// Path returns a snapshot of the nodes added so far.
func (b *Builder) Path() Path {
	nodes := make([]Node, len(b.nodes))
	copy(nodes, b.nodes)
	return Path{nodes: nodes}
}

func (b *Builder) Len() int { return len(b.nodes) }

func (b *Builder) AddProperty(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	b.nodes = append(b.nodes, newNode(KindProperty, name))
	return nil
}

func (b *Builder) AddBean() {
	b.nodes = append(b.nodes, newNode(KindBean, ""))
}

// AddContainerElement appends a node standing for an element of a container.
// typeArg is the container's type argument index or NoTypeArgument.
func (b *Builder) AddContainerElement(name string, ct ContainerType, typeArg int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateContainer(ct, typeArg); err != nil {
		return err
	}
	n := newNode(KindContainerElement, name)
	n.containerType = ct
	n.typeArgIndex = typeArg
	b.nodes = append(b.nodes, n)
	return nil
}

func (b *Builder) AddParameter(name string, index int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if index < 0 {
		return fmt.Errorf("%w: parameter index %d is negative", ErrInvalidIndex, index)
	}
	n := newNode(KindParameter, name)
	n.paramIndex = index
	b.nodes = append(b.nodes, n)
	return nil
}

func (b *Builder) AddReturnValue() {
	b.nodes = append(b.nodes, newNode(KindReturnValue, "<return value>"))
}

func (b *Builder) AddMethod(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	b.nodes = append(b.nodes, newNode(KindMethod, name))
	return nil
}

func (b *Builder) AddConstructor(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	b.nodes = append(b.nodes, newNode(KindConstructor, name))
	return nil
}

// MarkInIterable flags the last node as an element of an iterable or map.
func (b *Builder) MarkInIterable() error {
	n, err := b.last()
	if err != nil {
		return err
	}
	n.inIterable = true
	return nil
}

// SetIndex places the last node at position i of its parent iterable.
func (b *Builder) SetIndex(i int) error {
	n, err := b.placeable()
	if err != nil {
		return err
	}
	if i < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidIndex, i)
	}
	n.index, n.hasIndex = i, true
	return nil
}

// SetKey places the last node under key k of its parent map.
func (b *Builder) SetKey(k any) error {
	n, err := b.placeable()
	if err != nil {
		return err
	}
	key, err := NewKey(k)
	if err != nil {
		return err
	}
	n.key, n.hasKey = key, true
	return nil
}

// SetContainer records container metadata on the last node.
func (b *Builder) SetContainer(ct ContainerType, typeArg int) error {
	n, err := b.last()
	if err != nil {
		return err
	}
	if err := validateContainer(ct, typeArg); err != nil {
		return err
	}
	n.containerType = ct
	n.typeArgIndex = typeArg
	return nil
}

func (b *Builder) last() (*Node, error) {
	if len(b.nodes) == 0 {
		return nil, ErrNoCurrentNode
	}
	return &b.nodes[len(b.nodes)-1], nil
}

func (b *Builder) placeable() (*Node, error) {
	n, err := b.last()
	if err != nil {
		return nil, err
	}
	if !n.inIterable {
		return nil, fmt.Errorf("%w: %q", ErrNotIterable, n.name)
	}
	if n.hasIndex || n.hasKey {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyPlaced, n.name)
	}
	return n, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, Separator)
	}
	return nil
}

func validateContainer(ct ContainerType, typeArg int) error {
	if ct == ContainerNone {
		return fmt.Errorf("%w: container type is empty", ErrInvalidContainer)
	}
	if typeArg < NoTypeArgument {
		return fmt.Errorf("%w: type argument index %d", ErrInvalidContainer, typeArg)
	}
	return nil
}
