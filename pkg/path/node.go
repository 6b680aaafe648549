package path

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies what a path node refers to.
type Kind uint8

const (
	KindProperty Kind = iota
	KindBean
	KindContainerElement
	KindParameter
	KindReturnValue
	KindMethod
	KindConstructor
)

var kindNames = [...]string{
	KindProperty:         "property",
	KindBean:             "bean",
	KindContainerElement: "container-element",
	KindParameter:        "parameter",
	KindReturnValue:      "return-value",
	KindMethod:           "method",
	KindConstructor:      "constructor",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ContainerType is a capability token naming the shape of a container.
// Custom containers may use any non-empty value.
type ContainerType string

const (
	ContainerNone     ContainerType = ""
	ContainerList     ContainerType = "list"
	ContainerSet      ContainerType = "set"
	ContainerMap      ContainerType = "map"
	ContainerArray    ContainerType = "array"
	ContainerOptional ContainerType = "optional"
)

// NoTypeArgument marks a container element whose container has no type argument.
const NoTypeArgument = -1

// Separator joins node names in the string form of a path.
const Separator = "."

// Key locates a node inside an associative container.
// The zero Key is not a valid key.
type Key struct {
	value any
}

// NewKey wraps v as a map key. v must be non-nil and comparable, including
// any values held in its interface fields.
func NewKey(v any) (Key, error) {
	if v == nil {
		return Key{}, fmt.Errorf("%w: key must not be nil", ErrInvalidKey)
	}
	if !reflect.ValueOf(v).Comparable() {
		return Key{}, fmt.Errorf("%w: key of type %T is not comparable", ErrInvalidKey, v)
	}
	return Key{value: v}, nil
}

// Value returns the wrapped key value.
func (k Key) Value() any { return k.value }

func (k Key) String() string { return fmt.Sprint(k.value) }

// Node is one element of a Path. Nodes are immutable.
type Node struct {
	kind          Kind
	name          string
	inIterable    bool
	hasIndex      bool
	index         int
	hasKey        bool
	key           Key
	containerType ContainerType
	typeArgIndex  int
	paramIndex    int
}

func newNode(kind Kind, name string) Node {
	return Node{kind: kind, name: name, typeArgIndex: NoTypeArgument, paramIndex: -1}
}

func (n Node) Kind() Kind { return n.kind }

// Name is empty for bean nodes.
func (n Node) Name() string { return n.name }

// InIterable reports whether the node is an element of an iterable or map.
func (n Node) InIterable() bool { return n.inIterable }

func (n Node) Index() (int, bool) { return n.index, n.hasIndex }

func (n Node) Key() (Key, bool) { return n.key, n.hasKey }

// ContainerType returns ContainerNone when the node carries no container metadata.
func (n Node) ContainerType() ContainerType { return n.containerType }

func (n Node) TypeArgumentIndex() (int, bool) {
	return n.typeArgIndex, n.typeArgIndex != NoTypeArgument
}

// ParameterIndex is set for parameter nodes only.
func (n Node) ParameterIndex() (int, bool) {
	return n.paramIndex, n.kind == KindParameter
}

// Equal reports whether both nodes carry the same data.
func (n Node) Equal(o Node) bool {
	return n.kind == o.kind &&
		n.name == o.name &&
		n.inIterable == o.inIterable &&
		n.hasIndex == o.hasIndex && n.index == o.index &&
		n.hasKey == o.hasKey && n.key.value == o.key.value &&
		n.containerType == o.containerType &&
		n.typeArgIndex == o.typeArgIndex &&
		n.paramIndex == o.paramIndex
}

// String renders the node the way it appears in a path: its name,
// preceded by the bracketed position when it sits in an iterable.
func (n Node) String() string {
	var sb strings.Builder
	n.writePosition(&sb)
	sb.WriteString(n.name)
	return sb.String()
}

func (n Node) writePosition(sb *strings.Builder) {
	if !n.inIterable {
		return
	}
	sb.WriteByte('[')
	switch {
	case n.hasIndex:
		sb.WriteString(strconv.Itoa(n.index))
	case n.hasKey:
		sb.WriteString(n.key.String())
	}
	sb.WriteByte(']')
}
