package path

import (
	"iter"
	"strings"
)

// Path is an immutable sequence of nodes from the root object to a
// violating element. The zero value is the empty path.
type Path struct {
	nodes []Node
}

// FromProperties builds a path made of property nodes only.
func FromProperties(names ...string) (Path, error) {
	b := NewBuilder(Path{})
	for _, name := range names {
		if err := b.AddProperty(name); err != nil {
			return Path{}, err
		}
	}
	return b.Path(), nil
}

func (p Path) Len() int { return len(p.nodes) }

func (p Path) IsEmpty() bool { return len(p.nodes) == 0 }

// At returns the i-th node. It panics if i is out of range.
func (p Path) At(i int) Node { return p.nodes[i] }

// Nodes returns a copy of the nodes in order.
func (p Path) Nodes() []Node {
	out := make([]Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// All iterates the nodes from root to leaf.
func (p Path) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, n := range p.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Leaf returns the last node of the path.
func (p Path) Leaf() (Node, bool) {
	if len(p.nodes) == 0 {
		return Node{}, false
	}
	return p.nodes[len(p.nodes)-1], true
}

func (p Path) Equal(o Path) bool {
	if len(p.nodes) != len(o.nodes) {
		return false
	}
	for i := range p.nodes {
		if !p.nodes[i].Equal(o.nodes[i]) {
			return false
		}
	}
	return true
}

// String renders the path in dotted form, e.g. "addresses[home].<map value>.city".
func (p Path) String() string {
	var sb strings.Builder
	for _, n := range p.nodes {
		n.writePosition(&sb)
		if n.name == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(Separator)
		}
		sb.WriteString(n.name)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using the dotted form.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
