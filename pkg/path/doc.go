// Package path models the location of a constraint violation inside a
// validated object graph.
//
// A Path is an immutable, ordered sequence of nodes walked from the root
// object to the offending element. Each node has a kind (property, bean,
// container element, parameter, return value, method or constructor), an
// optional name and, when it sits inside an iterable, either an index or a
// key that locates it in its parent container. Container element nodes also
// carry a ContainerType token and the index of the container's type argument
// they stand for (0 for map keys, 1 for map values, and so on).
//
// # Building paths
//
// Paths are produced by a Builder, an append-only accumulator. Refinements
// (MarkInIterable, SetIndex, SetKey, SetContainer) apply to the last node.
//
//	b := path.NewBuilder(path.Path{})
//	_ = b.AddProperty("addresses")
//	_ = b.AddContainerElement("<map value>", path.ContainerMap, 1)
//	_ = b.MarkInIterable()
//	_ = b.SetKey("home")
//	_ = b.AddProperty("city")
//	p := b.Path()
//	fmt.Println(p) // addresses[home].<map value>.city
//
// Keys are opaque: any comparable value may be used, not only strings.
//
// # Error Handling
//
// Builder methods return sentinel errors (ErrInvalidName, ErrInvalidIndex,
// ErrInvalidKey, ErrInvalidContainer, ErrNoCurrentNode, ErrNotIterable,
// ErrAlreadyPlaced) wrapped with context; compare them with errors.Is.
package path
