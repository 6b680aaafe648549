package path

import "errors"

var (
	ErrInvalidName      = errors.New("path: invalid node name")
	ErrInvalidIndex     = errors.New("path: invalid index")
	ErrInvalidKey       = errors.New("path: invalid key")
	ErrInvalidContainer = errors.New("path: invalid container metadata")
	ErrNoCurrentNode    = errors.New("path: no node to refine")
	ErrNotIterable      = errors.New("path: node is not in an iterable")
	ErrAlreadyPlaced    = errors.New("path: node already has an index or key")
)
