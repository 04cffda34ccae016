package projections

import "errors"

// ErrOutOfRange indicates an index outside the collection's bounds.
var ErrOutOfRange = errors.New("projections: index out of range")
