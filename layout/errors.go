package layout

import "errors"

// ErrOutOfRange indicates a point or dimension index outside bounds.
var ErrOutOfRange = errors.New("layout: index out of range")

// ErrInvalidDimensions indicates a non-positive point count or dimension count.
var ErrInvalidDimensions = errors.New("layout: dimensions must be > 0")
