package columnbasis

import "errors"

// ErrInvalidMinimumColumnBasis indicates a minimum_column_basis string
// that does not match the grammar of spec.md §6.
var ErrInvalidMinimumColumnBasis = errors.New("columnbasis: invalid minimum_column_basis")

// ErrOutOfRange indicates a serum index outside the bases slice.
var ErrOutOfRange = errors.New("columnbasis: serum index out of range")
