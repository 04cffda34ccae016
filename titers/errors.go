package titers

import "errors"

// Sentinel errors for the titers package.
var (
	// ErrOutOfRange indicates an (antigen, serum) index outside the matrix bounds.
	ErrOutOfRange = errors.New("titers: index out of range")

	// ErrTitersCannotBeModified indicates SetTiter was called on a table with
	// one or more layers (spec.md §4.2): layered tables are derived, read-only.
	ErrTitersCannotBeModified = errors.New("titers: cannot modify a layered table")

	// ErrDataNotAvailable indicates a layer-only query (AntigensSeraOfLayer,
	// LayersWithAntigen, LayersWithSerum) was made on a non-layered table.
	ErrDataNotAvailable = errors.New("titers: layer data not available")

	// ErrInvalidDimensions indicates a non-positive antigen or serum count.
	ErrInvalidDimensions = errors.New("titers: dimensions must be > 0")
)
