package chart

import "errors"

// Sentinel errors for the chart package, realizing spec.md §7's
// InvalidData and DataNotAvailable error kinds at the aggregate level.
var (
	// ErrInvalidData indicates malformed chart construction: antigen/serum
	// counts that disagree with the titer table, a projection whose point
	// count doesn't match, or a layered chart with fewer than two layers.
	ErrInvalidData = errors.New("chart: invalid data")

	// ErrOutOfRange indicates an antigen/serum/projection index outside bounds.
	ErrOutOfRange = errors.New("chart: index out of range")
)
