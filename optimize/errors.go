package optimize

import "errors"

// Sentinel errors for the optimize package.
var (
	// ErrOptimization indicates a non-finite gradient or stress value was
	// detected during minimization (spec.md §4.6).
	ErrOptimization = errors.New("optimize: non-finite gradient or stress")

	// ErrTooFewConnectedPoints indicates relax was asked to run with
	// fewer than 3 connected points (spec.md §4.9 step 3).
	ErrTooFewConnectedPoints = errors.New("optimize: fewer than 3 connected points")

	// ErrInvalidDiameter indicates a diameter factory produced a NaN or
	// non-positive diameter (spec.md §4.5 "Fails if diameter becomes NaN/0").
	ErrInvalidDiameter = errors.New("optimize: invalid diameter")

	// ErrUnknownMethod indicates a Method value outside LBFGSPCA/CGPCA.
	ErrUnknownMethod = errors.New("optimize: unknown method")

	// ErrUnknownPrecision indicates a Precision value outside the
	// Rough/VeryRough/Fine set.
	ErrUnknownPrecision = errors.New("optimize: unknown precision")

	// ErrPCAFailed indicates dimension annealing's SVD (or its Jacobi
	// fallback) failed to produce a decomposition.
	ErrPCAFailed = errors.New("optimize: PCA decomposition failed")
)
