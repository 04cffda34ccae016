package projection

import "errors"

// Sentinel errors for the projection package.
var (
	// ErrInvalidDimensions indicates a non-positive point or dimension count.
	ErrInvalidDimensions = errors.New("projection: dimensions must be > 0")

	// ErrStressNotComputed indicates FinalStress was queried before any
	// optimization populated it.
	ErrStressNotComputed = errors.New("projection: stress not yet computed")

	// ErrDimensionMismatch indicates Procrustes was given projections
	// whose layouts disagree on dimension count.
	ErrDimensionMismatch = errors.New("projection: dimension mismatch")

	// ErrTooFewSharedPoints indicates Procrustes found fewer than 2
	// connected points shared between the two projections.
	ErrTooFewSharedPoints = errors.New("projection: too few shared connected points")
)
