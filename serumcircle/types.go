package serumcircle

import "fmt"

// FailureMode tags why a radius could not be computed, or FailNone on
// success (spec.md §4.12 "Failure modes (each reported, never thrown
// across the public boundary)").
type FailureMode int

const (
	// FailNone indicates Radius holds a valid computed value.
	FailNone FailureMode = iota
	// FailNonRegularHomologousTiter indicates the homologous titer was
	// thresholded, dodgy, don't-care, or invalid.
	FailNonRegularHomologousTiter
	// FailTiterTooLow indicates the homologous titer's raw value was <= 0.
	FailTiterTooLow
	// FailSerumDisconnected indicates the serum's map point has no
	// coordinates (empirical radius only).
	FailSerumDisconnected
	// FailAntigenDisconnected indicates a candidate antigen's map point
	// could not be measured against the serum point (empirical radius
	// only), aborting the fit outright. A disconnected candidate that is
	// merely excluded from an otherwise-successful fit does not set this;
	// see Result.ExcludedAntigens.
	FailAntigenDisconnected
	// FailNotCalculated indicates no usable candidate antigens remained
	// after exclusions (empirical radius only).
	FailNotCalculated
)

// String renders the failure-mode name used in diagnostics, matching
// spec.md §4.12's snake_case vocabulary.
func (f FailureMode) String() string {
	switch f {
	case FailNone:
		return "none"
	case FailNonRegularHomologousTiter:
		return "non_regular_homologous_titer"
	case FailTiterTooLow:
		return "titer_too_low"
	case FailSerumDisconnected:
		return "serum_disconnected"
	case FailAntigenDisconnected:
		return "antigen_disconnected"
	case FailNotCalculated:
		return "not_calculated"
	default:
		return fmt.Sprintf("failure(%d)", int(f))
	}
}

// Result is the outcome of Theoretical or Empirical.
type Result struct {
	Radius float64
	// Failure is FailNone on success. Theoretical/Empirical still return
	// a non-nil error alongside a non-FailNone Result so callers using
	// errors.Is(err, ErrSerumCoverage) and callers inspecting
	// Result.Failure both work.
	Failure FailureMode
	// ExcludedAntigens lists candidate antigen indices dropped from an
	// Empirical fit because their map point was disconnected. Their
	// exclusion alone does not make the fit a failure.
	ExcludedAntigens []int
}

// defaultFold is the standard twofold-dilution protection margin in
// log2 units (spec.md §4.12 "a fold (default 2 log units)").
const defaultFold = 2.0

// defaultMinEnforcedRadius is the empirical radius floor (spec.md §4.12
// "Minimum enforced radius is 2.0"); the theoretical radius enforces no
// such floor (spec.md §9's deliberate asymmetry).
const defaultMinEnforcedRadius = 2.0

// defaultGridStep is the empirical radius search's candidate-radius
// step size in map units.
const defaultGridStep = 0.1
