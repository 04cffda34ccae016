package serumcircle

import (
	"fmt"

	"github.com/katalvlaran/cartograph/logging"
	"github.com/katalvlaran/cartograph/titer"
)

// validateHomologous checks the shared precondition of Theoretical,
// Empirical and Coverage: the homologous titer must be a genuine
// regular reading with a positive value.
func validateHomologous(h titer.Titer) (Result, error) {
	if !h.IsRegular() {
		return Result{Failure: FailNonRegularHomologousTiter},
			fmt.Errorf("serumcircle: homologous titer %q is not regular: %w", h, ErrSerumCoverage)
	}
	if v, _ := h.Value(); v <= 0 {
		return Result{Failure: FailTiterTooLow},
			fmt.Errorf("serumcircle: homologous titer %q is too low: %w", h, ErrSerumCoverage)
	}

	return Result{}, nil
}

// Theoretical implements spec.md §4.12's theoretical protection radius:
// fold + column_basis(s) - logged_for_column_bases(homologous_titer).
// Negative radii are logged as a warning but returned, not failed
// (spec.md §4.12/§9: theoretical enforces no minimum, unlike Empirical).
func Theoretical(columnBasis float64, homologousTiter titer.Titer, fold float64) (Result, error) {
	if bad, err := validateHomologous(homologousTiter); err != nil {
		return bad, err
	}

	radius := fold + columnBasis - homologousTiter.LoggedForColumnBases()
	if radius < 0 && logging.Enabled(logging.LevelSerumCircle) {
		logging.Logger.Warn().
			Float64("radius", radius).
			Float64("column_basis", columnBasis).
			Msg("serumcircle: theoretical radius is negative")
	}

	return Result{Radius: radius}, nil
}
