package optimize

import (
	"fmt"
	"time"
)

// Precision selects the termination epsilon schedule for a minimization
// run (spec.md §4.6).
type Precision int

const (
	// Rough is the multi-start/incremental-relax warm-up precision.
	Rough Precision = iota
	// VeryRough is the precision used for the from_sample_optimization
	// diameter factory's one exploratory run (spec.md §4.5).
	VeryRough
	// Fine is the final, high-precision pass after dimension annealing.
	Fine
)

// String renders the precision the way it is persisted in .ace
// termination reports.
func (p Precision) String() string {
	switch p {
	case Rough:
		return "rough"
	case VeryRough:
		return "very_rough"
	case Fine:
		return "fine"
	default:
		return fmt.Sprintf("precision(%d)", int(p))
	}
}

// epsilons returns (gradient-threshold, function-convergence-threshold)
// for p, per the schedule in spec.md §4.6.
func (p Precision) epsilons() (epsG, epsX float64, err error) {
	switch p {
	case Rough:
		return 0.5, 1e-3, nil
	case VeryRough:
		return 1.0, 0.1, nil
	case Fine:
		return 1e-10, 0, nil
	default:
		return 0, 0, fmt.Errorf("Precision.epsilons(%d): %w", int(p), ErrUnknownPrecision)
	}
}

// Method selects the minimization algorithm (spec.md §4.6). Both names
// keep the "alglib_" prefix the spec's .ace files persist as the method
// identifier string; no ALGLIB binding is involved, gonum's
// optimize.LBFGS/optimize.CG back them directly.
type Method int

const (
	// LBFGSPCA is limited-memory BFGS, memory parameter 1, capped to a
	// maximum per-iteration displacement of 0.1 map units.
	LBFGSPCA Method = iota
	// CGPCA is nonlinear conjugate gradient with the same epsilon
	// schedule as LBFGSPCA and no step cap.
	CGPCA
)

// String renders the method the way it is persisted in .ace projections.
func (m Method) String() string {
	switch m {
	case LBFGSPCA:
		return "alglib_lbfgs_pca"
	case CGPCA:
		return "alglib_cg_pca"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// lbfgsStepCap is the maximum per-iteration displacement enforced on
// LBFGSPCA (spec.md §4.6 "step cap 0.1"); CGPCA has none.
const lbfgsStepCap = 0.1

// maxOuterIterations bounds the capped-displacement outer loop
// (see methods.go) so a pathological problem cannot spin forever.
const maxOuterIterations = 100000

// Result reports the outcome of a single minimization run (spec.md
// §4.6).
type Result struct {
	InitialStress     float64
	FinalStress       float64
	Iterations        int
	StressEvals       int
	TerminationReport string
	Elapsed           time.Duration
}

// Masks groups the point-set masks forwarded to stress.New (spec.md
// §4.4).
type Masks struct {
	Unmovable        map[int]bool
	UnmovableLastDim map[int]bool
}
