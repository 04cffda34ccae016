package gridtest

import (
	"fmt"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/optimize"
)

// defaultGridStep is the grid-walk step size in map units (spec.md
// §4.11 "a grid step (default 0.1 map-unit)").
const defaultGridStep = 0.1

// defaultTrappedThreshold is the |Δ final_stress| threshold above which
// a strictly-better candidate is classified trapped rather than normal
// (spec.md §4.11).
const defaultTrappedThreshold = 0.25

// defaultHemisphereThreshold is the move-distance threshold above which
// a same-stress candidate is classified hemispheric (spec.md §4.11
// "hemisphering distance threshold of 1.0").
const defaultHemisphereThreshold = 1.0

// Classification is the per-point outcome of the grid-test probe.
type Classification int

const (
	// ClassExcluded marks a point with no table distances, or one that
	// is unmovable or disconnected: never probed.
	ClassExcluded Classification = iota
	// ClassNormal marks a point whose current position is already
	// optimal, or whose strictly-better candidate resolves close by at
	// similar stress.
	ClassNormal
	// ClassTrapped marks a point where a materially better minimum
	// exists (|Δ final_stress| > TrappedThreshold).
	ClassTrapped
	// ClassHemisphering marks a point with a same-stress alternative
	// position far from the current one (move distance > HemisphereThreshold).
	ClassHemisphering
)

// String renders the classification name used in diagnostics.
func (c Classification) String() string {
	switch c {
	case ClassExcluded:
		return "excluded"
	case ClassNormal:
		return "normal"
	case ClassTrapped:
		return "trapped"
	case ClassHemisphering:
		return "hemispheric"
	default:
		return fmt.Sprintf("classification(%d)", int(c))
	}
}

// PointResult is the grid-test outcome for a single point.
type PointResult struct {
	Point          int
	Classification Classification
	// BetterPosition holds the point's coordinates after the
	// rough-optimize pass from the grid-selected candidate; nil unless
	// Classification is ClassTrapped or ClassHemisphering.
	BetterPosition []float64
	// DeltaStress is newFinalStress - currentFinalStress for the
	// rough-optimize pass; zero for ClassExcluded/ClassNormal.
	DeltaStress float64
}

// Result is the full grid-test outcome, one PointResult per map point.
type Result struct {
	Points []PointResult
}

// Apply moves every trapped/hemispheric point whose DeltaStress is
// negative to its BetterPosition (spec.md §4.11 "apply... moves each
// trapped/hemispheric point to its better location when Δ final_stress
// < 0"); points that did not strictly improve are left untouched.
func (r *Result) Apply(l *layout.Layout) error {
	for _, pr := range r.Points {
		if pr.Classification != ClassTrapped && pr.Classification != ClassHemisphering {
			continue
		}
		if pr.DeltaStress >= 0 {
			continue
		}
		for d, v := range pr.BetterPosition {
			if err := l.Set(pr.Point, d, v); err != nil {
				return fmt.Errorf("gridtest.Apply(point=%d): %w", pr.Point, err)
			}
		}
	}

	return nil
}

// Options configures Run.
type Options struct {
	GridStep            float64
	TrappedThreshold    float64
	HemisphereThreshold float64
	// Method selects the rough-optimize algorithm run from a
	// grid-selected candidate position.
	Method optimize.Method
	// Excluded marks points to skip entirely (the caller's union of
	// unmovable and disconnected point sets, spec.md §4.11).
	Excluded map[int]bool
	// NumThreads bounds the per-point worker pool; 0 means
	// runtime.GOMAXPROCS(0).
	NumThreads int
}

func (o Options) resolve() Options {
	if o.GridStep <= 0 {
		o.GridStep = defaultGridStep
	}
	if o.TrappedThreshold <= 0 {
		o.TrappedThreshold = defaultTrappedThreshold
	}
	if o.HemisphereThreshold <= 0 {
		o.HemisphereThreshold = defaultHemisphereThreshold
	}
	if o.Excluded == nil {
		o.Excluded = map[int]bool{}
	}

	return o
}
