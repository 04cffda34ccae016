package optimize

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/randomizer"
	"github.com/katalvlaran/cartograph/stress"
	"github.com/katalvlaran/cartograph/tabledist"
	"github.com/katalvlaran/cartograph/titers"
)

// checkDiameter validates a computed diameter against spec.md §4.5's
// "Fails if diameter becomes NaN/0" requirement.
func checkDiameter(d float64) error {
	if math.IsNaN(d) || d <= 0 {
		return fmt.Errorf("optimize: diameter %v: %w", d, ErrInvalidDiameter)
	}

	return nil
}

// TableMaxDistanceRandomizer builds a randomizer.Randomizer whose
// diameter is titers.MaxDistance(column bases) (spec.md §4.5
// table_max_distance).
func TableMaxDistanceRandomizer(t *titers.Titers, cb *columnbasis.ColumnBases, seed uint64) (*randomizer.Randomizer, error) {
	d := t.MaxDistance(cb.Slice())
	if err := checkDiameter(d); err != nil {
		return nil, err
	}

	return randomizer.NewPlain(d, seed)
}

// CurrentLayoutAreaRandomizer builds a randomizer.Randomizer whose
// diameter is multiplier times the existing layout's bounding-box area
// (spec.md §4.5 current_layout_area).
func CurrentLayoutAreaRandomizer(l *layout.Layout, multiplier float64, seed uint64) (*randomizer.Randomizer, error) {
	d := multiplier * l.Area()
	if err := checkDiameter(d); err != nil {
		return nil, err
	}

	return randomizer.NewPlain(d, seed)
}

// FromSampleOptimizationRandomizer implements spec.md §4.5's third
// factory: build a table_max_distance randomizer, run one very-rough
// optimization from a fresh random layout, measure the resulting
// bounding box, and scale it by multiplier. This is the reason the
// diameter factories live in this package rather than in randomizer:
// the step below is itself a minimization run.
func FromSampleOptimizationRandomizer(
	t *titers.Titers,
	cb *columnbasis.ColumnBases,
	td tabledist.TableDistances,
	numDims int,
	multiplier float64,
	seed uint64,
) (*randomizer.Randomizer, error) {
	seed0, err := TableMaxDistanceRandomizer(t, cb, seed)
	if err != nil {
		return nil, err
	}

	numPoints := t.NumAntigens() + t.NumSera()
	sample, err := layout.New(numPoints, numDims)
	if err != nil {
		return nil, err
	}
	points := make([]int, numPoints)
	for i := range points {
		points[i] = i
	}
	if err := seed0.RandomizePoints(sample, points); err != nil {
		return nil, err
	}

	s := stress.New(td, numPoints, numDims, stress.Masks{})
	if _, err := Minimize(sample, s, LBFGSPCA, VeryRough); err != nil {
		return nil, err
	}

	d := multiplier * sample.Area()
	if err := checkDiameter(d); err != nil {
		return nil, err
	}

	return randomizer.NewPlain(d, seed)
}
