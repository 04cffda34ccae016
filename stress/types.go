package stress

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/cartograph/tabledist"
)

// minDistance is the clamp floor applied to a zero map distance before
// dividing by it in the gradient (spec.md §4.4).
const minDistance = 1e-5

// sigmoidSteepness is the "10·" coefficient inside the logistic sigmoid
// that softens the less-than penalty (spec.md §4.4).
const sigmoidSteepness = 10.0

// EqualTolerance is the default tolerance for Equal, matching spec.md §9's
// "compare with a tolerance >= 1e-6" guidance.
const EqualTolerance = 1e-6

// Stress is the antigenic-map objective over a fixed set of table
// distances and a fixed point/dimension shape.
type Stress struct {
	numPoints int
	numDims   int
	regular   []tabledist.Entry
	lessThan  []tabledist.Entry

	unmovable        map[int]bool
	unmovableLastDim map[int]bool
}

// Masks groups the point-set masks that alter gradient behavior
// (spec.md §4.4 "Masks").
type Masks struct {
	// Unmovable points contribute to the objective but their gradient
	// is forced to zero in every dimension.
	Unmovable map[int]bool
	// UnmovableLastDim points' gradient is zeroed only in the last
	// dimension (numDims-1).
	UnmovableLastDim map[int]bool
}

// New builds a Stress over numPoints points in numDims dimensions from
// the given table distances and masks. Disconnected points need no
// special handling here: tabledist.Compute already excludes them from
// td, so no term references their coordinates.
func New(td tabledist.TableDistances, numPoints, numDims int, masks Masks) *Stress {
	s := &Stress{
		numPoints:        numPoints,
		numDims:          numDims,
		regular:          td.Regular,
		lessThan:         td.LessThan,
		unmovable:        masks.Unmovable,
		unmovableLastDim: masks.UnmovableLastDim,
	}
	if s.unmovable == nil {
		s.unmovable = map[int]bool{}
	}
	if s.unmovableLastDim == nil {
		s.unmovableLastDim = map[int]bool{}
	}

	return s
}

// NumPoints returns the point count the flat vector is shaped over.
func (s *Stress) NumPoints() int { return s.numPoints }

// NumDims returns the dimension count the flat vector is shaped over.
func (s *Stress) NumDims() int { return s.numDims }

// Len returns the expected length of a flat coordinate vector.
func (s *Stress) Len() int { return s.numPoints * s.numDims }

// sigmoid is the standard logistic function.
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// pointDistance computes the Euclidean distance between points i and j
// in the flat coordinate vector p, clamped to minDistance, plus the raw
// (i,j) coordinate difference vector used by the gradient.
func (s *Stress) pointDistance(p []float64, i, j int) (dist float64, diff []float64) {
	diff = make([]float64, s.numDims)
	for d := 0; d < s.numDims; d++ {
		diff[d] = p[i*s.numDims+d] - p[j*s.numDims+d]
	}
	dist = floats.Norm(diff, 2)
	if dist < minDistance {
		dist = minDistance
	}

	return dist, diff
}

// Equal reports whether two stress values match within tol (spec.md §9:
// export rounds to 8 decimals, comparisons should use tol >= 1e-6).
func Equal(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
