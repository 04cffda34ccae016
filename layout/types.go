package layout

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Layout is a row-major point-count × num-dims coordinate array. A row
// that is entirely NaN marks a disconnected point (spec.md §3).
type Layout struct {
	numPoints, numDims int
	m                  *mat.Dense
}

// New constructs a Layout of the given shape with every coordinate NaN
// (every point starts disconnected, matching a freshly-constructed
// Projection before randomization, spec.md §3).
func New(numPoints, numDims int) (*Layout, error) {
	if numPoints <= 0 || numDims <= 0 {
		return nil, fmt.Errorf("layout.New(%d,%d): %w", numPoints, numDims, ErrInvalidDimensions)
	}
	data := make([]float64, numPoints*numDims)
	for i := range data {
		data[i] = math.NaN()
	}

	return &Layout{numPoints: numPoints, numDims: numDims, m: mat.NewDense(numPoints, numDims, data)}, nil
}

// FromMatrix wraps an existing gonum mat.Dense as a Layout without
// copying, for use by optimize's dimension-annealing and PCA steps.
func FromMatrix(m *mat.Dense) *Layout {
	r, c := m.Dims()

	return &Layout{numPoints: r, numDims: c, m: m}
}

// NumPoints returns the number of points (antigens+sera).
func (l *Layout) NumPoints() int { return l.numPoints }

// NumDims returns the number of coordinate dimensions.
func (l *Layout) NumDims() int { return l.numDims }

func (l *Layout) checkBounds(point, dim int) error {
	if point < 0 || point >= l.numPoints || dim < 0 || dim >= l.numDims {
		return fmt.Errorf("layout: (%d,%d) out of %dx%d: %w", point, dim, l.numPoints, l.numDims, ErrOutOfRange)
	}

	return nil
}

// At returns the coordinate of point in dimension dim.
func (l *Layout) At(point, dim int) (float64, error) {
	if err := l.checkBounds(point, dim); err != nil {
		return 0, err
	}

	return l.m.At(point, dim), nil
}

// Set assigns the coordinate of point in dimension dim.
func (l *Layout) Set(point, dim int, v float64) error {
	if err := l.checkBounds(point, dim); err != nil {
		return err
	}
	l.m.Set(point, dim, v)

	return nil
}

// PointHasCoordinates reports whether point's row contains no NaN.
func (l *Layout) PointHasCoordinates(point int) bool {
	for d := 0; d < l.numDims; d++ {
		if math.IsNaN(l.m.At(point, d)) {
			return false
		}
	}

	return true
}

// Disconnect sets point's entire row to NaN.
func (l *Layout) Disconnect(point int) error {
	if point < 0 || point >= l.numPoints {
		return fmt.Errorf("layout.Disconnect(%d): %w", point, ErrOutOfRange)
	}
	for d := 0; d < l.numDims; d++ {
		l.m.Set(point, d, math.NaN())
	}

	return nil
}

// Distance returns the Euclidean distance between points i and j. NaN
// if either point is disconnected.
func (l *Layout) Distance(i, j int) (float64, error) {
	if err := l.checkBounds(i, 0); err != nil {
		return 0, err
	}
	if err := l.checkBounds(j, 0); err != nil {
		return 0, err
	}
	sum := 0.0
	for d := 0; d < l.numDims; d++ {
		diff := l.m.At(i, d) - l.m.At(j, d)
		sum += diff * diff
	}

	return math.Sqrt(sum), nil
}

// BoundingBoxSides returns, for each dimension, the max-min span over
// points that have coordinates. Disconnected points are excluded.
func (l *Layout) BoundingBoxSides() []float64 {
	sides := make([]float64, l.numDims)
	mins := make([]float64, l.numDims)
	maxs := make([]float64, l.numDims)
	for d := range mins {
		mins[d] = math.Inf(1)
		maxs[d] = math.Inf(-1)
	}
	any := false
	for p := 0; p < l.numPoints; p++ {
		if !l.PointHasCoordinates(p) {
			continue
		}
		any = true
		for d := 0; d < l.numDims; d++ {
			v := l.m.At(p, d)
			if v < mins[d] {
				mins[d] = v
			}
			if v > maxs[d] {
				maxs[d] = v
			}
		}
	}
	if !any {
		return sides
	}
	for d := range sides {
		sides[d] = maxs[d] - mins[d]
	}

	return sides
}

// Area returns sqrt(sum of side_k^2) of the bounding box, the
// multiplier base used by randomizer's current_layout_area factory
// (spec.md §4.5).
func (l *Layout) Area() float64 {
	sides := l.BoundingBoxSides()
	sum := 0.0
	for _, s := range sides {
		sum += s * s
	}

	return math.Sqrt(sum)
}

// Clone returns a deep copy of l.
func (l *Layout) Clone() *Layout {
	m := mat.NewDense(l.numPoints, l.numDims, nil)
	m.Copy(l.m)

	return &Layout{numPoints: l.numPoints, numDims: l.numDims, m: m}
}

// Matrix exposes the underlying gonum mat.Dense for numerical-kernel
// consumers (optimize's PCA/dimension-annealing step). The row count is
// fixed at construction; optimize's disconnected-point guard only
// rewrites the values of disconnected rows (NaN to 0 and back).
func (l *Layout) Matrix() *mat.Dense { return l.m }

// Flatten returns the coordinates as a single flat vector, row-major,
// the representation optimize.Problem's objective function consumes.
func (l *Layout) Flatten() []float64 {
	out := make([]float64, l.numPoints*l.numDims)
	for p := 0; p < l.numPoints; p++ {
		for d := 0; d < l.numDims; d++ {
			out[p*l.numDims+d] = l.m.At(p, d)
		}
	}

	return out
}

// Unflatten overwrites l's coordinates from a flat vector produced by
// Flatten (or by an optimizer operating on that representation).
func (l *Layout) Unflatten(flat []float64) error {
	if len(flat) != l.numPoints*l.numDims {
		return fmt.Errorf("layout.Unflatten: length %d != %d: %w", len(flat), l.numPoints*l.numDims, ErrInvalidDimensions)
	}
	for p := 0; p < l.numPoints; p++ {
		for d := 0; d < l.numDims; d++ {
			l.m.Set(p, d, flat[p*l.numDims+d])
		}
	}

	return nil
}
