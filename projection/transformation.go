package projection

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cartograph/layout"
)

// Transformation is a 2-D/3-D affine map: a linear part (rotation,
// reflection, scale) composed with a translation (spec.md §3
// Projection.Transformation, supplemented here with Compose/Inverse/
// Apply per original_source/cc/ad).
type Transformation struct {
	dims        int
	linear      *mat.Dense // dims x dims
	translation []float64  // length dims
}

// Identity returns the dims-dimensional identity transformation.
func Identity(dims int) Transformation {
	linear := mat.NewDense(dims, dims, nil)
	for i := 0; i < dims; i++ {
		linear.Set(i, i, 1.0)
	}

	return Transformation{dims: dims, linear: linear, translation: make([]float64, dims)}
}

// NumDims returns the dimensionality the transformation operates over.
func (t Transformation) NumDims() int { return t.dims }

// Apply returns a new Layout with t applied to every connected point of
// l: point' = linear·point + translation. Disconnected points (all-NaN
// rows) pass through unchanged.
func (t Transformation) Apply(l *layout.Layout) (*layout.Layout, error) {
	if l.NumDims() != t.dims {
		return nil, fmt.Errorf("Transformation.Apply: %w", ErrDimensionMismatch)
	}

	out, err := layout.New(l.NumPoints(), t.dims)
	if err != nil {
		return nil, err
	}
	for pt := 0; pt < l.NumPoints(); pt++ {
		if !l.PointHasCoordinates(pt) {
			continue
		}
		coords := make([]float64, t.dims)
		for d := 0; d < t.dims; d++ {
			v, _ := l.At(pt, d)
			coords[d] = v
		}
		src := mat.NewVecDense(t.dims, coords)
		var dst mat.VecDense
		dst.MulVec(t.linear, src)
		for d := 0; d < t.dims; d++ {
			if err := out.Set(pt, d, dst.AtVec(d)+t.translation[d]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Compose returns the transformation equivalent to applying t first,
// then next: Compose(t, next).Apply(x) == next.Apply(t.Apply(x)).
func (t Transformation) Compose(next Transformation) (Transformation, error) {
	if t.dims != next.dims {
		return Transformation{}, fmt.Errorf("Transformation.Compose: %w", ErrDimensionMismatch)
	}

	linear := mat.NewDense(t.dims, t.dims, nil)
	linear.Mul(next.linear, t.linear)

	translation := make([]float64, t.dims)
	var nextLinearT mat.VecDense
	nextLinearT.MulVec(next.linear, mat.NewVecDense(t.dims, t.translation))
	for d := 0; d < t.dims; d++ {
		translation[d] = nextLinearT.AtVec(d) + next.translation[d]
	}

	return Transformation{dims: t.dims, linear: linear, translation: translation}, nil
}

// Inverse returns the transformation that undoes t, provided t's linear
// part is invertible.
func (t Transformation) Inverse() (Transformation, error) {
	var inv mat.Dense
	if err := inv.Inverse(t.linear); err != nil {
		return Transformation{}, fmt.Errorf("Transformation.Inverse: %w", err)
	}

	var negTranslated mat.VecDense
	negTranslation := make([]float64, t.dims)
	for d := range negTranslation {
		negTranslation[d] = -t.translation[d]
	}
	negTranslated.MulVec(&inv, mat.NewVecDense(t.dims, negTranslation))

	translation := make([]float64, t.dims)
	for d := 0; d < t.dims; d++ {
		translation[d] = negTranslated.AtVec(d)
	}

	return Transformation{dims: t.dims, linear: &inv, translation: translation}, nil
}

// Flatten renders t as a flat vector (linear part row-major, then
// translation), the representation the ace codec's projection "t" key
// persists.
func (t Transformation) Flatten() []float64 {
	out := make([]float64, 0, t.dims*t.dims+t.dims)
	for i := 0; i < t.dims; i++ {
		for j := 0; j < t.dims; j++ {
			out = append(out, t.linear.At(i, j))
		}
	}

	return append(out, t.translation...)
}

// TransformationFromFlat reconstructs a Transformation from the flat
// vector Flatten produces, given its dimensionality.
func TransformationFromFlat(flat []float64, dims int) (Transformation, error) {
	if len(flat) != dims*dims+dims {
		return Transformation{}, fmt.Errorf("projection.TransformationFromFlat: length %d != %d: %w",
			len(flat), dims*dims+dims, ErrDimensionMismatch)
	}
	linear := mat.NewDense(dims, dims, nil)
	for i := 0; i < dims; i++ {
		for j := 0; j < dims; j++ {
			linear.Set(i, j, flat[i*dims+j])
		}
	}
	translation := append([]float64(nil), flat[dims*dims:]...)

	return Transformation{dims: dims, linear: linear, translation: translation}, nil
}

// LinearMatrix exposes the transformation's linear part.
func (t Transformation) LinearMatrix() *mat.Dense { return t.linear }

// TranslationVector exposes the transformation's translation.
func (t Transformation) TranslationVector() []float64 {
	out := make([]float64, len(t.translation))
	copy(out, t.translation)

	return out
}

// isOrthonormal reports whether m's columns are orthonormal within tol,
// used by the tests to check the Kabsch rotation Procrustes computes
// (Procrustes itself does not call it).
func isOrthonormal(m *mat.Dense, tol float64) bool {
	n, _ := m.Dims()
	var mtm mat.Dense
	mtm.Mul(m.T(), m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(mtm.At(i, j)-want) > tol {
				return false
			}
		}
	}

	return true
}
