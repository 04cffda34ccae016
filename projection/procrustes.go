package projection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cartograph/layout"
)

// Procrustes computes the best-fit rigid transformation aligning a's
// connected points onto b's connected points (original_source/cc/ad's
// procrustes, supplemented per spec.md §3's Projection.Transformation
// field): the Kabsch algorithm via SVD of the cross-covariance matrix.
// Only points connected in both a and b, at matching indices, are used
// to fit the rotation; at least 2 such points are required.
func Procrustes(a, b *Projection) (Transformation, error) {
	if a.NumDims() != b.NumDims() {
		return Transformation{}, fmt.Errorf("Procrustes: %w", ErrDimensionMismatch)
	}
	dims := a.NumDims()

	n := a.NumPoints()
	if b.NumPoints() < n {
		n = b.NumPoints()
	}

	var shared []int
	for pt := 0; pt < n; pt++ {
		if a.layout.PointHasCoordinates(pt) && b.layout.PointHasCoordinates(pt) {
			shared = append(shared, pt)
		}
	}
	if len(shared) < 2 {
		return Transformation{}, fmt.Errorf("Procrustes: %w", ErrTooFewSharedPoints)
	}

	meanA := centroid(a.layout, shared, dims)
	meanB := centroid(b.layout, shared, dims)

	aCentered := mat.NewDense(len(shared), dims, nil)
	bCentered := mat.NewDense(len(shared), dims, nil)
	for row, pt := range shared {
		for d := 0; d < dims; d++ {
			va, _ := a.layout.At(pt, d)
			vb, _ := b.layout.At(pt, d)
			aCentered.Set(row, d, va-meanA[d])
			bCentered.Set(row, d, vb-meanB[d])
		}
	}

	// cross-covariance H = A_centered^T * B_centered
	h := mat.NewDense(dims, dims, nil)
	h.Mul(aCentered.T(), bCentered)

	var svd mat.SVD
	if ok := svd.Factorize(h, mat.SVDFull); !ok {
		return Transformation{}, fmt.Errorf("Procrustes: SVD factorization failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// R = V * U^T, with a reflection fix so det(R) = +1 (a rigid
	// rotation, never a mirror flip).
	var r mat.Dense
	r.Mul(&v, u.T())
	if mat.Det(&r) < 0 {
		for row := 0; row < dims; row++ {
			v.Set(row, dims-1, -v.At(row, dims-1))
		}
		r.Mul(&v, u.T())
	}

	translation := make([]float64, dims)
	meanAVec := mat.NewVecDense(dims, meanA)
	var rotatedMeanA mat.VecDense
	rotatedMeanA.MulVec(&r, meanAVec)
	for d := 0; d < dims; d++ {
		translation[d] = meanB[d] - rotatedMeanA.AtVec(d)
	}

	return Transformation{dims: dims, linear: &r, translation: translation}, nil
}

func centroid(l *layout.Layout, points []int, dims int) []float64 {
	mean := make([]float64, dims)
	for _, pt := range points {
		for d := 0; d < dims; d++ {
			v, _ := l.At(pt, d)
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(len(points))
	}

	return mean
}
