package optimize

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/stress"
	"github.com/katalvlaran/cartograph/tabledist"
)

// PCAMethod selects which symmetric-eigendecomposition backend
// DimensionAnneal uses to compute the variance-ranked projection basis.
type PCAMethod int

const (
	// PCASVD uses gonum.org/v1/gonum/mat's SVD (the default).
	PCASVD PCAMethod = iota
	// PCAJacobi uses the pure-Go Jacobi eigensolver adapted from the
	// teacher's matrix/ops/eigen.go, for callers who want a
	// dependency-free PCA path.
	PCAJacobi
)

// DimensionAnneal implements spec.md §4.8: PCA-truncates l's coordinate
// matrix from sourceD to targetD dimensions, replaces l's coordinates
// with the projection, then runs a full Fine-precision optimization in
// the reduced space. Disconnected points are temporarily zeroed for the
// duration of the PCA step (spec.md §4.7) since the decomposition
// requires finite inputs.
func DimensionAnneal(l *layout.Layout, td tabledist.TableDistances, masks Masks, method Method, pca PCAMethod, targetD int) (*layout.Layout, Result, error) {
	if targetD <= 0 || targetD > l.NumDims() {
		return nil, Result{}, fmt.Errorf("optimize.DimensionAnneal: target dims %d out of [1,%d]: %w", targetD, l.NumDims(), ErrPCAFailed)
	}

	var projected *layout.Layout
	err := withZeroedDisconnected(l, func() error {
		var perr error
		switch pca {
		case PCAJacobi:
			projected, perr = pcaTruncateJacobi(l, targetD)
		default:
			projected, perr = pcaTruncateSVD(l, targetD)
		}

		return perr
	})
	if err != nil {
		return nil, Result{}, fmt.Errorf("optimize.DimensionAnneal: %w", err)
	}

	// the points that were disconnected in l must remain disconnected in
	// the projected layout; withZeroedDisconnected only guarded l itself.
	for p := 0; p < l.NumPoints(); p++ {
		if !l.PointHasCoordinates(p) {
			_ = projected.Disconnect(p)
		}
	}

	reduced := stress.New(
		td, projected.NumPoints(), targetD,
		stress.Masks{Unmovable: masks.Unmovable, UnmovableLastDim: masks.UnmovableLastDim},
	)
	res, err := Minimize(projected, reduced, method, Fine)
	if err != nil {
		return nil, Result{}, err
	}

	return projected, res, nil
}

// pcaTruncateSVD computes the targetD-dimensional PCA truncation of l's
// coordinate matrix via gonum's SVD, the library-grade counterpart to
// the teacher's hand-rolled Jacobi solver (matrix/ops/eigen.go).
func pcaTruncateSVD(l *layout.Layout, targetD int) (*layout.Layout, error) {
	centered, means := centerColumns(l.Matrix())
	_ = means

	var svd mat.SVD
	ok := svd.Factorize(centered, mat.SVDThin)
	if !ok {
		return nil, fmt.Errorf("pcaTruncateSVD: %w", ErrPCAFailed)
	}

	var v mat.Dense
	svd.VTo(&v)
	n, _ := v.Dims()
	vTrunc := v.Slice(0, n, 0, targetD)

	var projection mat.Dense
	projection.Mul(centered, vTrunc)

	return layout.FromMatrix(&projection), nil
}

// centerColumns returns a copy of m with each column's mean subtracted,
// plus the means themselves.
func centerColumns(m *mat.Dense) (*mat.Dense, []float64) {
	r, c := m.Dims()
	means := make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += m.At(i, j)
		}
		means[j] = sum / float64(r)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i, j)-means[j])
		}
	}

	return out, means
}
