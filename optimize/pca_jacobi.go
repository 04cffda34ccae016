package optimize

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/cartograph/layout"
)

// jacobiTol is the off-diagonal convergence threshold for pcaTruncateJacobi,
// and jacobiMaxIter caps its sweep count (adapted from the teacher's
// ops.Eigen, matrix/ops/eigen.go).
const (
	jacobiTol     = 1e-10
	jacobiMaxIter = 200
)

// pcaTruncateJacobi is the dependency-free counterpart to
// pcaTruncateSVD: it forms the sourceD×sourceD covariance matrix of l's
// centered coordinates and diagonalizes it with the Jacobi rotation
// method (the same algorithm as the teacher's ops.Eigen, retargeted
// here from a generic symmetric matrix.Matrix to a gonum mat.Dense
// covariance matrix), then projects onto the targetD eigenvectors of
// largest eigenvalue.
func pcaTruncateJacobi(l *layout.Layout, targetD int) (*layout.Layout, error) {
	centered, _ := centerColumns(l.Matrix())
	n, d := centered.Dims()

	cov := mat.NewDense(d, d, nil)
	cov.Mul(centered.T(), centered)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			cov.Set(i, j, cov.At(i, j)/float64(n-1))
		}
	}

	eigenvalues, q, err := jacobiEigen(cov, jacobiTol, jacobiMaxIter)
	if err != nil {
		return nil, fmt.Errorf("pcaTruncateJacobi: %w", err)
	}

	order := make([]int, d)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return eigenvalues[order[a]] > eigenvalues[order[b]] })

	v := mat.NewDense(d, targetD, nil)
	for col := 0; col < targetD; col++ {
		src := order[col]
		for row := 0; row < d; row++ {
			v.Set(row, col, q.At(row, src))
		}
	}

	var projection mat.Dense
	projection.Mul(centered, v)

	return layout.FromMatrix(&projection), nil
}

// jacobiEigen performs Jacobi eigenvalue decomposition of a symmetric
// n×n matrix m: it returns the eigenvalues and the matrix Q whose
// columns are the corresponding eigenvectors. tol is the convergence
// threshold on the largest off-diagonal magnitude; maxIter bounds the
// sweep count.
func jacobiEigen(m *mat.Dense, tol float64, maxIter int) ([]float64, *mat.Dense, error) {
	// Stage 1: validate input is square and symmetric.
	n, cols := m.Dims()
	if n != cols {
		return nil, nil, fmt.Errorf("jacobiEigen: non-square %dx%d: %w", n, cols, ErrPCAFailed)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return nil, nil, fmt.Errorf("jacobiEigen: not symmetric: %w", ErrPCAFailed)
			}
		}
	}

	// Stage 2: prepare the working copy A and the rotation accumulator Q.
	a := mat.NewDense(n, n, nil)
	a.Copy(m)
	q := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		q.Set(i, i, 1.0)
	}

	// Stage 3: sweep, rotating away the largest off-diagonal element
	// each pass until convergence or maxIter is exhausted.
	var (
		iter   int
		p, qq  int
		maxOff float64
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff = 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off := math.Abs(a.At(i, j))
				if off > maxOff {
					maxOff = off
					p, qq = i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app, aqq, apq := a.At(p, p), a.At(qq, qq), a.At(p, qq)
		theta := (aqq - app) / (2 * apq)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		for i := 0; i < n; i++ {
			if i == p || i == qq {
				continue
			}
			aip, aiq := a.At(i, p), a.At(i, qq)
			a.Set(i, p, c*aip-s*aiq)
			a.Set(p, i, c*aip-s*aiq)
			a.Set(i, qq, s*aip+c*aiq)
			a.Set(qq, i, s*aip+c*aiq)
		}
		a.Set(p, p, c*c*app-2*c*s*apq+s*s*aqq)
		a.Set(qq, qq, s*s*app+2*c*s*apq+c*c*aqq)
		a.Set(p, qq, 0)
		a.Set(qq, p, 0)

		for i := 0; i < n; i++ {
			qip, qiq := q.At(i, p), q.At(i, qq)
			q.Set(i, p, c*qip-s*qiq)
			q.Set(i, qq, s*qip+c*qiq)
		}
	}

	if iter == maxIter {
		return nil, nil, fmt.Errorf("jacobiEigen: did not converge in %d sweeps: %w", maxIter, ErrPCAFailed)
	}

	// Stage 4: read the eigenvalues off the diagonal.
	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i] = a.At(i, i)
	}

	return eigs, q, nil
}
