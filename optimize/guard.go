package optimize

import (
	"math"

	"github.com/katalvlaran/cartograph/layout"
)

// withZeroedDisconnected zeros the coordinates of every disconnected
// point in l, runs fn, then restores NaN on every exit path including a
// panic (spec.md §4.7): the numerical kernels below (PCA's SVD chief
// among them) require finite inputs, but a disconnected point's
// coordinates must read back as NaN once control returns to the caller.
func withZeroedDisconnected(l *layout.Layout, fn func() error) (err error) {
	var restore []int
	for p := 0; p < l.NumPoints(); p++ {
		if l.PointHasCoordinates(p) {
			continue
		}
		restore = append(restore, p)
		for d := 0; d < l.NumDims(); d++ {
			_ = l.Set(p, d, 0)
		}
	}

	defer func() {
		for _, p := range restore {
			for d := 0; d < l.NumDims(); d++ {
				_ = l.Set(p, d, math.NaN())
			}
		}
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	return fn()
}
