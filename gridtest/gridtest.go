package gridtest

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/optimize"
	"github.com/katalvlaran/cartograph/stress"
	"github.com/katalvlaran/cartograph/tabledist"
)

// partner is one table-distance neighbor of a probed point.
type partner struct {
	other    int
	distance float64
}

// partnersByPoint inverts td's flat entry lists into a per-point
// adjacency so each point's bounding box can be built directly.
func partnersByPoint(td tabledist.TableDistances, numPoints int) [][]partner {
	out := make([][]partner, numPoints)
	add := func(e tabledist.Entry) {
		out[e.PointI] = append(out[e.PointI], partner{other: e.PointJ, distance: e.Distance})
		out[e.PointJ] = append(out[e.PointJ], partner{other: e.PointI, distance: e.Distance})
	}
	for _, e := range td.Regular {
		add(e)
	}
	for _, e := range td.LessThan {
		add(e)
	}

	return out
}

// Run implements spec.md §4.11's grid-test probe over every point of l,
// using td's table distances to find partners and s to evaluate
// per-point stress contributions. currentFinalStress is the layout's
// already-optimized final stress, the baseline every candidate's
// rough-optimize pass is compared against.
//
// Complexity: O(numPoints · candidates_per_point · partners_per_point)
// for the grid walk, plus one Rough optimize.Minimize call per point
// whose candidate strictly improves on its current contribution.
// Concurrency: points are probed in parallel, bounded by
// Options.NumThreads (spec.md §5's parallel-for-over-independent-units
// model); each goroutine works off its own cloned layout.Layout.
func Run(l *layout.Layout, td tabledist.TableDistances, s *stress.Stress, currentFinalStress float64, opts Options) (*Result, error) {
	if l.NumPoints() != s.NumPoints() || l.NumDims() != s.NumDims() {
		return nil, fmt.Errorf("gridtest.Run: %w", ErrShapeMismatch)
	}
	opts = opts.resolve()

	numPoints := l.NumPoints()
	partners := partnersByPoint(td, numPoints)
	base := l.Flatten()

	results := make([]PointResult, numPoints)
	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}

	sem := make(chan struct{}, numThreads)
	var wg sync.WaitGroup
	for i := 0; i < numPoints; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = evaluatePoint(l, s, base, currentFinalStress, i, partners[i], opts)
		}(i)
	}
	wg.Wait()

	return &Result{Points: results}, nil
}

// evaluatePoint runs the grid-test probe for a single point, per
// spec.md §4.11.
func evaluatePoint(l *layout.Layout, s *stress.Stress, base []float64, currentFinalStress float64, point int, partners []partner, opts Options) PointResult {
	if opts.Excluded[point] || len(partners) == 0 {
		return PointResult{Point: point, Classification: ClassExcluded}
	}

	numDims := l.NumDims()
	lo := make([]float64, numDims)
	hi := make([]float64, numDims)
	for d := 0; d < numDims; d++ {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for _, nb := range partners {
		for d := 0; d < numDims; d++ {
			c := base[nb.other*numDims+d]
			if c-nb.distance < lo[d] {
				lo[d] = c - nb.distance
			}
			if c+nb.distance > hi[d] {
				hi[d] = c + nb.distance
			}
		}
	}

	current := make([]float64, numDims)
	copy(current, base[point*numDims:point*numDims+numDims])
	currentContribution := s.PointContribution(base, point)

	bestPos := current
	bestContribution := currentContribution

	probe := append([]float64{}, base...)
	walkGrid(lo, hi, opts.GridStep, func(candidate []float64) {
		for d, v := range candidate {
			probe[point*numDims+d] = v
		}
		c := s.PointContribution(probe, point)
		if c < bestContribution {
			bestContribution = c
			bestPos = append([]float64{}, candidate...)
		}
	})
	for d, v := range current {
		probe[point*numDims+d] = v
	}

	if bestContribution >= currentContribution || sameCoords(bestPos, current) {
		return PointResult{Point: point, Classification: ClassNormal}
	}

	trial := l.Clone()
	for d, v := range bestPos {
		_ = trial.Set(point, d, v)
	}
	res, err := optimize.Minimize(trial, s, opts.Method, optimize.Rough)
	if err != nil {
		// a failed rough-optimize from the candidate leaves the point
		// classified normal rather than propagating a probe failure.
		return PointResult{Point: point, Classification: ClassNormal}
	}

	resolved := make([]float64, numDims)
	for d := 0; d < numDims; d++ {
		v, _ := trial.At(point, d)
		resolved[d] = v
	}
	moveDistance := euclidean(resolved, current)
	delta := res.FinalStress - currentFinalStress

	classification := ClassNormal
	switch {
	case math.Abs(delta) > opts.TrappedThreshold:
		classification = ClassTrapped
	case moveDistance > opts.HemisphereThreshold:
		classification = ClassHemisphering
	}

	if classification == ClassNormal {
		return PointResult{Point: point, Classification: ClassNormal}
	}

	return PointResult{
		Point:          point,
		Classification: classification,
		BetterPosition: resolved,
		DeltaStress:    delta,
	}
}

// walkGrid calls fn once per grid point of the cartesian product of
// [lo[d], hi[d]] stepped by step in every dimension, inclusive of hi[d].
func walkGrid(lo, hi []float64, step float64, fn func(point []float64)) {
	numDims := len(lo)
	point := make([]float64, numDims)
	var recurse func(d int)
	recurse = func(d int) {
		if d == numDims {
			fn(point)
			return
		}
		if hi[d] < lo[d] {
			return
		}
		steps := int(math.Ceil((hi[d]-lo[d])/step)) + 1
		for i := 0; i < steps; i++ {
			v := lo[d] + float64(i)*step
			if v > hi[d] {
				v = hi[d]
			}
			point[d] = v
			recurse(d + 1)
		}
	}
	recurse(0)
}

func sameCoords(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}
