package optimize

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/projection"
	"github.com/katalvlaran/cartograph/projections"
	"github.com/katalvlaran/cartograph/randomizer"
	"github.com/katalvlaran/cartograph/stress"
	"github.com/katalvlaran/cartograph/tabledist"
	"github.com/katalvlaran/cartograph/titers"
)

// defaultDiameterMultiplier scales the from_sample_optimization and
// current_layout_area diameter factories (spec.md §4.5 leaves the
// multiplier's value to the implementer; see DESIGN.md).
const defaultDiameterMultiplier = 2.0

// defaultTooFewNumericThreshold is the "too few numeric titers"
// disconnect threshold (spec.md §4.2/§4.9).
const defaultTooFewNumericThreshold = 3

// RelaxOptions configures Relax (spec.md §4.9).
type RelaxOptions struct {
	// Method selects the per-worker optimization algorithm.
	Method Method
	// DimensionAnnealing runs the rough pass in 5 dimensions (when the
	// target is below 5) before projecting down, per spec.md §4.8.
	DimensionAnnealing bool
	// DisconnectTooFewNumeric disconnects points below
	// defaultTooFewNumericThreshold regular titers before optimizing.
	DisconnectTooFewNumeric bool
	// Disconnected and Unmovable are merged with the
	// DisconnectTooFewNumeric computation (caller-supplied masks).
	Disconnected map[int]bool
	Unmovable    map[int]bool
	// NumThreads bounds worker-pool concurrency; 0 means
	// runtime.GOMAXPROCS(0).
	NumThreads int
	// Seed seeds the base diameter-estimation randomizer; each of the n
	// workers draws its own Seed+i+1 seeded Randomizer so runs are
	// reproducible regardless of scheduling order (spec.md §5's
	// "reproducible... unless each thread pre-draws its seed").
	Seed uint64
	// DiameterMultiplier scales the from_sample_optimization diameter
	// factory; 0 uses defaultDiameterMultiplier.
	DiameterMultiplier float64
}

// Relax implements spec.md §4.9: builds n independently randomized and
// optimized Projections over titer table t with column bases cb at
// target dimensionality targetD, returning them sorted by final stress
// ascending.
func Relax(t *titers.Titers, cb *columnbasis.ColumnBases, minimumColumnBasis float64, targetD, n int, opts RelaxOptions) (*projections.Set, error) {
	startD := targetD
	if opts.DimensionAnnealing && targetD < 5 {
		startD = 5
	}

	disconnected := map[int]bool{}
	for k, v := range opts.Disconnected {
		disconnected[k] = v
	}
	if opts.DisconnectTooFewNumeric {
		for _, p := range t.HavingTooFewNumericTiters(defaultTooFewNumericThreshold) {
			disconnected[p] = true
		}
	}
	unmovable := map[int]bool{}
	for k, v := range opts.Unmovable {
		unmovable[k] = v
	}

	numPoints := t.NumAntigens() + t.NumSera()
	numConnected := 0
	for p := 0; p < numPoints; p++ {
		if !disconnected[p] {
			numConnected++
		}
	}
	if numConnected < 3 {
		return nil, fmt.Errorf("optimize.Relax: %w", ErrTooFewConnectedPoints)
	}

	td := tabledist.Compute(t, cb, tabledist.Options{Disconnected: disconnected})

	multiplier := opts.DiameterMultiplier
	if multiplier == 0 {
		multiplier = defaultDiameterMultiplier
	}
	diameterRandomizer, err := FromSampleOptimizationRandomizer(t, cb, td, startD, multiplier, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("optimize.Relax: %w", err)
	}
	diameter := diameterRandomizer.Diameter()

	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}

	worker := relaxWorker{
		t: t, cb: cb, minimumColumnBasis: minimumColumnBasis,
		startD: startD, targetD: targetD, td: td,
		disconnected: disconnected, unmovable: unmovable,
		method: opts.Method, dimensionAnnealing: opts.DimensionAnnealing,
		diameter: diameter,
	}

	results := make([]*projection.Projection, n)
	errs := make([]error, n)

	sem := make(chan struct{}, numThreads)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i], errs[i] = worker.run(opts.Seed + uint64(i) + 1)
		}(i)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, fmt.Errorf("optimize.Relax: %w", e)
		}
	}

	set := projections.New()
	for _, p := range results {
		set.Insert(p)
	}
	set.Sort()

	return set, nil
}

// relaxWorker holds everything a single multi-start worker needs that
// is read-only and shared (spec.md §5 "the Chart is read-only from
// inside the parallel region").
type relaxWorker struct {
	t                  *titers.Titers
	cb                 *columnbasis.ColumnBases
	minimumColumnBasis float64
	startD, targetD    int
	td                 tabledist.TableDistances
	disconnected       map[int]bool
	unmovable          map[int]bool
	method             Method
	dimensionAnnealing bool
	diameter           float64
}

// run executes one multi-start worker body (spec.md §4.9 step 6): a
// fresh per-worker Randomizer, a private Projection, and a private
// Stress built from the shared table distances.
func (w relaxWorker) run(seed uint64) (*projection.Projection, error) {
	rnd, err := randomizer.NewPlain(w.diameter, seed)
	if err != nil {
		return nil, err
	}

	numPoints := w.t.NumAntigens() + w.t.NumSera()
	p, err := projection.New(numPoints, w.startD, w.minimumColumnBasis)
	if err != nil {
		return nil, err
	}
	for pt, v := range w.disconnected {
		p.SetDisconnected(pt, v)
	}
	for pt, v := range w.unmovable {
		p.SetUnmovable(pt, v)
	}

	var movable []int
	for pt := 0; pt < numPoints; pt++ {
		if !w.disconnected[pt] {
			movable = append(movable, pt)
		}
	}
	if err := rnd.RandomizePoints(p.Layout(), movable); err != nil {
		return nil, err
	}

	s := stress.New(w.td, numPoints, w.startD, p.StressMasks())
	roughRes, err := Minimize(p.Layout(), s, w.method, Rough)
	if err != nil {
		return nil, err
	}
	p.SetFinalStress(roughRes.FinalStress)

	if !w.dimensionAnnealing || w.startD <= w.targetD {
		return p, nil
	}

	masks := Masks{Unmovable: w.unmovable, UnmovableLastDim: p.UnmovableInTheLastDimensionPoints()}
	reducedLayout, fineRes, err := DimensionAnneal(p.Layout(), w.td, masks, w.method, PCASVD, w.targetD)
	if err != nil {
		return nil, err
	}

	final, err := projection.New(numPoints, w.targetD, w.minimumColumnBasis)
	if err != nil {
		return nil, err
	}
	for pt, v := range w.disconnected {
		final.SetDisconnected(pt, v)
	}
	for pt, v := range w.unmovable {
		final.SetUnmovable(pt, v)
	}
	if err := adoptLayout(final, reducedLayout); err != nil {
		return nil, err
	}
	final.SetFinalStress(fineRes.FinalStress)

	return final, nil
}

// adoptLayout copies src's coordinates into p's layout, dimension by
// dimension, via Modify so the copy invalidates any stale cached stress.
func adoptLayout(p *projection.Projection, src *layout.Layout) error {
	return p.Modify(func(l *layout.Layout) error {
		for pt := 0; pt < l.NumPoints(); pt++ {
			if !src.PointHasCoordinates(pt) {
				continue
			}
			for d := 0; d < l.NumDims(); d++ {
				v, err := src.At(pt, d)
				if err != nil {
					return err
				}
				if err := l.Set(pt, d, v); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
