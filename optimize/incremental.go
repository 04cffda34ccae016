package optimize

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/projection"
	"github.com/katalvlaran/cartograph/projections"
	"github.com/katalvlaran/cartograph/randomizer"
	"github.com/katalvlaran/cartograph/stress"
	"github.com/katalvlaran/cartograph/tabledist"
	"github.com/katalvlaran/cartograph/titers"
)

// fineTopK is the number of best-by-stress clones that additionally get
// a fine-precision pass when IncrementalOptions.Fine is set (spec.md
// §4.10 "fine-optimize the top 5 projections").
const fineTopK = 5

// IncrementalOptions configures IncrementalRelax (spec.md §4.10).
type IncrementalOptions struct {
	Method Method
	// KeepExistingUnmovable marks every currently-placed (non-NaN) point
	// unmovable before randomizing the new ones.
	KeepExistingUnmovable   bool
	Disconnected            map[int]bool
	Unmovable               map[int]bool
	DisconnectTooFewNumeric bool
	// RemoveSource drops the source projection from the returned set.
	RemoveSource bool
	// Fine additionally fine-optimizes the top fineTopK projections by
	// stress after the rough pass.
	Fine       bool
	NumThreads int
	Seed       uint64
}

// IncrementalRelax implements spec.md §4.10: clones source n times,
// randomizes only the points that are new (NaN in source and not
// disconnected), rough-optimizes each clone, sorts by stress, and
// optionally fine-optimizes the fineTopK best.
func IncrementalRelax(t *titers.Titers, cb *columnbasis.ColumnBases, source *projection.Projection, n int, opts IncrementalOptions) (*projections.Set, error) {
	numPoints := source.NumPoints()
	targetD := source.NumDims()

	unmovable := map[int]bool{}
	for k, v := range opts.Unmovable {
		unmovable[k] = v
	}
	if opts.KeepExistingUnmovable {
		for pt := 0; pt < numPoints; pt++ {
			if source.Layout().PointHasCoordinates(pt) {
				unmovable[pt] = true
			}
		}
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
	// unmovable wins over disconnected (spec.md §4.10).
	for pt := range unmovable {
		delete(disconnected, pt)
	}

	var newPoints []int
	for pt := 0; pt < numPoints; pt++ {
		if !source.Layout().PointHasCoordinates(pt) && !disconnected[pt] {
			newPoints = append(newPoints, pt)
		}
	}

	td := tabledist.Compute(t, cb, tabledist.Options{Disconnected: disconnected})

	diameterRandomizer, err := FromSampleOptimizationRandomizer(t, cb, td, targetD, defaultDiameterMultiplier, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("optimize.IncrementalRelax: %w", err)
	}
	diameter := diameterRandomizer.Diameter()

	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
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

			clone := source.Clone()
			for pt, v := range disconnected {
				clone.SetDisconnected(pt, v)
			}
			for pt, v := range unmovable {
				clone.SetUnmovable(pt, v)
			}

			rnd, rerr := randomizer.NewPlain(diameter, opts.Seed+uint64(i)+1)
			if rerr != nil {
				errs[i] = rerr
				return
			}
			if rerr := rnd.RandomizePoints(clone.Layout(), newPoints); rerr != nil {
				errs[i] = rerr
				return
			}

			s := stress.New(td, numPoints, targetD, clone.StressMasks())
			res, rerr := Minimize(clone.Layout(), s, opts.Method, Rough)
			if rerr != nil {
				errs[i] = rerr
				return
			}
			clone.SetFinalStress(res.FinalStress)
			results[i] = clone
		}(i)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, fmt.Errorf("optimize.IncrementalRelax: %w", e)
		}
	}

	set := projections.New()
	if !opts.RemoveSource {
		set.Insert(source)
	}
	for _, p := range results {
		set.Insert(p)
	}
	set.Sort()

	if opts.Fine {
		all := set.All()
		top := fineTopK
		if top > len(all) {
			top = len(all)
		}
		for i := 0; i < top; i++ {
			s := stress.New(td, numPoints, targetD, all[i].StressMasks())
			res, err := Minimize(all[i].Layout(), s, opts.Method, Fine)
			if err != nil {
				return nil, fmt.Errorf("optimize.IncrementalRelax: fine pass: %w", err)
			}
			all[i].SetFinalStress(res.FinalStress)
		}
		set.Sort()
	}

	return set, nil
}
