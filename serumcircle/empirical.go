package serumcircle

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/titer"
)

// Candidate is one antigen considered by Empirical: its map point index
// and its (non-don't-care) titer against the serum being circled.
type Candidate struct {
	AntigenPoint int
	Titer        titer.Titer
}

// EmpiricalOptions configures Empirical.
type EmpiricalOptions struct {
	// GridStep is the candidate-radius search step; 0 uses defaultGridStep.
	GridStep float64
	// MinEnforcedRadius floors the fitted radius; 0 uses defaultMinEnforcedRadius.
	MinEnforcedRadius float64
}

func (o EmpiricalOptions) resolve() EmpiricalOptions {
	if o.GridStep <= 0 {
		o.GridStep = defaultGridStep
	}
	if o.MinEnforcedRadius <= 0 {
		o.MinEnforcedRadius = defaultMinEnforcedRadius
	}

	return o
}

type empiricalPoint struct {
	antigen         int
	distance        float64
	finalSimilarity float64
}

// Empirical implements spec.md §4.12's empirical protection radius: the
// protection_boundary is min(column_basis, homologous_logged) - fold;
// every candidate antigen's map distance and "final similarity"
// (min(column_basis, its own logged_for_column_bases)) are computed,
// and the candidate radius minimizing the count of
// protected-but-outside plus not_protected-but-inside antigens is
// returned, floored by opts.MinEnforcedRadius.
func Empirical(columnBasis float64, homologousTiter titer.Titer, fold float64, serumPoint int, candidates []Candidate, l *layout.Layout, opts EmpiricalOptions) (Result, error) {
	if bad, err := validateHomologous(homologousTiter); err != nil {
		return bad, err
	}
	opts = opts.resolve()

	if !l.PointHasCoordinates(serumPoint) {
		return Result{Failure: FailSerumDisconnected},
			fmt.Errorf("serumcircle: serum point %d is disconnected: %w", serumPoint, ErrSerumCoverage)
	}

	homologousLogged := homologousTiter.LoggedForColumnBases()
	boundary := math.Min(columnBasis, homologousLogged) - fold

	var (
		points   []empiricalPoint
		excluded []int
	)
	for _, c := range candidates {
		if !l.PointHasCoordinates(c.AntigenPoint) {
			excluded = append(excluded, c.AntigenPoint)
			continue
		}
		if c.Titer.IsDontCare() || !c.Titer.IsValid() {
			continue
		}
		dist, err := l.Distance(c.AntigenPoint, serumPoint)
		if err != nil {
			return Result{Failure: FailAntigenDisconnected, ExcludedAntigens: excluded}, fmt.Errorf("serumcircle: %w", err)
		}
		similarity := math.Min(columnBasis, c.Titer.LoggedForColumnBases())
		points = append(points, empiricalPoint{antigen: c.AntigenPoint, distance: dist, finalSimilarity: similarity})
	}

	if len(points) == 0 {
		return Result{Failure: FailNotCalculated, ExcludedAntigens: excluded},
			fmt.Errorf("serumcircle: no connected candidate antigens: %w", ErrSerumCoverage)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].distance < points[j].distance })

	maxDist := points[len(points)-1].distance
	bestCost := math.MaxInt32
	var tyingRadii []float64

	for r := 0.0; r <= maxDist+opts.GridStep/2; r += opts.GridStep {
		cost := 0
		for _, p := range points {
			protected := p.finalSimilarity >= boundary
			inside := p.distance <= r
			switch {
			case protected && !inside:
				cost++ // protected_outside
			case !protected && inside:
				cost++ // not_protected_inside
			}
		}
		switch {
		case cost < bestCost:
			bestCost = cost
			tyingRadii = []float64{r}
		case cost == bestCost:
			tyingRadii = append(tyingRadii, r)
		}
	}

	sum := 0.0
	for _, r := range tyingRadii {
		sum += r
	}
	radius := sum / float64(len(tyingRadii))
	if radius < opts.MinEnforcedRadius {
		radius = opts.MinEnforcedRadius
	}

	return Result{Radius: radius, Failure: FailNone, ExcludedAntigens: excluded}, nil
}
