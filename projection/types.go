package projection

import (
	"fmt"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/stress"
)

// Projection is one optimization result (spec.md §3): a Layout, its
// Transformation, the constraints it was optimized under, and a cached
// final stress.
type Projection struct {
	layout *layout.Layout

	transformation Transformation

	minimumColumnBasis float64
	forcedColumnBases  map[int]float64

	disconnected     map[int]bool
	unmovable        map[int]bool
	unmovableLastDim map[int]bool
	avidityAdjusts   map[int]float64

	dodgyTiterIsRegular bool
	comment             string

	stressComputed bool
	finalStress    float64
}

// New constructs an empty Projection (all coordinates NaN) over
// numPoints points in numDims dimensions with the given minimum column
// basis (spec.md §3 "constructed empty with chosen dims+mcb").
func New(numPoints, numDims int, minimumColumnBasis float64) (*Projection, error) {
	l, err := layout.New(numPoints, numDims)
	if err != nil {
		return nil, fmt.Errorf("projection.New: %w", err)
	}

	return &Projection{
		layout:              l,
		transformation:      Identity(numDims),
		minimumColumnBasis:  minimumColumnBasis,
		forcedColumnBases:   map[int]float64{},
		disconnected:        map[int]bool{},
		unmovable:           map[int]bool{},
		unmovableLastDim:    map[int]bool{},
		avidityAdjusts:      map[int]float64{},
		dodgyTiterIsRegular: false,
	}, nil
}

// Layout returns the projection's raw (untransformed) coordinates.
func (p *Projection) Layout() *layout.Layout { return p.layout }

// NumPoints returns the number of points the projection's layout covers.
func (p *Projection) NumPoints() int { return p.layout.NumPoints() }

// NumDims returns the dimensionality of the projection's layout.
func (p *Projection) NumDims() int { return p.layout.NumDims() }

// Transformation returns the projection's current affine transformation.
func (p *Projection) Transformation() Transformation { return p.transformation }

// SetTransformation replaces the projection's transformation.
func (p *Projection) SetTransformation(t Transformation) { p.transformation = t }

// TransformedLayout returns a new Layout with the transformation
// applied to every connected point.
func (p *Projection) TransformedLayout() (*layout.Layout, error) {
	return p.transformation.Apply(p.layout)
}

// MinimumColumnBasis returns the projection's floor on raw column bases.
func (p *Projection) MinimumColumnBasis() float64 { return p.minimumColumnBasis }

// ForcedColumnBasis returns the forced override for serum sr, if any.
func (p *Projection) ForcedColumnBasis(sr int) (float64, bool) {
	v, ok := p.forcedColumnBases[sr]

	return v, ok
}

// SetForcedColumnBasis overrides the column basis for serum sr.
func (p *Projection) SetForcedColumnBasis(sr int, v float64) { p.forcedColumnBases[sr] = v }

// DisconnectedPoints returns the set of point indices excluded from
// optimization entirely.
func (p *Projection) DisconnectedPoints() map[int]bool { return p.disconnected }

// SetDisconnected marks (or unmarks) point as disconnected.
func (p *Projection) SetDisconnected(point int, v bool) {
	if v {
		p.disconnected[point] = true
		return
	}
	delete(p.disconnected, point)
}

// UnmovablePoints returns the set of points whose gradient is zeroed in
// every dimension during optimization.
func (p *Projection) UnmovablePoints() map[int]bool { return p.unmovable }

// SetUnmovable marks (or unmarks) point as fully unmovable.
func (p *Projection) SetUnmovable(point int, v bool) {
	if v {
		p.unmovable[point] = true
		return
	}
	delete(p.unmovable, point)
}

// UnmovableInTheLastDimensionPoints returns the set of points whose
// gradient is zeroed only in the last dimension.
func (p *Projection) UnmovableInTheLastDimensionPoints() map[int]bool { return p.unmovableLastDim }

// SetUnmovableLastDim marks (or unmarks) point as unmovable in the last
// dimension only.
func (p *Projection) SetUnmovableLastDim(point int, v bool) {
	if v {
		p.unmovableLastDim[point] = true
		return
	}
	delete(p.unmovableLastDim, point)
}

// AvidityAdjust returns the avidity adjustment for point, default 1.0.
func (p *Projection) AvidityAdjust(point int) float64 {
	if v, ok := p.avidityAdjusts[point]; ok {
		return v
	}

	return 1.0
}

// SetAvidityAdjust sets the avidity adjustment for point.
func (p *Projection) SetAvidityAdjust(point int, v float64) { p.avidityAdjusts[point] = v }

// DodgyTiterIsRegular reports whether dodgy titers are routed into the
// regular table-distance list for this projection.
func (p *Projection) DodgyTiterIsRegular() bool { return p.dodgyTiterIsRegular }

// SetDodgyTiterIsRegular sets the dodgy-titer routing flag.
func (p *Projection) SetDodgyTiterIsRegular(v bool) { p.dodgyTiterIsRegular = v }

// Comment returns the projection's free-text comment.
func (p *Projection) Comment() string { return p.comment }

// SetComment sets the projection's free-text comment.
func (p *Projection) SetComment(c string) { p.comment = c }

// FinalStress returns the cached final stress, or ErrStressNotComputed
// if no optimization has run since the last Modify.
func (p *Projection) FinalStress() (float64, error) {
	if !p.stressComputed {
		return 0, ErrStressNotComputed
	}

	return p.finalStress, nil
}

// SetFinalStress caches a newly computed final stress (called by the
// optimize package after a minimization run).
func (p *Projection) SetFinalStress(v float64) {
	p.finalStress = v
	p.stressComputed = true
}

// Modify runs fn against the projection's layout and invalidates the
// cached final stress (spec.md §3 "immutable except through explicit
// modify() which invalidates the stress").
func (p *Projection) Modify(fn func(*layout.Layout) error) error {
	if err := fn(p.layout); err != nil {
		return err
	}
	p.stressComputed = false

	return nil
}

// StressMasks adapts the projection's unmovable point sets into the
// shape stress.New expects.
func (p *Projection) StressMasks() stress.Masks {
	return stress.Masks{Unmovable: p.unmovable, UnmovableLastDim: p.unmovableLastDim}
}

// Clone returns a deep copy of p.
func (p *Projection) Clone() *Projection {
	clone := &Projection{
		layout:              p.layout.Clone(),
		transformation:      p.transformation,
		minimumColumnBasis:  p.minimumColumnBasis,
		forcedColumnBases:   cloneFloatMap(p.forcedColumnBases),
		disconnected:        cloneBoolMap(p.disconnected),
		unmovable:           cloneBoolMap(p.unmovable),
		unmovableLastDim:    cloneBoolMap(p.unmovableLastDim),
		avidityAdjusts:      cloneFloatMap(p.avidityAdjusts),
		dodgyTiterIsRegular: p.dodgyTiterIsRegular,
		comment:             p.comment,
		stressComputed:      p.stressComputed,
		finalStress:         p.finalStress,
	}

	return clone
}

func cloneBoolMap(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func cloneFloatMap(m map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
