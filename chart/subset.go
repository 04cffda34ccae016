package chart

import (
	"fmt"

	"github.com/katalvlaran/cartograph/layout"
	"github.com/katalvlaran/cartograph/projection"
	"github.com/katalvlaran/cartograph/projections"
	"github.com/katalvlaran/cartograph/titers"
)

// Clone returns a deep copy of c: independent titer table, metadata
// slices, forced column bases, and projection set (each projection
// itself deep-copied via projection.Projection.Clone).
func (c *Chart) Clone() *Chart {
	projs := projections.New()
	for _, p := range c.projections.All() {
		projs.Insert(p.Clone())
	}
	clone := &Chart{
		info:              c.info,
		antigens:          c.Antigens(),
		sera:              c.Sera(),
		titers:            c.titers.Clone(),
		forcedColumnBases: c.ForcedColumnBases(),
		projections:       projs,
		plotSpec:          c.plotSpec,
	}

	return clone
}

// Subset returns a new Chart containing only the given antigen and
// serum indices (cc/chart's subsetting, grounded on
// core/methods_clone.go's clone-with-remap pattern): antigens and sera
// are re-indexed to 0..len(antigenIdxs)-1 / 0..len(serumIdxs)-1, the
// titer table is rebuilt over the selection, and every existing
// projection is trimmed to the selected points, remapped to the new
// indices. A trimmed projection's final stress is not preserved, since
// the selected subset's distance set differs from the original's and
// must be re-optimized.
func (c *Chart) Subset(antigenIdxs, serumIdxs []int) (*Chart, error) {
	for _, ag := range antigenIdxs {
		if ag < 0 || ag >= c.NumAntigens() {
			return nil, fmt.Errorf("chart.Subset: antigen index %d out of range: %w", ag, ErrOutOfRange)
		}
	}
	for _, sr := range serumIdxs {
		if sr < 0 || sr >= c.NumSera() {
			return nil, fmt.Errorf("chart.Subset: serum index %d out of range: %w", sr, ErrOutOfRange)
		}
	}

	newAntigens := make([]Antigen, len(antigenIdxs))
	for i, ag := range antigenIdxs {
		newAntigens[i] = c.antigens[ag]
	}
	newSera := make([]Serum, len(serumIdxs))
	for i, sr := range serumIdxs {
		newSera[i] = c.sera[sr]
	}

	newTable, err := titers.New(len(antigenIdxs), len(serumIdxs))
	if err != nil {
		return nil, fmt.Errorf("chart.Subset: %w", err)
	}
	for i, ag := range antigenIdxs {
		for j, sr := range serumIdxs {
			tt, err := c.titers.Titer(ag, sr)
			if err != nil {
				return nil, fmt.Errorf("chart.Subset: %w", err)
			}
			if err := newTable.SetTiter(i, j, tt); err != nil {
				return nil, fmt.Errorf("chart.Subset: %w", err)
			}
		}
	}

	out, err := New(c.info, newAntigens, newSera, newTable)
	if err != nil {
		return nil, fmt.Errorf("chart.Subset: %w", err)
	}
	for i, sr := range serumIdxs {
		if v, ok := c.forcedColumnBases[sr]; ok {
			out.SetForcedColumnBasis(i, v)
		}
	}

	oldNumAntigens := c.NumAntigens()
	newToOld := make([]int, len(antigenIdxs)+len(serumIdxs))
	for i, ag := range antigenIdxs {
		newToOld[i] = ag
	}
	for j, sr := range serumIdxs {
		newToOld[len(antigenIdxs)+j] = oldNumAntigens + sr
	}

	for _, p := range c.projections.All() {
		trimmed, err := subsetProjection(p, newToOld)
		if err != nil {
			return nil, fmt.Errorf("chart.Subset: %w", err)
		}
		if err := out.AddProjection(trimmed); err != nil {
			return nil, fmt.Errorf("chart.Subset: %w", err)
		}
	}

	return out, nil
}

// subsetProjection builds a new Projection over len(newToOld) points,
// copying coordinates and per-point constraint sets from src at the
// indices newToOld maps to.
func subsetProjection(src *projection.Projection, newToOld []int) (*projection.Projection, error) {
	out, err := projection.New(len(newToOld), src.NumDims(), src.MinimumColumnBasis())
	if err != nil {
		return nil, err
	}
	out.SetDodgyTiterIsRegular(src.DodgyTiterIsRegular())
	out.SetComment(src.Comment())

	srcLayout := src.Layout()
	err = out.Modify(func(l *layout.Layout) error {
		for newPt, oldPt := range newToOld {
			if !srcLayout.PointHasCoordinates(oldPt) {
				continue
			}
			for d := 0; d < l.NumDims(); d++ {
				v, err := srcLayout.At(oldPt, d)
				if err != nil {
					return err
				}
				if err := l.Set(newPt, d, v); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for newPt, oldPt := range newToOld {
		if src.DisconnectedPoints()[oldPt] {
			out.SetDisconnected(newPt, true)
		}
		if src.UnmovablePoints()[oldPt] {
			out.SetUnmovable(newPt, true)
		}
		if src.UnmovableInTheLastDimensionPoints()[oldPt] {
			out.SetUnmovableLastDim(newPt, true)
		}
		out.SetAvidityAdjust(newPt, src.AvidityAdjust(oldPt))
	}

	return out, nil
}
