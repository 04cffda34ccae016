package randomizer

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/cartograph/layout"
)

// Randomizer draws coordinates uniformly in a box of a fixed diameter,
// seeded for reproducibility (spec.md §4.5 LayoutRandomizerPlain).
type Randomizer struct {
	rng      *rand.Rand
	diameter float64
}

// NewPlain constructs a Randomizer sampling in [-diameter/2,
// +diameter/2] per dimension, seeded from seed.
func NewPlain(diameter float64, seed uint64) (*Randomizer, error) {
	if math.IsNaN(diameter) || diameter <= 0 {
		return nil, fmt.Errorf("randomizer.NewPlain(%v): %w", diameter, ErrInvalidDiameter)
	}

	return &Randomizer{rng: rand.New(rand.NewSource(seed)), diameter: diameter}, nil
}

// Diameter returns the box diameter this Randomizer was constructed with.
func (r *Randomizer) Diameter() float64 { return r.diameter }

// Sample draws one point uniformly from [-diameter/2, diameter/2]^numDims.
func (r *Randomizer) Sample(numDims int) []float64 {
	out := make([]float64, numDims)
	for d := 0; d < numDims; d++ {
		out[d] = r.rng.Float64()*r.diameter - r.diameter/2
	}

	return out
}

// RandomizePoints sets the coordinates of each point in points to a
// fresh uniform sample, leaving every other point untouched. Used both
// for a brand-new layout (all points) and for incremental relax, where
// only the newly-added points are randomized (spec.md §4.10).
func (r *Randomizer) RandomizePoints(l *layout.Layout, points []int) error {
	for _, p := range points {
		sample := r.Sample(l.NumDims())
		for d, v := range sample {
			if err := l.Set(p, d, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// BorderLine is a 2-D line ax + by = c used by the border-constrained
// sampling variant (spec.md §4.5).
type BorderLine struct {
	A, B, C float64
}

// side returns the signed distance-like quantity ax+by-c, whose sign
// indicates which half-plane a point falls in.
func (line BorderLine) side(x, y float64) float64 {
	return line.A*x + line.B*y - line.C
}

// SampleBorderConstrained draws a 2-D point as Sample does, then
// reflects it across line if it falls on the wrong side, guaranteeing
// the result lies in the half-plane where side(x,y) >= 0.
func (r *Randomizer) SampleBorderConstrained(line BorderLine) []float64 {
	p := r.Sample(2)
	if line.side(p[0], p[1]) >= 0 {
		return p
	}
	// reflect the point across the line a*x+b*y=c.
	norm := line.A*line.A + line.B*line.B
	if norm == 0 {
		return p
	}
	d := 2 * line.side(p[0], p[1]) / norm
	p[0] -= d * line.A
	p[1] -= d * line.B

	return p
}
