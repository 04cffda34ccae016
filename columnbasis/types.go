package columnbasis

import (
	"fmt"

	"github.com/katalvlaran/cartograph/titers"
)

// ColumnBases holds the per-serum normalizer used to convert titers
// into table distances (spec.md §3).
type ColumnBases struct {
	values []float64
	forced []bool
}

// New computes column bases for every serum in t: the raw column basis
// (titers.Titers.RawColumnBasis), floored by minimumColumnBasis.
func New(t *titers.Titers, minimumColumnBasis float64) *ColumnBases {
	n := t.NumSera()
	values := make([]float64, n)
	for sr := 0; sr < n; sr++ {
		raw := t.RawColumnBasis(sr)
		if raw < minimumColumnBasis {
			raw = minimumColumnBasis
		}
		values[sr] = raw
	}

	return &ColumnBases{values: values, forced: make([]bool, n)}
}

// NumSera returns the number of sera this ColumnBases covers.
func (c *ColumnBases) NumSera() int { return len(c.values) }

// Get returns the (possibly forced) column basis for serum sr.
func (c *ColumnBases) Get(sr int) (float64, error) {
	if sr < 0 || sr >= len(c.values) {
		return 0, fmt.Errorf("columnbasis.Get(%d): %w", sr, ErrOutOfRange)
	}

	return c.values[sr], nil
}

// SetForced overrides the column basis for serum sr, bypassing the
// raw-titer computation (e.g. an .ace chart's "C" forced column bases,
// or the values computed by titers.Titers.SetFromLayers when a layer
// contains ">").
func (c *ColumnBases) SetForced(sr int, v float64) error {
	if sr < 0 || sr >= len(c.values) {
		return fmt.Errorf("columnbasis.SetForced(%d): %w", sr, ErrOutOfRange)
	}
	c.values[sr] = v
	c.forced[sr] = true

	return nil
}

// IsForced reports whether serum sr's basis was overridden rather than
// computed from raw titers.
func (c *ColumnBases) IsForced(sr int) bool {
	if sr < 0 || sr >= len(c.forced) {
		return false
	}

	return c.forced[sr]
}

// Slice returns a copy of all column bases, indexed by serum.
func (c *ColumnBases) Slice() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)

	return out
}
