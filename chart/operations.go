package chart

import (
	"fmt"

	"github.com/katalvlaran/cartograph/columnbasis"
	"github.com/katalvlaran/cartograph/logging"
	"github.com/katalvlaran/cartograph/tabledist"
)

// SetFromLayers implements spec.md §4.2's set_from_layers orchestration:
// validates the chart's layer-count invariant (≥2, spec.md §3), merges
// the titer table's layers (titers.Titers.SetFromLayers), and installs
// any forced column bases the merge computed (when a layer carries ">"
// titers) as chart-level overrides.
//
// Complexity: O(layers * antigens * sera), matching titers.SetFromLayers.
func (c *Chart) SetFromLayers() error {
	if c.titers.NumberOfLayers() < 2 {
		return fmt.Errorf("chart.SetFromLayers: chart has %d layers, need >= 2: %w",
			c.titers.NumberOfLayers(), ErrInvalidData)
	}

	forced, _, err := c.titers.SetFromLayers()
	if err != nil {
		return fmt.Errorf("chart.SetFromLayers: %w", err)
	}
	for sr, v := range forced {
		c.forcedColumnBases[sr] = v
	}

	if logging.Enabled(logging.LevelMerge) {
		logging.Logger.Debug().
			Int("antigens", c.NumAntigens()).
			Int("sera", c.NumSera()).
			Msg("chart: merged layers into the main titer table")
	}

	return nil
}

// ColumnBases computes the chart's column bases: the raw-titer basis
// per serum, floored by minimumColumnBasis, with the chart's
// forced-column-basis overrides applied last (spec.md §3 ColumnBases;
// forced overrides take precedence over both the raw computation and
// the floor).
func (c *Chart) ColumnBases(minimumColumnBasis float64) *columnbasis.ColumnBases {
	cb := columnbasis.New(c.titers, minimumColumnBasis)
	for sr, v := range c.forcedColumnBases {
		_ = cb.SetForced(sr, v)
	}

	return cb
}

// TableDistances computes the chart's table distances using the given
// minimum column basis and options. This is the chart-level convenience
// promised by cc/chart's "distance table export taking a forced column
// basis override" — implemented here rather than as a method on
// titers.Titers because tabledist already imports titers, and titers
// importing tabledist back would cycle.
func (c *Chart) TableDistances(minimumColumnBasis float64, opts tabledist.Options) tabledist.TableDistances {
	cb := c.ColumnBases(minimumColumnBasis)

	return tabledist.Compute(c.titers, cb, opts)
}
