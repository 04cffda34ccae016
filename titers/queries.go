package titers

import "github.com/katalvlaran/cartograph/titer"

// forEachRow iterates the Titer values of row ag, calling fn(sr, t) for
// every non-DontCare cell (dense storage skips DontCare entries too, to
// keep the two backing stores behaviorally identical).
func (t *Titers) forEachRow(ag int, fn func(sr int, tt titer.Titer)) {
	if t.dense != nil {
		base := ag * t.nSera
		for sr := 0; sr < t.nSera; sr++ {
			if tt := t.dense[base+sr]; !tt.IsDontCare() {
				fn(sr, tt)
			}
		}
		return
	}
	for _, c := range t.sparse[ag] {
		if !c.T.IsDontCare() {
			fn(c.Serum, c.T)
		}
	}
}

// RawColumnBasis returns the max titer.LoggedForColumnBases over all
// antigens against serum sr, or 0 if no regular titers were observed
// (spec.md §4.2).
func (t *Titers) RawColumnBasis(sr int) float64 {
	best := 0.0
	seen := false
	for ag := 0; ag < t.nAntigens; ag++ {
		tt, _ := t.Titer(ag, sr)
		if tt.IsDontCare() {
			continue
		}
		v := tt.LoggedForColumnBases()
		if v < 0 {
			continue // dodgy/invalid never raise the basis
		}
		if !seen || v > best {
			best = v
			seen = true
		}
	}

	return best
}

// HavingTooFewNumericTiters returns the point indices — antigens
// 0..nAntigens-1 followed by sera nAntigens..nAntigens+nSera-1 — whose
// count of Regular titers is strictly below threshold (default 3 per
// spec.md §4.2).
func (t *Titers) HavingTooFewNumericTiters(threshold int) []int {
	out := []int{}
	agCounts := make([]int, t.nAntigens)
	srCounts := make([]int, t.nSera)
	for ag := 0; ag < t.nAntigens; ag++ {
		for sr := 0; sr < t.nSera; sr++ {
			tt, _ := t.Titer(ag, sr)
			if tt.IsRegular() {
				agCounts[ag]++
				srCounts[sr]++
			}
		}
	}
	for ag, c := range agCounts {
		if c < threshold {
			out = append(out, ag)
		}
	}
	for sr, c := range srCounts {
		if c < threshold {
			out = append(out, t.nAntigens+sr)
		}
	}

	return out
}

// MaxDistance returns the maximum, over every non-DontCare titer at
// (ag,sr), of cb[sr] - titer.LoggedWithThresholded(). Used to size the
// initial randomization box (spec.md §4.5 table_max_distance).
func (t *Titers) MaxDistance(cb []float64) float64 {
	max := 0.0
	for ag := 0; ag < t.nAntigens; ag++ {
		for sr := 0; sr < t.nSera; sr++ {
			tt, _ := t.Titer(ag, sr)
			if tt.IsDontCare() {
				continue
			}
			d := cb[sr] - tt.LoggedWithThresholded()
			if d > max {
				max = d
			}
		}
	}

	return max
}

// LayerTiter returns the titer recorded at (ag, sr) in source layer k,
// or titer.DontCare if that layer has no reading there. Returns
// ErrDataNotAvailable if the table has no layers, ErrOutOfRange for a
// bad layer/antigen/serum index.
func (t *Titers) LayerTiter(k, ag, sr int) (titer.Titer, error) {
	if len(t.layers) == 0 {
		return titer.DontCare, ErrDataNotAvailable
	}
	if k < 0 || k >= len(t.layers) {
		return titer.DontCare, ErrOutOfRange
	}
	if err := t.checkBounds(ag, sr); err != nil {
		return titer.DontCare, err
	}

	return lookupRow(t.layers[k][ag], sr), nil
}

// AntigensSeraOfLayer returns the (antigen, serum) pairs present in
// layer k. Returns ErrDataNotAvailable if the table has no layers.
func (t *Titers) AntigensSeraOfLayer(k int) ([][2]int, error) {
	if k < 0 || k >= len(t.layers) {
		return nil, ErrDataNotAvailable
	}
	var out [][2]int
	for ag, row := range t.layers[k] {
		for _, c := range row {
			out = append(out, [2]int{ag, c.Serum})
		}
	}

	return out, nil
}

// LayersWithAntigen returns the indices of layers that contain at
// least one non-DontCare titer for antigen ag.
func (t *Titers) LayersWithAntigen(ag int) ([]int, error) {
	if len(t.layers) == 0 {
		return nil, ErrDataNotAvailable
	}
	var out []int
	for k, layer := range t.layers {
		if ag < len(layer) && len(layer[ag]) > 0 {
			out = append(out, k)
		}
	}

	return out, nil
}

// LayersWithSerum returns the indices of layers that contain at least
// one non-DontCare titer against serum sr.
func (t *Titers) LayersWithSerum(sr int) ([]int, error) {
	if len(t.layers) == 0 {
		return nil, ErrDataNotAvailable
	}
	var out []int
	for k, layer := range t.layers {
		for _, row := range layer {
			if !lookupRow(row, sr).IsDontCare() {
				out = append(out, k)
				break
			}
		}
	}

	return out, nil
}
