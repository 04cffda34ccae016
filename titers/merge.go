package titers

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cartograph/titer"
)

// MergeDiagnostic tags the outcome of mergeCell for one (antigen,serum)
// across layers (spec.md §4.3). The String() vocabulary is kept stable
// per spec.md §9.
type MergeDiagnostic int

const (
	DiagAllDontCare MergeDiagnostic = iota
	DiagLessAndMoreThan
	DiagLessThanOnly
	DiagMoreThanOnlyAdjustToNext
	DiagMoreThanOnlyToDontCare
	DiagSDTooBig
	DiagRegularOnly
	DiagLessThanAndRegular
	DiagMoreThanAndRegular
)

func (d MergeDiagnostic) String() string {
	switch d {
	case DiagAllDontCare:
		return "all_dontcare"
	case DiagLessAndMoreThan:
		return "less_and_more_than"
	case DiagLessThanOnly:
		return "less_than_only"
	case DiagMoreThanOnlyAdjustToNext:
		return "more_than_only_adjust_to_next"
	case DiagMoreThanOnlyToDontCare:
		return "more_than_only_to_dontcare"
	case DiagSDTooBig:
		return "sd_too_big"
	case DiagRegularOnly:
		return "regular_only"
	case DiagLessThanAndRegular:
		return "less_than_and_regular"
	case DiagMoreThanAndRegular:
		return "more_than_and_regular"
	default:
		return "unknown"
	}
}

// MoreThanPolicy selects step 3's behavior when only ">" titers are
// observed and no regular reading is present.
type MoreThanPolicy int

const (
	// MoreThanAdjustToNext returns ">max(values)" (needed to compute
	// forced column bases before the final merge, spec.md §4.2).
	MoreThanAdjustToNext MoreThanPolicy = iota
	// MoreThanToDontCare returns "*" (the final merged-titer policy).
	MoreThanToDontCare
)

// sdTooBigThreshold is the population-standard-deviation ceiling above
// which a cell's observations are considered too inconsistent to merge
// (spec.md §4.3 step 4).
const sdTooBigThreshold = 1.0

// mergeCell implements spec.md §4.3 for the non-DontCare titers
// observed at one (antigen,serum) cell across all layers.
func mergeCell(observed []titer.Titer, policy MoreThanPolicy) (titer.Titer, MergeDiagnostic) {
	if len(observed) == 0 {
		return titer.DontCare, DiagAllDontCare
	}

	var lts, gts, regs []titer.Titer
	for _, t := range observed {
		switch t.Kind() {
		case titer.KindLessThan:
			lts = append(lts, t)
		case titer.KindMoreThan:
			gts = append(gts, t)
		default: // Regular and Dodgy both count as "regular" for merge purposes
			regs = append(regs, t)
		}
	}

	if len(lts) > 0 && len(gts) > 0 {
		return titer.DontCare, DiagLessAndMoreThan
	}

	if len(regs) == 0 {
		if len(lts) > 0 {
			minVal, _ := lts[0].Value()
			for _, t := range lts[1:] {
				if v, _ := t.Value(); v < minVal {
					minVal = v
				}
			}
			return titer.LessThan(minVal), DiagLessThanOnly
		}
		// only ">".
		maxVal, _ := gts[0].Value()
		for _, t := range gts[1:] {
			if v, _ := t.Value(); v > maxVal {
				maxVal = v
			}
		}
		if policy == MoreThanAdjustToNext {
			return titer.MoreThan(maxVal), DiagMoreThanOnlyAdjustToNext
		}

		return titer.DontCare, DiagMoreThanOnlyToDontCare
	}

	// At least one regular/dodgy present, and lts/gts are not both non-empty.
	contributing := append(append([]titer.Titer{}, regs...), lts...)
	contributing = append(contributing, gts...)
	sigma := populationStdDev(contributing)
	if sigma > sdTooBigThreshold {
		return titer.DontCare, DiagSDTooBig
	}

	if len(lts) == 0 && len(gts) == 0 {
		return titer.FromLogged(mean(contributing)), DiagRegularOnly
	}

	if len(lts) > 0 {
		maxRegular := maxValue(regs)
		maxLess := maxValue(lts)
		if maxLess > maxRegular {
			// smallest "<" value strictly greater than maxRegular.
			best := 0
			found := false
			for _, t := range lts {
				v, _ := t.Value()
				if v > maxRegular && (!found || v < best) {
					best, found = v, true
				}
			}
			return titer.LessThan(best), DiagLessThanAndRegular
		}

		return titer.LessThan(maxRegular * 2), DiagLessThanAndRegular
	}

	// mix of ">" and regular, symmetric to the "<" branch.
	minRegular := minValue(regs)
	minMore := minValue(gts)
	if minMore < minRegular {
		best := 0
		found := false
		for _, t := range gts {
			v, _ := t.Value()
			if v < minRegular && (!found || v > best) {
				best, found = v, true
			}
		}
		return titer.MoreThan(best), DiagMoreThanAndRegular
	}

	return titer.MoreThan(minRegular / 2), DiagMoreThanAndRegular
}

func maxValue(ts []titer.Titer) int {
	v, _ := ts[0].Value()
	m := v
	for _, t := range ts[1:] {
		if v, _ := t.Value(); v > m {
			m = v
		}
	}

	return m
}

func minValue(ts []titer.Titer) int {
	v, _ := ts[0].Value()
	m := v
	for _, t := range ts[1:] {
		if v, _ := t.Value(); v < m {
			m = v
		}
	}

	return m
}

func mean(ts []titer.Titer) float64 {
	sum := 0.0
	for _, t := range ts {
		sum += t.LoggedWithThresholded()
	}

	return sum / float64(len(ts))
}

func populationStdDev(ts []titer.Titer) float64 {
	if len(ts) <= 1 {
		return 0
	}
	m := mean(ts)
	sumSq := 0.0
	for _, t := range ts {
		d := t.LoggedWithThresholded() - m
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(ts)))
}

// AddLayer appends source table layer as the next layer, extracting its
// non-DontCare cells into a sparse per-antigen row-set. Dimensions must
// match the receiver's.
func (t *Titers) AddLayer(layer *Titers) error {
	if layer.nAntigens != t.nAntigens || layer.nSera != t.nSera {
		return fmt.Errorf("titers.AddLayer: %dx%d != %dx%d: %w",
			layer.nAntigens, layer.nSera, t.nAntigens, t.nSera, ErrInvalidDimensions)
	}
	rows := make([][]cell, t.nAntigens)
	for ag := 0; ag < t.nAntigens; ag++ {
		layer.forEachRow(ag, func(sr int, tt titer.Titer) {
			rows[ag] = append(rows[ag], cell{Serum: sr, T: tt})
		})
	}
	t.layers = append(t.layers, rows)

	return nil
}

// MergeResult reports, per cell, the merged titer and its diagnostic tag.
type MergeResult struct {
	Titer      titer.Titer
	Diagnostic MergeDiagnostic
}

// mergeLayers runs mergeCell over every (antigen,serum) cell using the
// stacked layers, with the given ">"-only policy.
func (t *Titers) mergeLayers(policy MoreThanPolicy) [][]MergeResult {
	results := make([][]MergeResult, t.nAntigens)
	for ag := 0; ag < t.nAntigens; ag++ {
		results[ag] = make([]MergeResult, t.nSera)
		for sr := 0; sr < t.nSera; sr++ {
			var observed []titer.Titer
			for _, layer := range t.layers {
				tt := lookupRow(layer[ag], sr)
				if !tt.IsDontCare() {
					observed = append(observed, tt)
				}
			}
			mergedTiter, diag := mergeCell(observed, policy)
			results[ag][sr] = MergeResult{Titer: mergedTiter, Diagnostic: diag}
		}
	}

	return results
}

// hasMoreThan reports whether any layer contains a ">" titer anywhere.
func (t *Titers) hasMoreThan() bool {
	for _, layer := range t.layers {
		for _, row := range layer {
			for _, c := range row {
				if c.T.IsMoreThan() {
					return true
				}
			}
		}
	}

	return false
}

// SetFromLayers merges the stacked layers into the main matrix
// (spec.md §4.2). If any layer contains ">" titers, it first merges
// with MoreThanAdjustToNext to compute forced column bases (returned),
// then re-merges with MoreThanToDontCare for the final matrix. The
// diagnostics from the final merge are returned alongside.
//
// Requires len(layers) >= 2 (spec.md §3 chart invariant is enforced by
// the caller, chart.Chart, not here).
func (t *Titers) SetFromLayers() (forcedColumnBases []float64, diagnostics [][]MergeDiagnostic, err error) {
	if len(t.layers) == 0 {
		return nil, nil, fmt.Errorf("titers.SetFromLayers: %w", ErrDataNotAvailable)
	}

	if t.hasMoreThan() {
		adjusted := t.mergeLayers(MoreThanAdjustToNext)
		forcedColumnBases = make([]float64, t.nSera)
		for sr := 0; sr < t.nSera; sr++ {
			best := 0.0
			seen := false
			for ag := 0; ag < t.nAntigens; ag++ {
				v := adjusted[ag][sr].Titer.LoggedForColumnBases()
				if v < 0 {
					continue
				}
				if !seen || v > best {
					best, seen = v, true
				}
			}
			forcedColumnBases[sr] = best
		}
	}

	final := t.mergeLayers(MoreThanToDontCare)
	dense := make([]titer.Titer, t.nAntigens*t.nSera)
	diagnostics = make([][]MergeDiagnostic, t.nAntigens)
	for ag := 0; ag < t.nAntigens; ag++ {
		diagnostics[ag] = make([]MergeDiagnostic, t.nSera)
		for sr := 0; sr < t.nSera; sr++ {
			dense[ag*t.nSera+sr] = final[ag][sr].Titer
			diagnostics[ag][sr] = final[ag][sr].Diagnostic
		}
	}
	t.dense = dense
	t.sparse = nil
	t.lastDiagnostics = diagnostics

	return forcedColumnBases, diagnostics, nil
}

// Diagnostics returns the per-(antigen,serum) merge diagnostic tags
// from the most recent SetFromLayers call. Returns ErrDataNotAvailable
// if SetFromLayers has not run (cc/chart's per-cell diagnostic surface,
// compressed out of spec.md §4.2's bullet list).
func (t *Titers) Diagnostics() ([][]MergeDiagnostic, error) {
	if t.lastDiagnostics == nil {
		return nil, fmt.Errorf("titers.Diagnostics: %w", ErrDataNotAvailable)
	}

	return t.lastDiagnostics, nil
}
