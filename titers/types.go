package titers

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cartograph/titer"
)

// denseOccupancyThreshold is the fraction of non-DontCare cells above
// which a table converts from sparse to dense storage (spec.md §3).
const denseOccupancyThreshold = 0.70

// cell is one sparse-row entry: a serum index paired with its Titer.
// Sparse rows are kept strictly increasing by Serum (spec.md §3 invariant).
type cell struct {
	Serum int
	T     titer.Titer
}

// Titers is the antigen×serum matrix of titer.Titer values, optionally
// backed by an ordered stack of per-source layers (spec.md §3).
//
// The zero value is not usable; construct with New.
type Titers struct {
	nAntigens, nSera int

	dense  []titer.Titer // row-major antigen-major, length nAntigens*nSera; nil if sparse
	sparse [][]cell      // length nAntigens, each row sorted by Serum; nil if dense
	filled int           // count of non-DontCare cells, tracked for the density switch

	layers [][][]cell // optional ordered source tables, one sparse row-set each

	lastDiagnostics [][]MergeDiagnostic // per-cell tags from the most recent SetFromLayers
}

// New constructs an empty (all-DontCare) Titers of the given shape.
func New(nAntigens, nSera int) (*Titers, error) {
	if nAntigens <= 0 || nSera <= 0 {
		return nil, fmt.Errorf("titers.New(%d,%d): %w", nAntigens, nSera, ErrInvalidDimensions)
	}
	sparse := make([][]cell, nAntigens)

	return &Titers{nAntigens: nAntigens, nSera: nSera, sparse: sparse}, nil
}

// NumAntigens returns the number of antigen rows.
func (t *Titers) NumAntigens() int { return t.nAntigens }

// NumSera returns the number of serum columns.
func (t *Titers) NumSera() int { return t.nSera }

// NumberOfLayers returns how many source layers are stacked, 0 if none.
func (t *Titers) NumberOfLayers() int { return len(t.layers) }

func (t *Titers) checkBounds(ag, sr int) error {
	if ag < 0 || ag >= t.nAntigens || sr < 0 || sr >= t.nSera {
		return fmt.Errorf("titers: (%d,%d) out of %dx%d: %w", ag, sr, t.nAntigens, t.nSera, ErrOutOfRange)
	}

	return nil
}

// Titer returns the value at (ag, sr). O(1) dense, O(log sera_per_row) sparse.
func (t *Titers) Titer(ag, sr int) (titer.Titer, error) {
	if err := t.checkBounds(ag, sr); err != nil {
		return titer.Invalid, err
	}
	if t.dense != nil {
		return t.dense[ag*t.nSera+sr], nil
	}

	return lookupRow(t.sparse[ag], sr), nil
}

// lookupRow binary-searches a sorted sparse row for sr, returning
// titer.DontCare if absent.
func lookupRow(row []cell, sr int) titer.Titer {
	i := sort.Search(len(row), func(i int) bool { return row[i].Serum >= sr })
	if i < len(row) && row[i].Serum == sr {
		return row[i].T
	}

	return titer.DontCare
}

// setRow inserts or replaces (sr, tt) in a sorted sparse row, returning
// the updated row and whether a new (not replaced) cell was added.
func setRow(row []cell, sr int, tt titer.Titer) ([]cell, bool) {
	i := sort.Search(len(row), func(i int) bool { return row[i].Serum >= sr })
	if i < len(row) && row[i].Serum == sr {
		row[i].T = tt
		return row, false
	}
	row = append(row, cell{})
	copy(row[i+1:], row[i:])
	row[i] = cell{Serum: sr, T: tt}

	return row, true
}

// SetTiter assigns t at (ag, sr). Returns ErrTitersCannotBeModified if
// the table has any layers (spec.md §4.2): layered tables are derived
// by SetFromLayers and must be re-merged, not poked directly.
func (t *Titers) SetTiter(ag, sr int, tt titer.Titer) error {
	if len(t.layers) >= 1 {
		return fmt.Errorf("titers.SetTiter(%d,%d): %w", ag, sr, ErrTitersCannotBeModified)
	}
	if err := t.checkBounds(ag, sr); err != nil {
		return err
	}

	if t.dense != nil {
		t.dense[ag*t.nSera+sr] = tt
		return nil
	}

	before := lookupRow(t.sparse[ag], sr)
	row, added := setRow(t.sparse[ag], sr, tt)
	t.sparse[ag] = row
	if added && !tt.IsDontCare() {
		t.filled++
	} else if !added && before.IsDontCare() != tt.IsDontCare() {
		if tt.IsDontCare() {
			t.filled--
		} else {
			t.filled++
		}
	}

	if float64(t.filled) >= denseOccupancyThreshold*float64(t.nAntigens*t.nSera) {
		t.convertToDense()
	}

	return nil
}

// convertToDense migrates sparse storage to a dense row-major slice.
// One-way: a table never converts back to sparse, matching the
// teacher's dense-vs-adjacency-list tradeoff (matrix/doc.go) of
// favoring stability over thrashing between representations.
func (t *Titers) convertToDense() {
	dense := make([]titer.Titer, t.nAntigens*t.nSera)
	for i := range dense {
		dense[i] = titer.DontCare
	}
	for ag, row := range t.sparse {
		for _, c := range row {
			dense[ag*t.nSera+c.Serum] = c.T
		}
	}
	t.dense = dense
	t.sparse = nil
}

// IsDense reports whether the table is currently using dense storage.
func (t *Titers) IsDense() bool { return t.dense != nil }

// Clone returns a deep copy of t, including its layer stack and cached
// merge diagnostics.
func (t *Titers) Clone() *Titers {
	clone := &Titers{nAntigens: t.nAntigens, nSera: t.nSera, filled: t.filled}
	if t.dense != nil {
		clone.dense = append([]titer.Titer(nil), t.dense...)
	}
	if t.sparse != nil {
		clone.sparse = make([][]cell, len(t.sparse))
		for i, row := range t.sparse {
			clone.sparse[i] = append([]cell(nil), row...)
		}
	}
	if t.layers != nil {
		clone.layers = make([][][]cell, len(t.layers))
		for k, layer := range t.layers {
			clone.layers[k] = make([][]cell, len(layer))
			for i, row := range layer {
				clone.layers[k][i] = append([]cell(nil), row...)
			}
		}
	}
	if t.lastDiagnostics != nil {
		clone.lastDiagnostics = make([][]MergeDiagnostic, len(t.lastDiagnostics))
		for i, row := range t.lastDiagnostics {
			clone.lastDiagnostics[i] = append([]MergeDiagnostic(nil), row...)
		}
	}

	return clone
}
