package projections

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cartograph/projection"
)

// Set is an ordered collection of Projection values.
type Set struct {
	items []*projection.Projection
}

// New returns an empty Set.
func New() *Set { return &Set{} }

// Len returns the number of projections in the set.
func (s *Set) Len() int { return len(s.items) }

// At returns the projection at index i.
func (s *Set) At(i int) (*projection.Projection, error) {
	if i < 0 || i >= len(s.items) {
		return nil, fmt.Errorf("projections.At(%d): %w", i, ErrOutOfRange)
	}

	return s.items[i], nil
}

// Insert appends p to the end of the set.
func (s *Set) Insert(p *projection.Projection) { s.items = append(s.items, p) }

// Remove deletes the projection at index i.
func (s *Set) Remove(i int) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("projections.Remove(%d): %w", i, ErrOutOfRange)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)

	return nil
}

// Clone returns a shallow copy of the set (the Projection pointers are
// shared; use projection.Projection.Clone for a deep copy of an entry).
func (s *Set) Clone() *Set {
	out := make([]*projection.Projection, len(s.items))
	copy(out, s.items)

	return &Set{items: out}
}

// Sort orders the set by final stress ascending, leaving a projection
// with no computed stress (ErrStressNotComputed) sorted to the end.
// Ties, including among not-yet-computed entries, are broken by
// insertion order (stable sort, spec.md §5).
func (s *Set) Sort() {
	sort.SliceStable(s.items, func(i, j int) bool {
		si, erri := s.items[i].FinalStress()
		sj, errj := s.items[j].FinalStress()
		if erri != nil && errj != nil {
			return false
		}
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}

		return si < sj
	})
}

// All returns the set's projections in current order.
func (s *Set) All() []*projection.Projection {
	out := make([]*projection.Projection, len(s.items))
	copy(out, s.items)

	return out
}
