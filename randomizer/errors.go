package randomizer

import "errors"

// ErrInvalidDiameter indicates a diameter that is NaN, zero, or negative
// (spec.md §4.5 "Fails if diameter becomes NaN/0").
var ErrInvalidDiameter = errors.New("randomizer: invalid diameter")
