package gridtest

import "errors"

// ErrShapeMismatch indicates the layout, table distances, and stress
// object passed to Run disagree on point or dimension count.
var ErrShapeMismatch = errors.New("gridtest: shape mismatch between layout, table distances and stress")
