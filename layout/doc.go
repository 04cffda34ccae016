// Package layout holds point coordinates for an antigenic map: a
// point-count × num-dims array of float64, row-major, backed by
// gonum.org/v1/gonum/mat.Dense (spec.md §3 Layout). A row that is
// entirely NaN marks a disconnected point with no coordinates.
package layout
