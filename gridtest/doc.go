// Package gridtest implements the per-point displacement probe of
// spec.md §4.11: for every non-excluded point, it walks a grid over the
// bounding box of that point's table-distance partner disks, finds the
// candidate position with the lowest per-point stress contribution,
// and — if that position strictly improves on the current one —
// rough-optimizes the whole layout from there and classifies the
// result as trapped (a materially better minimum exists), hemispheric
// (a same-stress alternative exists elsewhere on the map), or normal.
//
// Excluded points (no table distances, unmovable, or disconnected) are
// reported with Classification ClassExcluded and never probed. Apply
// moves only the points whose resolved Delta final stress is negative,
// matching spec.md §4.11's "apply... moves each trapped/hemispheric
// point to its better location when Δ final_stress < 0."
package gridtest
