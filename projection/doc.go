// Package projection implements a single optimization result: a
// Layout, its affine Transformation, the constraints it was optimized
// under, and its cached final stress (spec.md §3 Projection). A
// Projection is constructed empty with a chosen dimensionality and
// minimum column basis, randomized, optimized, then treated as
// immutable except through Modify, which invalidates the cached stress.
// Transformed layouts are not cached; TransformedLayout computes one on
// each call.
//
// Procrustes/Transformation composition (supplemented from
// original_source/cc/ad) lets callers rigidly align one Projection onto
// another, the operation downstream tooling uses to compare relaxation
// runs or overlay a new projection on a reference map.
package projection
