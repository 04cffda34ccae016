// Package optimize drives the numerical core of antigenic-map layout:
// the two gradient-based minimizers (alglib_lbfgs_pca, alglib_cg_pca,
// spec.md §4.6), the disconnected-points scoped guard (§4.7), PCA-based
// dimension annealing (§4.8), multi-start relax (§4.9), and incremental
// relax (§4.10). It also hosts the three randomizer diameter factories
// (table_max_distance, current_layout_area, from_sample_optimization,
// §4.5) deferred from package randomizer to avoid an import cycle: the
// third factory must itself run a rough optimization.
//
// The minimizers wrap gonum.org/v1/gonum/optimize's LBFGS and CG
// methods; dimension annealing uses gonum.org/v1/gonum/mat's SVD by
// default, with a pure-Go Jacobi eigensolver (adapted from the
// teacher's matrix/ops/eigen.go) available as a dependency-free
// fallback, selected by passing PCAJacobi to DimensionAnneal.
package optimize
