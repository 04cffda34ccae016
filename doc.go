// Package cartograph builds and manipulates antigenic cartography
// charts: low-dimensional Euclidean embeddings of antigens and sera
// whose pairwise distances approximate serological cross-reactivity
// measured by HI or virus-neutralization assays.
//
// 🚀 What is cartograph?
//
//	A titer table goes in, a map comes out:
//
//	  • Titer model: "*"/"<"/">"/"~"/regular readings, column bases
//	  • Table distances: titer table → target map distances
//	  • Stress + optimizer: weighted least-squares placement via
//	    gonum/optimize, with dimension annealing and multi-start relax
//	  • Diagnostics: grid-test trapped/hemispheric point detection,
//	    serum-circle protection radius, serum coverage
//
// ✨ Why choose cartograph?
//
//   - Reproducible   — every randomized run is seeded explicitly
//   - Concurrent     — multi-start relax and grid-test both use a
//     bounded worker pool, not one goroutine per unit of work
//   - Interoperable  — reads and writes the .ace chart interchange
//     format used by the wider antigenic cartography ecosystem
//
// Under the hood, everything is organized by concern:
//
//	titer/        — the qualitative titer value and its textual grammar
//	titers/       — the antigen×serum matrix, including layer merging
//	columnbasis/  — per-serum column bases and the minimum_column_basis grammar
//	tabledist/    — titer table → target map distances
//	layout/       — point coordinates, NaN marking disconnected points
//	stress/       — the objective function and its gradient
//	randomizer/   — seeded point placement
//	optimize/     — per-run minimization, dimension annealing, multi-start relax
//	projection/   — one optimization result: layout, transformation, constraints
//	projections/  — an ordered, stress-sorted set of projections
//	chart/        — the top-level aggregate: info, antigens, sera, titers, projections
//	gridtest/     — local-minimum detection and escape
//	serumcircle/  — protection radius and coverage
//	ace/          — the .ace JSON interchange format
//	logging/      — process-wide verbosity bitmap
//
// The module has no examples/ directory; the one runnable Example is
// in titer/example_test.go.
//
//	go get github.com/katalvlaran/cartograph
package cartograph
