// Package serumcircle computes protective-radius inferences around a
// serum point: the theoretical radius derived directly from titers
// (spec.md §4.12) and the empirical radius fitted against the realized
// map (spec.md §4.12), plus the simpler within/outside serum-coverage
// split (spec.md §4.13). Failure modes (a non-regular or too-low
// homologous titer, a disconnected serum or antigen, or simply "could
// not be calculated") are returned as an error wrapping ErrSerumCoverage;
// Theoretical and Empirical also set Result.Failure, while CoverageResult
// has no failure field. This matches spec.md §7's "local recovery: ... serum-circle
// computations catch per-antigen failures and record them in a
// diagnostic field rather than aborting the whole operation."
package serumcircle
